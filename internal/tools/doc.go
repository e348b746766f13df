// Package tools defines the fixed tool table the bridge exposes and the
// invoker that turns a tool call into a backend HTTP request.
//
// Three tools exist for the process lifetime: query_manuals,
// get_system_status, and process_documents. Each carries an MCP descriptor
// (served by tools/list) and a compiled validation schema enforced before
// any backend call.
//
// Invoke separates two failure planes. Missing or unknown tool names come
// back as errors for the protocol layer to encode as JSON-RPC error
// objects. Argument rejections, rate limiting, and every backend problem
// come back as an Outcome with IsError set, which callers serve as a
// successful response carrying error content.
package tools
