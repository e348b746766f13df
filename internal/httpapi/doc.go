// Package httpapi is the REST surface of the bridge: the same three tools
// the MCP side serves, reachable with plain HTTP calls.
//
// Routes:
//
//	GET  /         service descriptor
//	GET  /tools    flattened tool list
//	POST /call     {"name", "arguments"} → ToolResponse
//	POST /query    {"question", "max_results"} → ToolResponse
//	GET  /status   system status → ToolResponse
//	POST /process  trigger document processing → ToolResponse
//
// Every tool invocation answers HTTP 200 with a ToolResponse envelope;
// success false marks tool-level failures, including backend errors and
// unknown tool names. Non-200 statuses mean the request itself was bad:
// 400 for an undecodable body, 404 for an unknown route, 405 for a wrong
// method, 401 when an API key is configured and missing.
//
// Raw-shape backend payloads for query, status, and process calls are
// rendered with the full report layouts from the manualmind package, so
// human callers of this surface get readable text rather than the bare
// normalized line the MCP side emits.
//
// All handlers run inside a middleware chain: request-id assignment
// (X-Request-ID, generated when absent), one structured log line per
// request, and optional constant-time API key checking on X-API-Key.
package httpapi
