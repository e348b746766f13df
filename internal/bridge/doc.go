// Package bridge implements the stdio side of the ManualMind MCP server.
//
// The bridge speaks JSON-RPC 2.0 over newline-delimited stdio: each line
// on stdin is one message, each response is one line on stdout. Logging
// goes to stderr only, because stdout belongs to the protocol.
//
// # Line Discipline
//
// The read loop applies four rules, in order:
//
//   - Blank lines are skipped.
//   - Lines that do not decode as a JSON-RPC message are skipped with a
//     log entry. No error response is written, because a line that did
//     not parse has no id to attach one to.
//   - Messages whose id is absent or null are notifications. They never
//     produce output, whatever their method.
//   - Everything else receives exactly one response line, in the order
//     the requests arrived.
//
// An id of a disallowed type (boolean, object, array) is answered with a
// -32600 error carrying an explicit null id.
//
// # Methods
//
// The dispatcher routes by method name:
//
//	initialize       → protocol version, capabilities, server identity
//	tools/list       → the three ManualMind tool descriptors
//	tools/call       → backend invocation via the tools package
//	ping             → {}
//	prompts/list     → {"prompts":[]}
//	resources/list   → {"resources":[]}
//	notifications/*  → logged, no response
//
// Any other method with an id is answered with -32601. Without an id it
// is ignored.
//
// # Error Planes
//
// Failures live on two planes. Protocol errors (-32600, -32601, -32602)
// mean the request itself could not be dispatched and appear in the
// response's error member. Tool failures, including backend HTTP errors,
// are successful responses whose result carries isError: true. A client
// that sent a well-formed tools/call never sees a protocol error for a
// backend problem.
//
// # Wire Example
//
//	→ {"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"query_manuals","arguments":{"question":"How do I reset?"}}}
//	← {"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"Hold the button for ten seconds."}]}}
package bridge
