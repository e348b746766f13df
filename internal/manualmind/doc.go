// Package manualmind is the HTTP client for the ManualMind document-QA
// backend, plus the reply handling that makes its two response shapes look
// identical to callers.
//
// # Backend Calls
//
// The client covers the three tool-backing endpoints:
//
//	client, err := manualmind.NewClient(manualmind.ClientConfig{
//	    BaseURL: "http://manualmind:8000",
//	    APIKey:  os.Getenv("MANUALMIND_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	reply, err := client.Query(ctx, "How do I reset the device?", 5)
//
// Query and Status retry transient failures with exponential backoff;
// ProcessDocuments is issued exactly once because the backend queues work
// per request.
//
// # Reply Shapes
//
// Depending on deployment topology the backend answers in one of two
// shapes. Reached through an MCP adapter it returns
//
//	{"success": true, "content": "...", "error": null}
//
// while the domain API answers raw:
//
//	{"query": "...", "response": "...", "sources": [...], "status": "..."}
//
// Normalize turns either shape into a single text block:
//
//	result := manualmind.Normalize(reply, types.ToolQueryManuals)
//	// result.Text, result.IsError
//
// A boolean success field wins; otherwise a non-empty query field marks the
// raw shape; anything else yields a fixed per-tool fallback text.
//
// # Rich Rendering
//
// The REST surface serves longer reports than the normalized single block.
// RenderRich reproduces those from raw replies:
//
//	if text, ok := manualmind.RenderRich(reply, tool); ok {
//	    // multi-line report with sources / file inventory
//	}
package manualmind
