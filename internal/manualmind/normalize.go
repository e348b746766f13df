package manualmind

import "github.com/manualmind/mcp-bridge/pkg/types"

// Result is the normalized form of a backend reply: one text block and a
// flag marking content-level failure.
type Result struct {
	Text    string
	IsError bool
}

// Normalize converts either backend reply shape into a single text block.
// Disambiguation is ordered: a boolean success field marks the adapter
// shape, a non-empty query field marks the raw domain shape, and anything
// else gets a per-tool fallback text reported as a soft condition.
func Normalize(r *Reply, tool string) Result {
	if r.IsNative() {
		if *r.Success {
			text := r.Content
			if text == "" {
				text = completedFallback(tool)
			}
			return Result{Text: text}
		}
		text := r.Error
		if text == "" {
			text = "Unknown error"
		}
		return Result{Text: text, IsError: true}
	}

	if r.HasQuery() {
		text := r.Response
		if text == "" {
			text = "No response"
		}
		return Result{Text: text}
	}

	return Result{Text: unrecognizedFallback(tool)}
}

func completedFallback(tool string) string {
	switch tool {
	case types.ToolGetSystemStatus:
		return "Status retrieved"
	case types.ToolProcessDocuments:
		return "Processing initiated"
	default:
		return "Query completed"
	}
}

func unrecognizedFallback(tool string) string {
	switch tool {
	case types.ToolGetSystemStatus:
		return "Status request completed but response format unrecognized"
	case types.ToolProcessDocuments:
		return "Processing request completed but response format unrecognized"
	default:
		return "Query completed but response format unrecognized"
	}
}
