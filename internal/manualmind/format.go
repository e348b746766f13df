package manualmind

import (
	"fmt"
	"strings"

	"github.com/manualmind/mcp-bridge/pkg/types"
)

// sourceContentLimit caps how much of a source excerpt the query formatter
// includes.
const sourceContentLimit = 200

// RenderRich re-renders a raw domain reply into the long human-readable form
// the REST surface serves. Adapter-shaped replies already carry final text,
// so they report ok=false and callers keep the normalized result.
func RenderRich(r *Reply, tool string) (string, bool) {
	if r == nil || r.IsNative() || r.fields == nil {
		return "", false
	}
	switch tool {
	case types.ToolQueryManuals:
		return FormatQueryResult(r.fields), true
	case types.ToolGetSystemStatus:
		return FormatStatusReport(r.fields), true
	case types.ToolProcessDocuments:
		return FormatProcessOutcome(r.fields), true
	}
	return "", false
}

// FormatQueryResult renders a raw query reply with its answer, confidence,
// and source excerpts.
func FormatQueryResult(fields map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n\n", displayField(fields, "query", ""))
	fmt.Fprintf(&b, "Answer: %s\n\n", displayField(fields, "response", ""))
	fmt.Fprintf(&b, "Confidence: %s\n", displayField(fields, "confidence", "unknown"))
	fmt.Fprintf(&b, "Total sources found: %d\n\n", intField(fields, "total_sources", 0))

	sources, _ := fields["sources"].([]interface{})
	if len(sources) > 0 {
		b.WriteString("Sources:\n")
		for i, source := range sources {
			entry, ok := source.(map[string]interface{})
			if !ok {
				fmt.Fprintf(&b, "%d. %s\n\n", i+1, truncate(fmt.Sprintf("%v", source), sourceContentLimit))
				continue
			}
			fmt.Fprintf(&b, "%d. File: %s\n", i+1, displayField(entry, "file", "Unknown file"))
			fmt.Fprintf(&b, "   Score: %s\n", displayField(entry, "score", "N/A"))
			fmt.Fprintf(&b, "   Content: %s\n\n", truncate(displayField(entry, "content", "No content"), sourceContentLimit))
		}
	}

	return b.String()
}

// FormatStatusReport renders a raw status reply with health fields and the
// processed file inventory.
func FormatStatusReport(fields map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "System Status: %s\n", displayField(fields, "status", "unknown"))
	fmt.Fprintf(&b, "Redis Status: %s\n", displayField(fields, "redis_status", "unknown"))
	fmt.Fprintf(&b, "Processed Documents: %d\n\n", intField(fields, "processed_documents", 0))

	files, _ := fields["available_files"].([]interface{})
	if len(files) > 0 {
		b.WriteString("Available Files:\n")
		for _, f := range files {
			fmt.Fprintf(&b, "  - %v\n", f)
		}
	} else {
		b.WriteString("No documents have been processed yet.\n")
	}

	return b.String()
}

// FormatProcessOutcome renders a raw processing reply as a one-line report.
func FormatProcessOutcome(fields map[string]interface{}) string {
	return fmt.Sprintf("Document processing %s: %s",
		displayField(fields, "status", "unknown"),
		displayField(fields, "message", "No message"))
}

// displayField renders a reply field for humans, with a fallback for missing
// or null values.
func displayField(fields map[string]interface{}, key, fallback string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// intField extracts an integer field, tolerating the float64 shape JSON
// numbers decode to.
func intField(fields map[string]interface{}, key string, fallback int) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// truncate caps s at limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
