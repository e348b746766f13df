package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/manualmind/mcp-bridge/pkg/types"
)

// All returns the fixed tool table in declaration order. Descriptors are
// immutable for the process lifetime.
func All() []mcp.Tool {
	return []mcp.Tool{
		QueryManualsTool(),
		SystemStatusTool(),
		ProcessDocumentsTool(),
	}
}

// QueryManualsTool returns the tool definition for query_manuals
func QueryManualsTool() mcp.Tool {
	return mcp.Tool{
		Name:        types.ToolQueryManuals,
		Description: "Query the ManualMind system to search for information in user manuals using natural language",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to ask about the manuals",
					"minLength":   1,
					"maxLength":   500,
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 5)",
					"minimum":     1,
					"maximum":     20,
					"default":     5,
				},
			},
			Required: []string{"question"},
		},
	}
}

// SystemStatusTool returns the tool definition for get_system_status
func SystemStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        types.ToolGetSystemStatus,
		Description: "Get the status of the ManualMind system including available documents and health",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// ProcessDocumentsTool returns the tool definition for process_documents
func ProcessDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        types.ToolProcessDocuments,
		Description: "Trigger processing of documents in the ManualMind media folder",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// Validation schemas, compiled once. These enforce what the descriptors
// declare, plus additionalProperties for the no-argument tools.
var (
	queryManualsSchema = jsonschema.MustCompileString("query_manuals.json", `{
		"type": "object",
		"properties": {
			"question":    {"type": "string", "minLength": 1, "maxLength": 500},
			"max_results": {"type": "integer", "minimum": 1, "maximum": 20}
		},
		"required": ["question"]
	}`)

	noArgumentsSchema = jsonschema.MustCompileString("no_arguments.json", `{
		"type": "object",
		"properties": {},
		"additionalProperties": false
	}`)
)
