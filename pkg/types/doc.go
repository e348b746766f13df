// Package types provides shared type definitions for the ManualMind MCP bridge.
//
// This package defines the request and response envelopes used by the REST
// surface and the tool name constants shared across components.
//
// # Core Types
//
// ToolCallRequest carries a tool invocation received over HTTP:
//
//	req := &types.ToolCallRequest{
//	    Name:      types.ToolQueryManuals,
//	    Arguments: map[string]interface{}{"question": "How do I reset the device?"},
//	}
//
// ToolResponse is the envelope every REST tool route answers with. It mirrors
// the MCP-native backend reply shape {success, content, error}, so a bridge
// pointed at another bridge's REST surface interprets replies without a
// special case:
//
//	resp := types.NewToolResponse("Answer text", false)
//	// {"success": true, "content": "Answer text"}
//
//	resp = types.NewToolResponse("boom", true)
//	// {"success": false, "content": "boom", "error": "boom"}
//
// # Validation
//
// Request types implement validation methods returning sentinel errors:
//
//	if err := req.Validate(); err != nil {
//	    // errors.Is(err, types.ErrUnknownTool) etc.
//	}
//
// Argument bounds (question length, max_results range) are exported as
// constants so the tool schemas and validators stay in one place.
package types
