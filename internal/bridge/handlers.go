package bridge

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/manualmind/mcp-bridge/internal/tools"
	"github.com/manualmind/mcp-bridge/pkg/types"
)

// InitializeResult is the initialize handshake payload.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    Capabilities       `json:"capabilities"`
	ServerInfo      mcp.Implementation `json:"serverInfo"`
}

// Capabilities declares what the bridge offers. Only tools are served.
type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability is the tools capability object. The bridge never sends
// listChanged notifications, so it stays empty.
type ToolsCapability struct{}

// ListToolsResult is the tools/list payload.
type ListToolsResult struct {
	Tools []mcp.Tool `json:"tools"`
}

// handleInitialize answers the handshake. The client's own params are
// accepted without inspection; version negotiation is one-sided.
func (s *Server) handleInitialize(ctx context.Context, req *Request) (json.RawMessage, error) {
	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    Capabilities{Tools: ToolsCapability{}},
		ServerInfo: mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}
	return json.Marshal(result)
}

// handleToolsList returns the static tool table.
func (s *Server) handleToolsList(ctx context.Context, req *Request) (json.RawMessage, error) {
	return json.Marshal(ListToolsResult{Tools: tools.All()})
}

// handleToolsCall runs one tool invocation. Dispatch failures (missing or
// unknown tool name, undecodable params) surface as protocol errors;
// everything that goes wrong past that point is reported inside the tool
// result with isError set.
func (s *Server) handleToolsCall(ctx context.Context, req *Request) (json.RawMessage, error) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, newProtocolError(ErrorCodeInvalidParams, "Invalid params: "+err.Error(), nil)
		}
	}

	outcome, err := s.invoker.Invoke(ctx, params.Name, params.Arguments)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrMissingToolName):
			return nil, newProtocolError(ErrorCodeInvalidParams, "Invalid params: tool name is required", nil)
		case errors.Is(err, types.ErrUnknownTool):
			return nil, newProtocolError(ErrorCodeMethodNotFound, "Unknown tool: "+params.Name, nil)
		}
		return nil, err
	}

	if outcome.IsError {
		return json.Marshal(mcp.NewToolResultError(outcome.Text))
	}
	return json.Marshal(mcp.NewToolResultText(outcome.Text))
}
