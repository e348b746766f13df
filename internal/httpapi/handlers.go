package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/manualmind/mcp-bridge/internal/bridge"
	"github.com/manualmind/mcp-bridge/internal/tools"
	"github.com/manualmind/mcp-bridge/pkg/types"
)

// handleRoot serves the service descriptor. The catch-all pattern also
// makes this the 404 path for unknown routes.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonResponse(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"service": "ManualMind MCP Server",
		"version": bridge.ServerVersion,
		"endpoints": map[string]string{
			"tools":   "/tools - List available tools",
			"call":    "/call - Call a tool",
			"query":   "/query - Direct query endpoint",
			"status":  "/status - Get system status",
			"process": "/process - Process documents",
		},
	})
}

// toolSummary is the flattened descriptor this surface serves instead of
// the JSON Schema form the MCP side uses.
type toolSummary struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	summaries := make([]toolSummary, 0, len(types.ToolNames()))
	for _, tool := range tools.All() {
		summary := toolSummary{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  map[string]string{},
		}
		if tool.Name == types.ToolQueryManuals {
			summary.Parameters = map[string]string{
				"question":    "string (required, 1-500 chars)",
				"max_results": "integer (optional, 1-20, default: 5)",
			}
		}
		summaries = append(summaries, summary)
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{"tools": summaries})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req types.ToolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body: " + err.Error()})
		return
	}

	outcome, err := s.invoker.Invoke(r.Context(), req.Name, req.Arguments)
	if err != nil {
		// A bad tool name is a tool-level condition on this surface, not
		// a transport failure.
		jsonResponse(w, http.StatusOK, types.ToolResponse{
			Success: false,
			Error:   "Unknown tool: " + req.Name,
		})
		return
	}
	s.writeOutcome(w, outcome)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req types.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body: " + err.Error()})
		return
	}

	args := map[string]interface{}{"question": req.Question}
	if req.MaxResults != 0 {
		// The invoker validates numeric arguments in their decoded form.
		args["max_results"] = float64(req.MaxResults)
	}

	outcome, err := s.invoker.Invoke(r.Context(), types.ToolQueryManuals, args)
	if err != nil {
		jsonResponse(w, http.StatusOK, types.ToolResponse{Success: false, Error: err.Error()})
		return
	}
	s.writeOutcome(w, outcome)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	outcome, err := s.invoker.Invoke(r.Context(), types.ToolGetSystemStatus, nil)
	if err != nil {
		jsonResponse(w, http.StatusOK, types.ToolResponse{Success: false, Error: err.Error()})
		return
	}
	s.writeOutcome(w, outcome)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	outcome, err := s.invoker.Invoke(r.Context(), types.ToolProcessDocuments, nil)
	if err != nil {
		jsonResponse(w, http.StatusOK, types.ToolResponse{Success: false, Error: err.Error()})
		return
	}
	s.writeOutcome(w, outcome)
}
