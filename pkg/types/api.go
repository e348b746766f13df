package types

// Tool names exposed by the bridge. The set is fixed for the process lifetime.
const (
	ToolQueryManuals     = "query_manuals"
	ToolGetSystemStatus  = "get_system_status"
	ToolProcessDocuments = "process_documents"
)

// ToolNames returns the tool set in declaration order.
func ToolNames() []string {
	return []string{ToolQueryManuals, ToolGetSystemStatus, ToolProcessDocuments}
}

// KnownTool reports whether name is one of the exposed tools.
func KnownTool(name string) bool {
	switch name {
	case ToolQueryManuals, ToolGetSystemStatus, ToolProcessDocuments:
		return true
	}
	return false
}

// ToolCallRequest is the REST body for POST /call
type ToolCallRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// QueryRequest is the REST body for POST /query
type QueryRequest struct {
	Question   string `json:"question"`
	MaxResults int    `json:"max_results"`
}

// ToolResponse is the REST result envelope for tool invocations.
// It mirrors the MCP-native backend reply shape, so a bridge chained
// behind another bridge's REST surface normalizes it directly.
type ToolResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// NewToolResponse converts normalized tool output into the REST envelope.
// On failure the text is carried in both content and error.
func NewToolResponse(text string, isError bool) ToolResponse {
	if isError {
		return ToolResponse{Success: false, Content: text, Error: text}
	}
	return ToolResponse{Success: true, Content: text}
}

// Validate checks the call request before dispatch
func (r *ToolCallRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingToolName
	}
	if !KnownTool(r.Name) {
		return ErrUnknownTool
	}
	return nil
}

// Validate checks the query request bounds. A zero MaxResults is allowed
// and means "use the default".
func (r *QueryRequest) Validate() error {
	if r.Question == "" {
		return ErrEmptyQuestion
	}
	if len(r.Question) > MaxQuestionLength {
		return ErrQuestionTooLong
	}
	if r.MaxResults != 0 && (r.MaxResults < ResultLimitMin || r.MaxResults > ResultLimitMax) {
		return ErrMaxResultsRange
	}
	return nil
}

// Argument bounds for query_manuals, shared by the schema declarations
// and request validation.
const (
	MaxQuestionLength  = 500
	ResultLimitMin     = 1
	ResultLimitMax     = 20
	ResultLimitDefault = 5
)
