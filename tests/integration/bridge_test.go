package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/manualmind/mcp-bridge/internal/bridge"
	"github.com/manualmind/mcp-bridge/internal/manualmind"
	"github.com/manualmind/mcp-bridge/internal/ratelimit"
	"github.com/manualmind/mcp-bridge/internal/tools"
)

// BridgeTestSuite drives full stdio sessions against a stub backend and
// checks the line-level contract of the bridge.
type BridgeTestSuite struct {
	suite.Suite
	backend  *httptest.Server
	status   int
	replies  map[string]string
	requests []backendRequest
}

type backendRequest struct {
	method string
	path   string
	body   string
}

func (s *BridgeTestSuite) SetupSuite() {
	s.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.requests = append(s.requests, backendRequest{
			method: r.Method,
			path:   r.URL.Path,
			body:   string(body),
		})
		if s.status != http.StatusOK {
			w.WriteHeader(s.status)
			_, _ = w.Write([]byte("backend says no"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s.replies[r.URL.Path]))
	}))
}

func (s *BridgeTestSuite) TearDownSuite() {
	s.backend.Close()
}

func (s *BridgeTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.requests = nil
	s.replies = map[string]string{
		"/query":             `{"query":"Q","response":"A","status":"success"}`,
		"/status":            `{"status":"healthy","redis_status":"connected","processed_documents":1}`,
		"/process-documents": `{"status":"started","message":"Processing 1 documents"}`,
	}
}

// runSession feeds one newline-delimited session through a fresh bridge
// and returns the emitted lines.
func (s *BridgeTestSuite) runSession(input string) []string {
	return s.runSessionAgainst(s.backend.URL, input, nil)
}

func (s *BridgeTestSuite) runSessionAgainst(backendURL, input string, limiter *ratelimit.Limiter) []string {
	s.T().Helper()

	client, err := manualmind.NewClient(manualmind.ClientConfig{
		BaseURL:     backendURL,
		MaxAttempts: 1,
		Timeout:     5 * time.Second,
	})
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	invoker := tools.NewInvoker(client, limiter, log)

	var out bytes.Buffer
	server := bridge.NewServer(invoker, strings.NewReader(input), &out, log)
	s.Require().NoError(server.Run(context.Background()))

	raw := strings.TrimSpace(out.String())
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

// rpcResponse decodes output lines independently of the bridge's own
// types, so the wire format itself is under test.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *BridgeTestSuite) decode(line string) rpcResponse {
	s.T().Helper()
	var resp rpcResponse
	s.Require().NoError(json.Unmarshal([]byte(line), &resp), "line: %s", line)
	s.Equal("2.0", resp.JSONRPC)
	return resp
}

type callResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

// toolText extracts the single text block of a tools/call response.
func (s *BridgeTestSuite) toolText(line string) (string, bool) {
	s.T().Helper()
	resp := s.decode(line)
	s.Require().Nil(resp.Error, "expected a tool result, got %+v", resp.Error)

	var result callResult
	s.Require().NoError(json.Unmarshal(resp.Result, &result))
	s.Require().Len(result.Content, 1)
	s.Equal("text", result.Content[0].Type)
	return result.Content[0].Text, result.IsError
}

func callLine(id int, tool, arguments string) string {
	if arguments == "" {
		return fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"%s"}}`, id, tool)
	}
	return fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"%s","arguments":%s}}`, id, tool, arguments)
}

func (s *BridgeTestSuite) TestInitializeHandshake() {
	lines := s.runSession(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)
	s.Require().Len(lines, 1)

	resp := s.decode(lines[0])
	s.Require().Nil(resp.Error)
	s.Equal(float64(1), resp.ID)

	var result struct {
		ProtocolVersion string                     `json:"protocolVersion"`
		Capabilities    map[string]json.RawMessage `json:"capabilities"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	s.Require().NoError(json.Unmarshal(resp.Result, &result))
	s.Equal("2024-11-05", result.ProtocolVersion)
	s.Equal("manualmind-mcp", result.ServerInfo.Name)
	s.Equal("0.1.0", result.ServerInfo.Version)
	s.Contains(result.Capabilities, "tools")
}

func (s *BridgeTestSuite) TestStaticCapabilityMethods() {
	lines := s.runSession(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":2,"method":"prompts/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
	}, "\n"))
	s.Require().Len(lines, 3)

	s.JSONEq(`{"jsonrpc":"2.0","id":1,"result":{}}`, lines[0])
	s.JSONEq(`{"jsonrpc":"2.0","id":2,"result":{"prompts":[]}}`, lines[1])
	s.JSONEq(`{"jsonrpc":"2.0","id":3,"result":{"resources":[]}}`, lines[2])
}

func (s *BridgeTestSuite) TestToolsListDescriptors() {
	lines := s.runSession(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	s.Require().Len(lines, 1)

	resp := s.decode(lines[0])
	s.Require().Nil(resp.Error)

	var result struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			InputSchema struct {
				Type       string                     `json:"type"`
				Properties map[string]json.RawMessage `json:"properties"`
				Required   []string                   `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	s.Require().NoError(json.Unmarshal(resp.Result, &result))
	s.Require().Len(result.Tools, 3)

	query := result.Tools[0]
	s.Equal("query_manuals", query.Name)
	s.Equal("object", query.InputSchema.Type)
	s.Contains(query.InputSchema.Properties, "question")
	s.Contains(query.InputSchema.Properties, "max_results")
	s.Equal([]string{"question"}, query.InputSchema.Required)

	s.Equal("get_system_status", result.Tools[1].Name)
	s.Empty(result.Tools[1].InputSchema.Required)
	s.Equal("process_documents", result.Tools[2].Name)
}

func (s *BridgeTestSuite) TestOneResponsePerRequestInOrder() {
	lines := s.runSession(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		callLine(3, "query_manuals", `{"question":"How do I reset?"}`),
		`{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":3}}`,
		`{"jsonrpc":"2.0","id":4,"method":"nonsense"}`,
		`{"jsonrpc":"2.0","id":5,"method":"ping"}`,
	}, "\n"))

	s.Require().Len(lines, 5, "five ids in, five lines out")
	for i, line := range lines {
		s.Equal(float64(i+1), s.decode(line).ID, "responses keep request order")
	}
}

func (s *BridgeTestSuite) TestNotificationsProduceNoOutputAndNoWork() {
	lines := s.runSession(strings.Join([]string{
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":7}}`,
		`{"jsonrpc":"2.0","method":"tools/call","params":{"name":"query_manuals","arguments":{"question":"hi"}}}`,
		`{"jsonrpc":"2.0","id":null,"method":"tools/call","params":{"name":"query_manuals","arguments":{"question":"hi"}}}`,
		`{"jsonrpc":"2.0","method":"completely/unknown"}`,
	}, "\n"))

	s.Nil(lines, "notifications never answer")
	s.Empty(s.requests, "a tools/call without an id performs no backend work")
}

func (s *BridgeTestSuite) TestUnparsableLinesAreSkipped() {
	lines := s.runSession(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,`,
		`hello there`,
		`42`,
		`"just a string"`,
		`[{"id":9,"method":"ping"}]`,
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
	}, "\n"))

	s.Require().Len(lines, 1, "junk lines produce no output at all")
	s.Equal(float64(1), s.decode(lines[0]).ID)
}

func (s *BridgeTestSuite) TestInvalidIDTypes() {
	lines := s.runSession(strings.Join([]string{
		`{"jsonrpc":"2.0","id":true,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":{"nested":1},"method":"ping"}`,
		`{"jsonrpc":"2.0","id":[1,2],"method":"ping"}`,
	}, "\n"))
	s.Require().Len(lines, 3)

	for _, line := range lines {
		resp := s.decode(line)
		s.Require().NotNil(resp.Error)
		s.Equal(-32600, resp.Error.Code)
		s.Nil(resp.ID)
		s.Contains(line, `"id":null`)
	}
}

func (s *BridgeTestSuite) TestUnknownMethodWithID() {
	lines := s.runSession(`{"jsonrpc":"2.0","id":8,"method":"tools/install"}`)
	s.Require().Len(lines, 1)

	resp := s.decode(lines[0])
	s.Require().NotNil(resp.Error)
	s.Equal(-32601, resp.Error.Code)
	s.Equal("Method not found: tools/install", resp.Error.Message)
}

func (s *BridgeTestSuite) TestEmptyQuestionShortCircuits() {
	lines := s.runSession(strings.Join([]string{
		callLine(1, "query_manuals", `{"question":""}`),
		callLine(2, "query_manuals", `{"question":"   "}`),
		callLine(3, "query_manuals", `{}`),
		callLine(4, "query_manuals", ""),
	}, "\n"))
	s.Require().Len(lines, 4)

	for _, line := range lines {
		text, isError := s.toolText(line)
		s.True(isError)
		s.Equal("Question cannot be empty", text)
	}
	s.Empty(s.requests, "an empty question never reaches the backend")
}

func (s *BridgeTestSuite) TestReplyShapeNormalization() {
	tests := []struct {
		name      string
		reply     string
		wantText  string
		wantError bool
	}{
		{
			name:     "native success with content",
			reply:    `{"success":true,"content":"From the manual"}`,
			wantText: "From the manual",
		},
		{
			name:     "native success without content",
			reply:    `{"success":true}`,
			wantText: "Query completed",
		},
		{
			name:      "native failure with error",
			reply:     `{"success":false,"error":"Vector index unavailable"}`,
			wantText:  "Vector index unavailable",
			wantError: true,
		},
		{
			name:      "native failure without error",
			reply:     `{"success":false}`,
			wantText:  "Unknown error",
			wantError: true,
		},
		{
			name:     "raw reply with response",
			reply:    `{"query":"q","response":"Detailed answer","status":"success"}`,
			wantText: "Detailed answer",
		},
		{
			name:     "raw reply with empty response",
			reply:    `{"query":"q","response":""}`,
			wantText: "No response",
		},
		{
			name:     "unrecognized object",
			reply:    `{"status":"ok"}`,
			wantText: "Query completed but response format unrecognized",
		},
		{
			name:     "empty object",
			reply:    `{}`,
			wantText: "Query completed but response format unrecognized",
		},
		{
			name:     "non-object payload",
			reply:    `[1,2,3]`,
			wantText: "Query completed but response format unrecognized",
		},
		{
			name:     "non-boolean success is not the native shape",
			reply:    `{"success":"yes"}`,
			wantText: "Query completed but response format unrecognized",
		},
		{
			name:      "unparsable payload counts as transport failure",
			reply:     `not json at all`,
			wantText:  "HTTP request failed",
			wantError: true,
		},
	}

	for i, tt := range tests {
		s.Run(tt.name, func() {
			s.replies["/query"] = tt.reply
			lines := s.runSession(callLine(i+1, "query_manuals", `{"question":"hello"}`))
			s.Require().Len(lines, 1)

			text, isError := s.toolText(lines[0])
			s.Equal(tt.wantText, text)
			s.Equal(tt.wantError, isError)
		})
	}
}

func (s *BridgeTestSuite) TestMaxResultsHandling() {
	s.replies["/query"] = `{"success":true,"content":"ok"}`

	s.Run("integral value forwarded", func() {
		s.requests = nil
		lines := s.runSession(callLine(1, "query_manuals", `{"question":"q","max_results":2}`))
		_, isError := s.toolText(lines[0])
		s.False(isError)
		s.Require().Len(s.requests, 1)
		s.Contains(s.requests[0].body, `"max_results":2`)
	})

	s.Run("absent value defaults to five", func() {
		s.requests = nil
		lines := s.runSession(callLine(2, "query_manuals", `{"question":"q"}`))
		_, isError := s.toolText(lines[0])
		s.False(isError)
		s.Require().Len(s.requests, 1)
		s.Contains(s.requests[0].body, `"max_results":5`)
	})

	s.Run("non-numeric value defaults to five", func() {
		s.requests = nil
		lines := s.runSession(callLine(3, "query_manuals", `{"question":"q","max_results":"five"}`))
		_, isError := s.toolText(lines[0])
		s.False(isError)
		s.Require().Len(s.requests, 1)
		s.Contains(s.requests[0].body, `"max_results":5`)
	})

	for _, bad := range []string{"2.5", "0", "21", "-3"} {
		s.Run("rejected value "+bad, func() {
			s.requests = nil
			lines := s.runSession(callLine(4, "query_manuals", `{"question":"q","max_results":`+bad+`}`))
			text, isError := s.toolText(lines[0])
			s.True(isError)
			s.Contains(text, "Invalid arguments")
			s.Empty(s.requests, "rejected arguments never reach the backend")
		})
	}
}

func (s *BridgeTestSuite) TestBackendRejectionTexts() {
	s.status = http.StatusServiceUnavailable

	lines := s.runSession(strings.Join([]string{
		callLine(1, "query_manuals", `{"question":"q"}`),
		callLine(2, "get_system_status", `{}`),
		callLine(3, "process_documents", `{}`),
	}, "\n"))
	s.Require().Len(lines, 3)

	text, isError := s.toolText(lines[0])
	s.True(isError)
	s.Equal("API request failed with status 503: backend says no", text)

	text, isError = s.toolText(lines[1])
	s.True(isError)
	s.Equal("Failed to get status: 503 - backend says no", text)

	text, isError = s.toolText(lines[2])
	s.True(isError)
	s.Equal("Failed to process documents: 503 - backend says no", text)
}

func (s *BridgeTestSuite) TestTransportFailureDoesNotStallLoop() {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	lines := s.runSessionAgainst(deadURL, strings.Join([]string{
		callLine(1, "query_manuals", `{"question":"q"}`),
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n"), nil)
	s.Require().Len(lines, 2)

	text, isError := s.toolText(lines[0])
	s.True(isError)
	s.Equal("HTTP request failed", text)

	s.Nil(s.decode(lines[1]).Error, "the loop keeps serving after a dead backend")
}

func (s *BridgeTestSuite) TestRateLimitBudget() {
	s.replies["/query"] = `{"success":true,"content":"ok"}`
	limiter := ratelimit.NewPerMinute(2)

	lines := s.runSessionAgainst(s.backend.URL, strings.Join([]string{
		callLine(1, "query_manuals", `{"question":"one"}`),
		callLine(2, "query_manuals", `{"question":"two"}`),
		callLine(3, "query_manuals", `{"question":"three"}`),
	}, "\n"), limiter)
	s.Require().Len(lines, 3)

	_, isError := s.toolText(lines[0])
	s.False(isError)
	_, isError = s.toolText(lines[1])
	s.False(isError)

	text, isError := s.toolText(lines[2])
	s.True(isError)
	s.Equal("Rate limit exceeded. Maximum 2 requests per minute allowed.", text)
	s.Len(s.requests, 2, "the rejected call performs no backend work")
}

func (s *BridgeTestSuite) TestLongLineHandled() {
	s.replies["/query"] = `{"success":true,"content":"ok"}`
	padding := strings.Repeat("x", 200*1024)

	lines := s.runSession(callLine(1, "query_manuals",
		`{"question":"q","annotation":"`+padding+`"}`))
	s.Require().Len(lines, 1)

	text, isError := s.toolText(lines[0])
	s.False(isError)
	s.Equal("ok", text)
}

func TestBridgeSuite(t *testing.T) {
	suite.Run(t, new(BridgeTestSuite))
}
