package manualmind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manualmind/mcp-bridge/pkg/types"
)

func mustParse(t *testing.T, body string) *Reply {
	t.Helper()
	r, err := ParseReply([]byte(body))
	require.NoError(t, err)
	return r
}

func TestNormalizeAdapterShape(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		tool      string
		wantText  string
		wantError bool
	}{
		{
			name:     "success with content",
			body:     `{"success":true,"content":"Hello"}`,
			tool:     types.ToolQueryManuals,
			wantText: "Hello",
		},
		{
			name:      "failure with error text",
			body:      `{"success":false,"error":"boom"}`,
			tool:      types.ToolQueryManuals,
			wantText:  "boom",
			wantError: true,
		},
		{
			name:      "failure without error text",
			body:      `{"success":false}`,
			tool:      types.ToolQueryManuals,
			wantText:  "Unknown error",
			wantError: true,
		},
		{
			name:     "query success without content",
			body:     `{"success":true}`,
			tool:     types.ToolQueryManuals,
			wantText: "Query completed",
		},
		{
			name:     "status success without content",
			body:     `{"success":true}`,
			tool:     types.ToolGetSystemStatus,
			wantText: "Status retrieved",
		},
		{
			name:     "process success without content",
			body:     `{"success":true}`,
			tool:     types.ToolProcessDocuments,
			wantText: "Processing initiated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(mustParse(t, tt.body), tt.tool)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantError, got.IsError)
		})
	}
}

func TestNormalizeRawShape(t *testing.T) {
	t.Run("uses the response field", func(t *testing.T) {
		got := Normalize(mustParse(t, `{"query":"Q","response":"A"}`), types.ToolQueryManuals)
		assert.Equal(t, "A", got.Text)
		assert.False(t, got.IsError)
	})

	t.Run("missing response falls back", func(t *testing.T) {
		got := Normalize(mustParse(t, `{"query":"Q"}`), types.ToolQueryManuals)
		assert.Equal(t, "No response", got.Text)
		assert.False(t, got.IsError)
	})

	t.Run("boolean success wins over query", func(t *testing.T) {
		got := Normalize(mustParse(t, `{"success":true,"content":"C","query":"Q","response":"A"}`), types.ToolQueryManuals)
		assert.Equal(t, "C", got.Text)
	})
}

func TestNormalizeUnrecognizedShape(t *testing.T) {
	tests := []struct {
		tool     string
		wantText string
	}{
		{types.ToolQueryManuals, "Query completed but response format unrecognized"},
		{types.ToolGetSystemStatus, "Status request completed but response format unrecognized"},
		{types.ToolProcessDocuments, "Processing request completed but response format unrecognized"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			got := Normalize(mustParse(t, `{"something":"else"}`), tt.tool)
			assert.Equal(t, tt.wantText, got.Text)
			assert.False(t, got.IsError)
		})
	}

	t.Run("raw status reply has no query field", func(t *testing.T) {
		body := `{"status":"healthy","redis_status":"connected","processed_documents":3}`
		got := Normalize(mustParse(t, body), types.ToolGetSystemStatus)
		assert.Equal(t, "Status request completed but response format unrecognized", got.Text)
		assert.False(t, got.IsError)
	})
}

func TestNormalizeTransportFailure(t *testing.T) {
	for _, tool := range types.ToolNames() {
		got := Normalize(TransportFailure(), tool)
		assert.Equal(t, "HTTP request failed", got.Text)
		assert.True(t, got.IsError)
	}
}
