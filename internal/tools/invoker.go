package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/manualmind/mcp-bridge/internal/manualmind"
	"github.com/manualmind/mcp-bridge/internal/ratelimit"
	"github.com/manualmind/mcp-bridge/pkg/types"
)

// Outcome is the terminal result of one tool invocation: a single text
// block plus the flag marking a content-level failure. Reply carries the
// parsed backend response when one exists, so the REST surface can
// re-render raw replies; it is nil for calls stopped before the backend.
type Outcome struct {
	Tool    string
	Text    string
	IsError bool
	Reply   *manualmind.Reply
}

// Invoker maps tool invocations onto backend calls, enforcing the rate
// limit and the declared argument schemas first. Shared by the stdio loop
// and the REST surface.
type Invoker struct {
	client  *manualmind.Client
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

// NewInvoker creates an invoker. A nil limiter disables rate limiting.
func NewInvoker(client *manualmind.Client, limiter *ratelimit.Limiter, log *slog.Logger) *Invoker {
	if log == nil {
		log = slog.Default()
	}
	return &Invoker{client: client, limiter: limiter, log: log}
}

// Invoke runs one tool call. A missing or unknown tool name returns an
// error for the protocol layer to encode; everything else, including
// backend failures, returns an Outcome whose IsError flag marks
// content-level problems.
func (inv *Invoker) Invoke(ctx context.Context, name string, args map[string]interface{}) (*Outcome, error) {
	if name == "" {
		return nil, types.ErrMissingToolName
	}
	if !types.KnownTool(name) {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownTool, name)
	}

	if inv.limiter != nil && !inv.limiter.Allow() {
		inv.log.Warn("tool call rejected by rate limit", "tool", name)
		return &Outcome{
			Tool:    name,
			Text:    fmt.Sprintf("Rate limit exceeded. Maximum %d requests per minute allowed.", inv.limiter.Limit()),
			IsError: true,
		}, nil
	}

	switch name {
	case types.ToolQueryManuals:
		return inv.queryManuals(ctx, args)
	case types.ToolGetSystemStatus:
		return inv.systemStatus(ctx, args)
	default:
		return inv.processDocuments(ctx, args)
	}
}

func (inv *Invoker) queryManuals(ctx context.Context, args map[string]interface{}) (*Outcome, error) {
	question := strings.TrimSpace(getStringDefault(args, "question", ""))
	if question == "" {
		return &Outcome{
			Tool:    types.ToolQueryManuals,
			Text:    "Question cannot be empty",
			IsError: true,
		}, nil
	}

	maxResults := types.ResultLimitDefault
	effective := map[string]interface{}{"question": question}
	if v, ok := args["max_results"].(float64); ok {
		// Validated as the raw numeric so non-integers and out-of-range
		// values are rejected rather than silently truncated. Non-numeric
		// values keep the default.
		effective["max_results"] = v
		maxResults = int(v)
	}

	if err := queryManualsSchema.Validate(effective); err != nil {
		return invalidArguments(types.ToolQueryManuals, err), nil
	}

	reply, err := inv.client.Query(ctx, question, maxResults)
	if err != nil {
		return inv.failedCall(types.ToolQueryManuals, "API request failed with status %d: %s", err), nil
	}

	return inv.finish(types.ToolQueryManuals, reply), nil
}

func (inv *Invoker) systemStatus(ctx context.Context, args map[string]interface{}) (*Outcome, error) {
	if out := rejectArguments(types.ToolGetSystemStatus, args); out != nil {
		return out, nil
	}

	reply, err := inv.client.Status(ctx)
	if err != nil {
		return inv.failedCall(types.ToolGetSystemStatus, "Failed to get status: %d - %s", err), nil
	}

	return inv.finish(types.ToolGetSystemStatus, reply), nil
}

func (inv *Invoker) processDocuments(ctx context.Context, args map[string]interface{}) (*Outcome, error) {
	if out := rejectArguments(types.ToolProcessDocuments, args); out != nil {
		return out, nil
	}

	reply, err := inv.client.ProcessDocuments(ctx)
	if err != nil {
		return inv.failedCall(types.ToolProcessDocuments, "Failed to process documents: %d - %s", err), nil
	}

	return inv.finish(types.ToolProcessDocuments, reply), nil
}

// failedCall maps a client error onto the tool's content-level error text.
// Backend status rejections keep their per-tool format; everything else is
// the synthetic transport-failure reply.
func (inv *Invoker) failedCall(tool, statusFormat string, err error) *Outcome {
	var statusErr *manualmind.StatusError
	if errors.As(err, &statusErr) {
		inv.log.Warn("backend rejected tool call",
			"tool", tool,
			"status", statusErr.StatusCode,
		)
		return &Outcome{
			Tool:    tool,
			Text:    fmt.Sprintf(statusFormat, statusErr.StatusCode, statusErr.Body),
			IsError: true,
		}
	}

	inv.log.Error("backend call failed", "tool", tool, "error", err)
	return inv.finish(tool, manualmind.TransportFailure())
}

func (inv *Invoker) finish(tool string, reply *manualmind.Reply) *Outcome {
	result := manualmind.Normalize(reply, tool)
	return &Outcome{
		Tool:    tool,
		Text:    result.Text,
		IsError: result.IsError,
		Reply:   reply,
	}
}

// rejectArguments enforces the empty schema of the no-argument tools.
func rejectArguments(tool string, args map[string]interface{}) *Outcome {
	if len(args) == 0 {
		return nil
	}
	if err := noArgumentsSchema.Validate(map[string]interface{}(args)); err != nil {
		return invalidArguments(tool, err)
	}
	return nil
}

func invalidArguments(tool string, err error) *Outcome {
	return &Outcome{
		Tool:    tool,
		Text:    "Invalid arguments: " + err.Error(),
		IsError: true,
	}
}

// getStringDefault extracts a string argument with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
