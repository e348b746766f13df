package bridge

import (
	"context"
	"encoding/json"
	"errors"
)

// handlerFunc computes the result payload for one method. Returning a
// *ProtocolError keeps its code on the wire; any other error becomes an
// internal error response.
type handlerFunc func(ctx context.Context, req *Request) (json.RawMessage, error)

// staticResults answers methods whose payloads never change: the
// protocol-level ping and the capability lists the bridge does not
// populate. The notification methods appear here so that a client that
// wrongly attaches an id to one still gets its required response.
var staticResults = map[string]json.RawMessage{
	"ping":                      json.RawMessage(`{}`),
	"prompts/list":              json.RawMessage(`{"prompts":[]}`),
	"resources/list":            json.RawMessage(`{"resources":[]}`),
	"notifications/initialized": json.RawMessage(`{}`),
	"notifications/cancelled":   json.RawMessage(`{}`),
}

// dispatch routes one decoded request and returns the response to write,
// or nil when the message is a notification and nothing may be written.
func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	if req.HasInvalidID() {
		return newError(nil, ErrorCodeInvalidRequest, "id must be a string or number")
	}

	if req.IsNotification() {
		s.handleNotification(req)
		return nil
	}

	if handler, ok := s.handlers[req.Method]; ok {
		result, err := handler(ctx, req)
		if err != nil {
			return errorResponse(req.ID, err)
		}
		return newResult(req.ID, result)
	}

	if result, ok := staticResults[req.Method]; ok {
		return newResult(req.ID, result)
	}

	return newError(req.ID, ErrorCodeMethodNotFound, "Method not found: "+req.Method)
}

// handleNotification logs the lifecycle notifications the protocol
// defines and drops everything else. Notifications never produce output.
func (s *Server) handleNotification(req *Request) {
	switch req.Method {
	case "notifications/initialized":
		s.log.Info("client initialization complete")
	case "notifications/cancelled":
		// The correlated call may already be in its blocking HTTP phase,
		// so cancellation is acknowledged in the log only.
		s.log.Info("cancellation received", "params", string(req.Params))
	default:
		s.log.Debug("ignoring notification", "method", req.Method)
	}
}

// errorResponse converts a handler error into its wire form.
func errorResponse(id interface{}, err error) *Response {
	var protoErr *ProtocolError
	if errors.As(err, &protoErr) {
		resp := newError(id, protoErr.Code, protoErr.Message)
		resp.Error.Data = protoErr.Data
		return resp
	}
	return newError(id, ErrorCodeInternalError, "Internal error: "+err.Error())
}
