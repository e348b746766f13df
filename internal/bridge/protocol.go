package bridge

import (
	"bytes"
	"encoding/json"
)

// Request is one incoming JSON-RPC 2.0 message. ID holds a string or a
// float64 once decoded; the unexported flags preserve the distinction
// between an absent id, an explicit null, and an id of a disallowed type,
// which the dispatcher treats differently.
type Request struct {
	ID     interface{}     `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`

	idPresent bool
	idNull    bool
	idInvalid bool
}

// UnmarshalJSON decodes a request while recording how the id field was
// spelled. A structurally malformed message (non-object top level,
// non-string method) fails to decode and is reported as a parse error.
func (r *Request) UnmarshalJSON(data []byte) error {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	*r = Request{}
	if raw, ok := object["method"]; ok {
		if err := json.Unmarshal(raw, &r.Method); err != nil {
			return err
		}
	}
	r.Params = object["params"]

	rawID, ok := object["id"]
	if !ok {
		return nil
	}
	r.idPresent = true

	if bytes.Equal(bytes.TrimSpace(rawID), []byte("null")) {
		r.idNull = true
		return nil
	}

	var parsed interface{}
	if err := json.Unmarshal(rawID, &parsed); err != nil {
		return err
	}
	switch parsed.(type) {
	case string, float64:
		r.ID = parsed
	default:
		// Booleans, objects, and arrays are not legal ids.
		r.idInvalid = true
	}
	return nil
}

// IsNotification reports whether the message must never receive a
// response: the id is absent or explicitly null.
func (r *Request) IsNotification() bool {
	return !r.idPresent || r.idNull
}

// HasInvalidID reports whether an id was present but of a type JSON-RPC
// does not allow.
func (r *Request) HasInvalidID() bool {
	return r.idInvalid
}

// Response is one outgoing JSON-RPC 2.0 message. Exactly one of Result
// or Error is set. ID carries no omitempty so error responses that
// cannot be correlated still emit an explicit null id.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// jsonrpcVersion is stamped on every outgoing response.
const jsonrpcVersion = "2.0"

// newResult builds a success response echoing the request id.
func newResult(id interface{}, result json.RawMessage) *Response {
	return &Response{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Result:  result,
	}
}

// newError builds an error response. Pass a nil id when the request id
// could not be established.
func newError(id interface{}, code int, message string) *Response {
	return &Response{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
	}
}
