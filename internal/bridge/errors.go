package bridge

import "fmt"

// JSON-RPC error codes
const (
	ErrorCodeInvalidRequest = -32600 // Malformed request envelope
	ErrorCodeMethodNotFound = -32601 // Unknown method or tool
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
)

// newProtocolError creates a properly coded protocol error
func newProtocolError(code int, message string, data interface{}) error {
	return &ProtocolError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// ProtocolError represents a JSON-RPC protocol error
type ProtocolError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
