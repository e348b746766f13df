package manualmind

import (
	"encoding/json"
	"fmt"
)

// Reply is a backend response in either of the two shapes the service can
// produce: the adapter shape {success, content, error} or the raw domain
// shape {query, response, sources, status, ...}. Success is nil unless the
// reply carried a boolean success field, which is what distinguishes the
// two shapes.
type Reply struct {
	Success  *bool
	Content  string
	Error    string
	Query    string
	Response string
	Status   string

	// fields holds the decoded reply object for rich rendering.
	// Nil when the body was valid JSON but not an object.
	fields map[string]interface{}
}

// ParseReply decodes a backend response body. A body that is not valid JSON
// returns an error; a body that is valid JSON but not an object yields an
// empty Reply (neither shape applies to it).
func ParseReply(data []byte) (*Reply, error) {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode backend reply: %w", err)
	}

	fields, ok := decoded.(map[string]interface{})
	if !ok {
		return &Reply{}, nil
	}

	r := &Reply{fields: fields}
	if b, ok := fields["success"].(bool); ok {
		r.Success = &b
	}
	r.Content, _ = fields["content"].(string)
	r.Error, _ = fields["error"].(string)
	r.Query, _ = fields["query"].(string)
	r.Response, _ = fields["response"].(string)
	r.Status, _ = fields["status"].(string)

	return r, nil
}

// TransportFailure returns the synthetic reply substituted for a backend
// call that never produced a usable body (connection refused, timeout,
// non-JSON response).
func TransportFailure() *Reply {
	failed := false
	return &Reply{Success: &failed, Error: "HTTP request failed"}
}

// IsNative reports whether the reply is the adapter shape, identified by a
// boolean success field.
func (r *Reply) IsNative() bool {
	return r.Success != nil
}

// HasQuery reports whether the reply is the raw domain shape, identified by
// a non-empty query field on a reply without a boolean success.
func (r *Reply) HasQuery() bool {
	return r.Query != ""
}
