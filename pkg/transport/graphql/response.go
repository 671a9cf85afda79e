package graphql

import (
	"encoding/json"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Response is the decoded JSON object body of a successful exchange, paired
// with the operation that produced it.
type Response struct {
	Operation Operation
	Body      map[string]interface{}
}

// Data returns the re-encoded "data" member, if the server sent one.
func (r *Response) Data() (json.RawMessage, bool) {
	v, ok := r.Body["data"]
	if !ok || v == nil {
		return nil, false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// UnmarshalData decodes the "data" member into t. A missing or null member
// leaves t untouched.
func (r *Response) UnmarshalData(t interface{}) error {
	raw, ok := r.Data()
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, t)
}

// Errors decodes the "errors" member. Entries that do not look like GraphQL
// errors are dropped.
func (r *Response) Errors() gqlerror.List {
	v, ok := r.Body["errors"]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var list gqlerror.List
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// Extensions returns the "extensions" member when it is an object.
func (r *Response) Extensions() map[string]interface{} {
	ext, _ := r.Body["extensions"].(map[string]interface{})
	return ext
}
