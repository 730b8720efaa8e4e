package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OData envelope field names.
const (
	EnvelopeValueField = "value"
	EnvelopeCountField = "@odata.count"
)

// PagedResult is one decoded page of a collection query.
// TotalCount is nil when the server did not report a count; it is never
// defaulted to zero.
type PagedResult[T any] struct {
	Items      []T    `json:"items"                 yaml:"items"`
	TotalCount *int64 `json:"total_count,omitempty" yaml:"total_count,omitempty"`
}

// HasCount reports whether the server supplied a total count.
func (p *PagedResult[T]) HasCount() bool {
	return p.TotalCount != nil
}

type envelope struct {
	Value json.RawMessage `json:"value"`
	Count *int64          `json:"@odata.count"`
}

// DecodePage parses an OData collection envelope. The item array is required;
// the count is optional. Unknown item fields are ignored.
func DecodePage[T any](body []byte) (*PagedResult[T], error) {
	var env envelope

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, &MalformedError{Reason: "parsing collection envelope", Err: err}
	}

	raw := bytes.TrimSpace(env.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &MalformedError{Reason: fmt.Sprintf("missing %q array", EnvelopeValueField)}
	}

	if raw[0] != '[' {
		return nil, &MalformedError{Reason: fmt.Sprintf("%q is not an array", EnvelopeValueField)}
	}

	items := make([]T, 0)

	err = json.Unmarshal(raw, &items)
	if err != nil {
		return nil, &MalformedError{Reason: "parsing collection items", Err: err}
	}

	return &PagedResult[T]{
		Items:      items,
		TotalCount: env.Count,
	}, nil
}
