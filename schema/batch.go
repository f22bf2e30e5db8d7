package schema

import (
	"github.com/goccy/go-json"
)

// BatchResult carries the outcome of validating one batch of raw elements.
// Valid holds the elements that decoded and validated, in input order;
// Violations holds one entry per rejected element. One bad element never
// aborts the batch.
type BatchResult[T Payload] struct {
	Valid      []T
	Violations []Violation
}

// DecodeBatch decodes and validates each raw element independently. Elements
// that fail to decode or validate are reported as violations and excluded;
// the rest are returned. It never returns an error.
func DecodeBatch[T Payload](raw []json.RawMessage) BatchResult[T] {
	out := BatchResult[T]{Valid: make([]T, 0, len(raw))}

	for i, msg := range raw {
		var item T
		if err := json.Unmarshal(msg, &item); err != nil {
			out.Violations = append(out.Violations, Violation{Index: i, Reason: "malformed JSON: " + err.Error()})
			continue
		}
		if err := item.Validate(); err != nil {
			out.Violations = append(out.Violations, Violation{Index: i, Reason: err.Error()})
			continue
		}
		out.Valid = append(out.Valid, item)
	}

	return out
}
