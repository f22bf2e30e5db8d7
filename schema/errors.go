package schema

import (
	"fmt"
	"strings"
)

// Violation reports one malformed element within a batch, identified by its
// index in the raw input.
type Violation struct {
	Index  int
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("record %d: %s", v.Index, v.Reason)
}

// ValidationError aggregates the violations of one batch. Batch validation
// itself never fails; callers build this when a whole batch is rejected and
// the violations must travel as an error value.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		reasons = append(reasons, v.String())
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(reasons, "; "))
}
