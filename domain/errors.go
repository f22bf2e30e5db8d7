package domain

import "fmt"

// MappingError reports that a validated external payload could not satisfy a
// domain invariant. It is fatal for the workflow that produced it.
type MappingError struct {
	Entity string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping %s: %s", e.Entity, e.Reason)
}

func mappingErr(entity, format string, args ...any) *MappingError {
	return &MappingError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}
