package fplapi

import "fmt"

// APIError reports a failed call against the external statistics API:
// transport failure, unexpected status, timeout, or an open circuit. The
// orchestrator translates it into an integration failure.
type APIError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fpl api %s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("fpl api %s: %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
