package repository

import "fmt"

// PersistenceError reports a failed store operation: a constraint violation
// other than the handled conflict, a connection failure, a bad transaction.
// It is fatal for the batch that produced it and is never retried here.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an absent record on a read path that required
// presence.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
