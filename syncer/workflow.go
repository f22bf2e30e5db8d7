package syncer

import (
	"time"

	"github.com/google/uuid"
)

// workflowContext is the ephemeral identity of one orchestrator invocation.
// It exists only for observability and is discarded when the call returns.
type workflowContext struct {
	ID        string
	StartedAt time.Time
}

func newWorkflow() workflowContext {
	return workflowContext{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Result reports the terminal outcome of a successful sync workflow.
type Result struct {
	// WorkflowID identifies the invocation in logs.
	WorkflowID string

	// Entity names the synchronized entity type.
	Entity string

	// Scope is the scoping id the workflow ran under, zero for season-wide
	// syncs.
	Scope int64

	// Fetched counts raw upstream records, Skipped the ones rejected by
	// validation, Synced the rows present in the store after the write.
	Fetched int
	Skipped int
	Synced  int

	// Duration is the elapsed wall time of the whole workflow.
	Duration time.Duration
}

// ScopeOutcome is one scope's result within a batch sync. Each scope is
// processed independently; one failure never aborts the others.
type ScopeOutcome struct {
	Scope  int64
	Result Result
	Err    error
}
