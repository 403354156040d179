package pipeline

import "context"

// Step is one unit of the case configuration procedure. Every step is fatal:
// a non-nil error from Run halts the plan.
type Step struct {
	// ID identifies the step in logs and the history ledger, e.g.
	// "xmlchange STOP_N".
	ID string

	// Description is the human-readable summary printed by dry runs.
	Description string

	// Run performs the step.
	Run func(ctx context.Context) error
}

// Recorder receives step lifecycle events from the executor. Implementations
// must tolerate being called for a plan that halts early.
type Recorder interface {
	StepStarted(ctx context.Context, seq int, id string)
	StepFinished(ctx context.Context, seq int, id string, runErr error)
}
