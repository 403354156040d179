package pipeline

import (
	"context"
	"fmt"

	"github.com/norclim/caserig/internal/ctxlog"
)

// Executor runs a plan strictly sequentially: each step must complete before
// the next begins, and the first error halts the run.
type Executor struct {
	recorder Recorder
}

// NewExecutor creates an executor. recorder may be nil when no run history
// is being kept.
func NewExecutor(recorder Recorder) *Executor {
	return &Executor{recorder: recorder}
}

// Execute runs the steps in order. Context cancellation is honored between
// steps; steps themselves see the context and may stop earlier.
func (e *Executor) Execute(ctx context.Context, steps []Step) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Starting case configuration.", "steps", len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run canceled before step %q: %w", step.ID, err)
		}

		stepLogger := logger.With("step", step.ID, "seq", i+1)
		stepLogger.Info("▶️ Starting step")
		if e.recorder != nil {
			e.recorder.StepStarted(ctx, i+1, step.ID)
		}

		err := step.Run(ctxlog.WithLogger(ctx, stepLogger))
		if e.recorder != nil {
			e.recorder.StepFinished(ctx, i+1, step.ID, err)
		}
		if err != nil {
			stepLogger.Error("Step failed.", "error", err)
			return fmt.Errorf("step %q failed: %w", step.ID, err)
		}
		stepLogger.Info("✅ Finished step")
	}

	logger.Info("🏁 Case configuration finished.")
	return nil
}
