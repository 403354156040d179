package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderEvent struct {
	Kind string
	Seq  int
	ID   string
	Err  error
}

type fakeRecorder struct {
	events []recorderEvent
}

func (r *fakeRecorder) StepStarted(_ context.Context, seq int, id string) {
	r.events = append(r.events, recorderEvent{Kind: "started", Seq: seq, ID: id})
}

func (r *fakeRecorder) StepFinished(_ context.Context, seq int, id string, runErr error) {
	r.events = append(r.events, recorderEvent{Kind: "finished", Seq: seq, ID: id, Err: runErr})
}

// makeSteps builds n steps that append their ID to ran, failing at failAt
// (1-based; 0 disables failure).
func makeSteps(n, failAt int, ran *[]string) []Step {
	steps := make([]Step, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("step-%d", i)
		fail := i == failAt
		steps = append(steps, Step{
			ID: id,
			Run: func(ctx context.Context) error {
				*ran = append(*ran, id)
				if fail {
					return errors.New("synthetic failure")
				}
				return nil
			},
		})
	}
	return steps
}

func TestExecuteRunsAllStepsInOrder(t *testing.T) {
	var ran []string
	err := NewExecutor(nil).Execute(context.Background(), makeSteps(4, 0, &ran))
	require.NoError(t, err)
	assert.Equal(t, []string{"step-1", "step-2", "step-3", "step-4"}, ran)
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	// Failing at step k must leave steps k+1..n unexecuted, for every k.
	const n = 5
	for failAt := 1; failAt <= n; failAt++ {
		t.Run(fmt.Sprintf("fail at step %d", failAt), func(t *testing.T) {
			var ran []string
			err := NewExecutor(nil).Execute(context.Background(), makeSteps(n, failAt, &ran))

			require.Error(t, err)
			assert.ErrorContains(t, err, fmt.Sprintf("step %q failed", fmt.Sprintf("step-%d", failAt)))
			assert.Len(t, ran, failAt)
			assert.Equal(t, fmt.Sprintf("step-%d", failAt), ran[len(ran)-1])
		})
	}
}

func TestExecuteReportsToRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	var ran []string
	err := NewExecutor(rec).Execute(context.Background(), makeSteps(3, 2, &ran))
	require.Error(t, err)

	require.Len(t, rec.events, 4)
	assert.Equal(t, recorderEvent{Kind: "started", Seq: 1, ID: "step-1"}, rec.events[0])
	assert.Equal(t, recorderEvent{Kind: "finished", Seq: 1, ID: "step-1"}, rec.events[1])
	assert.Equal(t, recorderEvent{Kind: "started", Seq: 2, ID: "step-2"}, rec.events[2])
	assert.Equal(t, "finished", rec.events[3].Kind)
	assert.Error(t, rec.events[3].Err)
}

func TestExecuteHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ran []string
	steps := makeSteps(3, 0, &ran)
	// The first step cancels the run; the remaining steps must not execute.
	inner := steps[0].Run
	steps[0].Run = func(ctx context.Context) error {
		cancel()
		return inner(ctx)
	}

	err := NewExecutor(nil).Execute(ctx, steps)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"step-1"}, ran)
}

func TestExecuteEmptyPlan(t *testing.T) {
	assert.NoError(t, NewExecutor(nil).Execute(context.Background(), nil))
}
