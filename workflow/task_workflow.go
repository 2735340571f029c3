package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowkernel/workflow/resilience"
)

// TaskWorkflow is the leaf node: it runs a Task under a RetryPolicy and
// a per-attempt TimeoutPolicy and reports the outcome as a Result.
//
// The timeout bounds a single attempt, not the whole retry loop; an
// attempt that overruns it is classified TIMED_OUT, and whether a
// timed-out attempt is retried is the RetryPolicy's decision like any
// other failure (filter on ErrTimeout to treat them specially). Context
// mutations made by a failing attempt stay visible to later attempts —
// there is no rollback outside a Saga.
type TaskWorkflow struct {
	TaskName string
	Task     Task
	Retry    resilience.RetryPolicy
	Timeout  resilience.TimeoutPolicy
}

// NewTaskWorkflow wraps task with no retry (single attempt) and no
// per-attempt timeout.
func NewTaskWorkflow(name string, task Task) *TaskWorkflow {
	return &TaskWorkflow{TaskName: name, Task: task}
}

// NewRetryingTaskWorkflow wraps task with the given retry policy.
func NewRetryingTaskWorkflow(name string, task Task, retry resilience.RetryPolicy) *TaskWorkflow {
	return &TaskWorkflow{TaskName: name, Task: task, Retry: retry}
}

func (w *TaskWorkflow) Name() string {
	if w.TaskName != "" {
		return w.TaskName
	}
	return w.Task.Name()
}

func (w *TaskWorkflow) Kind() Kind { return KindTask }

func (w *TaskWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	policy := w.Retry
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}

	output, attempts, err := resilience.Do(ctx, policy, func(attempt int) (any, error) {
		return w.runAttempt(ctx, ctxData)
	})

	completed := now()
	if err != nil {
		var r Result
		switch {
		case ctx.Err() != nil:
			r = cancelled(started, completed, ctx.Err())
		case errors.Is(err, ErrTimeout):
			r = timedOut(started, completed, err)
		default:
			r = failure(started, completed, err)
		}
		r.Attempts = attempts
		return r
	}

	r := successWithOutput(started, completed, output)
	r.Attempts = attempts
	return r
}

// runAttempt executes one try of the task, bounded by the per-attempt
// TimeoutPolicy when one is set. The task runs on its own goroutine so
// expiry is observed even if the task never checks its context; an
// abandoned attempt keeps running until it notices cancellation.
func (w *TaskWorkflow) runAttempt(ctx context.Context, ctxData *Context) (any, error) {
	if !w.Timeout.Enabled() {
		return w.Task.Run(ctx, ctxData)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, w.Timeout.Limit)
	defer cancel()

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := w.Task.Run(attemptCtx, ctxData)
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: attempt exceeded %s", ErrTimeout, w.Timeout.Limit)
	}
}
