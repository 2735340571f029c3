package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/flowkernel/workflow/scheduling"
)

// TimeoutWorkflow bounds Child's total execution time to Limit. Child
// runs off the caller's goroutine — on the injected Pool when one is
// set, otherwise on a goroutine of its own; if Limit elapses first, the
// node returns TIMED_OUT and requests cancellation of the still-running
// Child via context — Child must observe cancellation to actually stop.
type TimeoutWorkflow struct {
	WorkflowName string
	Child        Workflow
	Limit        time.Duration
	Pool         *scheduling.Pool
}

func NewTimeoutWorkflow(name string, child Workflow, limit time.Duration) *TimeoutWorkflow {
	return &TimeoutWorkflow{WorkflowName: name, Child: child, Limit: limit}
}

func (w *TimeoutWorkflow) Name() string         { return w.WorkflowName }
func (w *TimeoutWorkflow) Kind() Kind           { return KindTimeout }
func (w *TimeoutWorkflow) Children() []Workflow { return []Workflow{w.Child} }

func (w *TimeoutWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	if w.Limit <= 0 {
		r := w.Child.Execute(ctx, ctxData)
		r.StartedAt = started
		return r
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, w.Limit)
	defer cancel()

	done := make(chan Result, 1)
	run := func() {
		done <- w.Child.Execute(timeoutCtx, ctxData)
	}
	if w.Pool != nil {
		if err := w.Pool.Submit(timeoutCtx, run); err != nil {
			return cancelled(started, now(), err)
		}
	} else {
		go run()
	}

	select {
	case r := <-done:
		// A child that observed our deadline reports CANCELLED; from
		// the outside that is a timeout, not a cancellation.
		if r.Status == StatusCancelled && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return timedOut(started, now(), ErrTimeout)
		}
		r.StartedAt = started
		return r
	case <-timeoutCtx.Done():
		completed := now()
		if ctx.Err() != nil {
			return cancelled(started, completed, ctx.Err())
		}
		return timedOut(started, completed, ErrTimeout)
	}
}
