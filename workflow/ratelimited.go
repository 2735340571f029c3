package workflow

import (
	"context"
	"fmt"

	"github.com/flowkernel/workflow/resilience"
)

// Admission selects how a RateLimitedWorkflow behaves when its limiter
// has no capacity at execution time.
type Admission int

const (
	// AdmissionBlock waits on Acquire until the limiter admits or ctx
	// is done. The default.
	AdmissionBlock Admission = iota
	// AdmissionSkip tries once and returns SKIPPED on denial.
	AdmissionSkip
	// AdmissionFail tries once and returns FAILED on denial.
	AdmissionFail
)

// RateLimitedWorkflow gates Child's execution behind a
// resilience.Limiter. Admission picks the behaviour on a saturated
// limiter; after Child completes, the slot is released for limiter
// flavours that model release (SemaphoreLimiter — a no-op elsewhere).
type RateLimitedWorkflow struct {
	WorkflowName string
	Child        Workflow
	Limiter      resilience.Limiter
	Admission    Admission
}

func NewRateLimitedWorkflow(name string, child Workflow, limiter resilience.Limiter) *RateLimitedWorkflow {
	return &RateLimitedWorkflow{WorkflowName: name, Child: child, Limiter: limiter}
}

func (w *RateLimitedWorkflow) Name() string         { return w.WorkflowName }
func (w *RateLimitedWorkflow) Kind() Kind           { return KindRateLimited }
func (w *RateLimitedWorkflow) Children() []Workflow { return []Workflow{w.Child} }

func (w *RateLimitedWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	switch w.Admission {
	case AdmissionSkip:
		if !w.Limiter.TryAcquire() {
			return skipped(started, now())
		}
	case AdmissionFail:
		if !w.Limiter.TryAcquire() {
			return failure(started, now(), fmt.Errorf("%w: %s", ErrRateLimitDenied, w.WorkflowName))
		}
	default:
		if err := w.Limiter.Acquire(ctx); err != nil {
			if ctx.Err() != nil {
				return cancelled(started, now(), ctx.Err())
			}
			return failure(started, now(), err)
		}
	}
	defer w.Limiter.Release()

	r := w.Child.Execute(ctx, ctxData)
	r.StartedAt = started
	return r
}
