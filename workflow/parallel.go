package workflow

import (
	"context"
	"sync"

	"github.com/flowkernel/workflow/scheduling"
)

// ParallelWorkflow runs its children concurrently on an injected
// scheduling.Pool.
//
// ShareContext controls how children see ctxData: true means every
// child operates on the same Context (the caller accepts that children
// coordinate their own writes, typically by using disjoint keys — the
// engine performs no locking); false means each child gets its own
// Context.Clone(), and successful mutations made under a cloned Context
// are discarded once the branch returns — there is no merge-back step.
//
// FailFast (default true when constructed via NewParallelWorkflow)
// requests cancellation of outstanding children on the first failure.
// The aggregate always waits for every branch to finish; failures of
// the other branches survive as suppressed causes on the aggregate
// error rather than being silently dropped.
type ParallelWorkflow struct {
	WorkflowName string
	Branches     []Workflow
	ShareContext bool
	FailFast     bool
	Pool         *scheduling.Pool
}

// NewParallelWorkflow builds a ParallelWorkflow with fail-fast enabled
// and shared context, the common case for fan-out work.
func NewParallelWorkflow(name string, pool *scheduling.Pool, branches ...Workflow) *ParallelWorkflow {
	return &ParallelWorkflow{
		WorkflowName: name,
		Branches:     branches,
		ShareContext: true,
		FailFast:     true,
		Pool:         pool,
	}
}

func (w *ParallelWorkflow) Name() string         { return w.WorkflowName }
func (w *ParallelWorkflow) Kind() Kind           { return KindParallel }
func (w *ParallelWorkflow) Children() []Workflow { return w.Branches }

func (w *ParallelWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()
	if len(w.Branches) == 0 {
		return success(started, now())
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Result, len(w.Branches))
	var wg sync.WaitGroup

	pool := w.Pool
	if pool == nil {
		pool = scheduling.New(scheduling.Config{Workers: len(w.Branches)})
	}

	for _, branch := range w.Branches {
		branch := branch
		branchCtx := ctxData
		if !w.ShareContext {
			branchCtx = ctxData.Clone()
		}

		wg.Add(1)
		submitErr := pool.Submit(runCtx, func() {
			defer wg.Done()
			results <- branch.Execute(runCtx, branchCtx)
		})
		if submitErr != nil {
			wg.Done()
			results <- cancelled(started, now(), submitErr)
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var failures []Result

	for result := range results {
		if !result.IsFailure() {
			continue
		}
		failures = append(failures, result)
		if len(failures) == 1 && w.FailFast {
			cancel()
		}
	}

	completed := now()

	if len(failures) == 0 {
		return success(started, completed)
	}

	primary := failures[0]
	status := primary.Status
	if ctx.Err() != nil {
		status = StatusCancelled
	}

	err := primary.Err
	var suppressed []error
	for _, f := range failures[1:] {
		// Branches cut short by our own fail-fast cancellation are not
		// independent failures worth reporting.
		if f.Status == StatusCancelled {
			continue
		}
		suppressed = append(suppressed, f.Err)
	}
	if len(suppressed) > 0 {
		err = &ParallelError{Cause: primary.Err, Suppressed: suppressed}
	}

	return Result{
		Status:      status,
		StartedAt:   started,
		CompletedAt: completed,
		Err:         err,
	}
}
