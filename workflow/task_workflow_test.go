package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowkernel/workflow/resilience"
)

func TestTaskWorkflowSingleAttemptOnSuccess(t *testing.T) {
	var calls int
	tw := NewTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		calls++
		return "done", nil
	}})
	r := tw.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "done" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"done\"", r)
	}
	if calls != 1 || r.Attempts != 1 {
		t.Fatalf("calls=%d Attempts=%d, want 1 and 1 for a non-retrying task", calls, r.Attempts)
	}
}

func TestTaskWorkflowRetriesUntilSuccess(t *testing.T) {
	var calls int
	tw := NewRetryingTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		calls++
		if calls < 3 {
			return nil, errBoom
		}
		return "done", nil
	}}, resilience.RetryPolicy{MaxAttempts: 5})

	r := tw.Execute(context.Background(), NewContext())
	if !r.IsSuccess() {
		t.Fatalf("Execute() status = %s, want SUCCESS after retries", r.Status)
	}
	if calls != 3 || r.Attempts != 3 {
		t.Fatalf("calls=%d Attempts=%d, want 3", calls, r.Attempts)
	}
}

func TestTaskWorkflowExhaustsRetriesAndFails(t *testing.T) {
	tw := NewRetryingTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		return nil, errBoom
	}}, resilience.RetryPolicy{MaxAttempts: 3})

	r := tw.Execute(context.Background(), NewContext())
	if !r.IsFailure() {
		t.Fatalf("Execute() status = %s, want a failure", r.Status)
	}
	if r.Attempts != 3 {
		t.Fatalf("Attempts = %d, want 3 (MaxAttempts exhausted)", r.Attempts)
	}
	if !errors.Is(r.Err, errBoom) {
		t.Fatalf("Execute() error = %v, want errBoom", r.Err)
	}
}

func TestTaskWorkflowAttemptTimeoutYieldsTimedOut(t *testing.T) {
	tw := NewTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}})
	tw.Timeout = resilience.TimeoutOfMillis(10)

	r := tw.Execute(context.Background(), NewContext())
	if r.Status != StatusTimedOut {
		t.Fatalf("Execute() status = %s, want TIMED_OUT", r.Status)
	}
	if !errors.Is(r.Err, ErrTimeout) {
		t.Fatalf("Execute() error = %v, want it to wrap ErrTimeout", r.Err)
	}
}

func TestTaskWorkflowFastTaskUnaffectedByTimeout(t *testing.T) {
	tw := NewTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		return "quick", nil
	}})
	tw.Timeout = resilience.TimeoutOfSeconds(5)

	r := tw.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "quick" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"quick\"", r)
	}
}

func TestTaskWorkflowRetriesTimedOutAttempts(t *testing.T) {
	var calls int
	tw := NewTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		calls++
		if calls == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return "recovered", nil
	}})
	tw.Timeout = resilience.TimeoutOfMillis(10)
	tw.Retry = resilience.RetryPolicy{MaxAttempts: 2}

	r := tw.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "recovered" {
		t.Fatalf("Execute() = %+v, want SUCCESS after a timed-out first attempt", r)
	}
	if r.Attempts != 2 {
		t.Fatalf("Attempts = %d, want 2", r.Attempts)
	}
}

func TestTaskWorkflowTimeoutNotRetriedWhenFiltered(t *testing.T) {
	var calls int
	tw := NewTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		calls++
		<-ctx.Done()
		return nil, ctx.Err()
	}})
	tw.Timeout = resilience.TimeoutOfMillis(10)
	tw.Retry = resilience.RetryPolicy{
		MaxAttempts:  3,
		RetryableErr: func(err error) bool { return !errors.Is(err, ErrTimeout) },
	}

	r := tw.Execute(context.Background(), NewContext())
	if r.Status != StatusTimedOut {
		t.Fatalf("Execute() status = %s, want TIMED_OUT", r.Status)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (timeouts excluded from retry)", calls)
	}
}

func TestTaskWorkflowObservesBackoffBetweenAttempts(t *testing.T) {
	var calls int
	tw := NewRetryingTaskWorkflow("task", TaskFunc{FuncName: "task", Fn: func(ctx context.Context, ctxData *Context) (any, error) {
		calls++
		if calls < 3 {
			return nil, errBoom
		}
		return "done", nil
	}}, resilience.RetryPolicy{MaxAttempts: 4, Backoff: resilience.ConstantBackoff{DelayMs: 20}})

	start := time.Now()
	r := tw.Execute(context.Background(), NewContext())
	elapsed := time.Since(start)

	if !r.IsSuccess() || r.Attempts != 3 {
		t.Fatalf("Execute() = %+v, want SUCCESS on attempt 3", r)
	}
	if elapsed < 40*time.Millisecond {
		t.Fatalf("elapsed = %s, want at least the two 20ms backoffs between attempts", elapsed)
	}
}

func TestTaskDescriptorProducesConfiguredWorkflow(t *testing.T) {
	desc := TaskDescriptor{
		Name:    "described",
		Task:    TaskFunc{FuncName: "inner", Fn: func(ctx context.Context, ctxData *Context) (any, error) { return "v", nil }},
		Retry:   resilience.LimitedRetries(2),
		Timeout: resilience.TimeoutOfMillis(500),
	}
	tw := desc.Workflow()
	if tw.Name() != "described" {
		t.Fatalf("Name() = %q, want \"described\"", tw.Name())
	}
	if tw.Retry.MaxAttempts != 3 || !tw.Timeout.Enabled() {
		t.Fatalf("policies not carried over: retry=%+v timeout=%+v", tw.Retry, tw.Timeout)
	}
	if r := tw.Execute(context.Background(), NewContext()); !r.IsSuccess() || r.Output != "v" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"v\"", r)
	}
}

func TestTaskWorkflowNameFallsBackToTaskName(t *testing.T) {
	task := TaskFunc{FuncName: "underlying", Fn: func(ctx context.Context, ctxData *Context) (any, error) { return nil, nil }}
	tw := &TaskWorkflow{Task: task}
	if got := tw.Name(); got != "underlying" {
		t.Fatalf("Name() = %q, want the task's own name when TaskName is unset", got)
	}
}
