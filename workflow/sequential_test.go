package workflow

import (
	"context"
	"testing"
)

func TestSequentialWorkflowRunsAllOnSuccess(t *testing.T) {
	var calls int
	inc := func(ctx context.Context, ctxData *Context) (any, error) { return nil, nil }
	seq := NewSequentialWorkflow("seq",
		countingTask("one", &calls, inc),
		countingTask("two", &calls, inc),
		countingTask("three", &calls, inc),
	)
	r := seq.Execute(context.Background(), NewContext())
	if !r.IsSuccess() {
		t.Fatalf("Execute() status = %s, want SUCCESS", r.Status)
	}
	if calls != 3 {
		t.Fatalf("ran %d steps, want 3", calls)
	}
}

func TestSequentialWorkflowShortCircuitsOnFailure(t *testing.T) {
	var calls int
	inc := func(ctx context.Context, ctxData *Context) (any, error) { return nil, nil }
	seq := NewSequentialWorkflow("seq",
		countingTask("one", &calls, inc),
		failingTask("two", errBoom),
		countingTask("three", &calls, inc),
	)
	r := seq.Execute(context.Background(), NewContext())
	if !r.IsFailure() {
		t.Fatalf("Execute() status = %s, want a failure", r.Status)
	}
	if calls != 1 {
		t.Fatalf("ran %d steps before/after failure, want 1 (third step must not run)", calls)
	}
}

func TestSequentialWorkflowEmptyIsSuccess(t *testing.T) {
	seq := NewSequentialWorkflow("empty")
	r := seq.Execute(context.Background(), NewContext())
	if !r.IsSuccess() {
		t.Fatalf("empty SequentialWorkflow status = %s, want SUCCESS", r.Status)
	}
}

func TestSequentialWorkflowChildren(t *testing.T) {
	a := succeedingTask("a", nil)
	b := succeedingTask("b", nil)
	seq := NewSequentialWorkflow("seq", a, b)
	children := seq.Children()
	if len(children) != 2 || children[0] != Workflow(a) || children[1] != Workflow(b) {
		t.Fatalf("Children() = %v, want [a, b] in order", children)
	}
}
