package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestConditionalWorkflowTakesTrueBranch(t *testing.T) {
	cond := NewConditionalWorkflow("cond",
		func(ctxData *Context) bool { return true },
		succeedingTask("whenTrue", "yes"),
		succeedingTask("whenFalse", "no"),
	)
	r := cond.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "yes" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"yes\"", r)
	}
}

func TestConditionalWorkflowTakesFalseBranch(t *testing.T) {
	cond := NewConditionalWorkflow("cond",
		func(ctxData *Context) bool { return false },
		succeedingTask("whenTrue", "yes"),
		succeedingTask("whenFalse", "no"),
	)
	r := cond.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "no" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"no\"", r)
	}
}

func TestConditionalWorkflowNilFalseBranchIsSuccess(t *testing.T) {
	cond := NewConditionalWorkflow("cond", func(ctxData *Context) bool { return false }, succeedingTask("t", nil), nil)
	r := cond.Execute(context.Background(), NewContext())
	if !r.IsSuccess() {
		t.Fatalf("Execute() status = %s, want SUCCESS for nil WhenFalse", r.Status)
	}
	if len(cond.Children()) != 1 {
		t.Fatalf("Children() = %v, want 1 entry when WhenFalse is nil", cond.Children())
	}
}

func TestConditionalWorkflowPanicBecomesFailure(t *testing.T) {
	cond := NewConditionalWorkflow("cond", func(ctxData *Context) bool {
		panic("predicate exploded")
	}, succeedingTask("t", nil), nil)
	r := cond.Execute(context.Background(), NewContext())
	if !r.IsFailure() {
		t.Fatalf("Execute() status = %s, want a failure when predicate panics", r.Status)
	}
	var panicErr conditionPanicError
	if !errors.As(r.Err, &panicErr) {
		t.Fatalf("Execute() error = %v, want conditionPanicError", r.Err)
	}
}
