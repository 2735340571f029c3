package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestForEachWorkflowIteratesAllItems(t *testing.T) {
	var seen []any
	body := NewTaskWorkflow("collect", TaskFunc{
		FuncName: "collect",
		Fn: func(ctx context.Context, ctxData *Context) (any, error) {
			v, _ := ctxData.Get("item")
			seen = append(seen, v)
			return nil, nil
		},
	})
	fe := NewForEachWorkflow("fe", "items", "item", body)

	ctxData := NewContext()
	ctxData.Put("items", []any{"a", "b", "c"})
	r := fe.Execute(context.Background(), ctxData)

	if !r.IsSuccess() {
		t.Fatalf("Execute() status = %s, want SUCCESS", r.Status)
	}
	if len(seen) != 3 || seen[0] != "a" || seen[2] != "c" {
		t.Fatalf("iterated items = %v, want [a b c]", seen)
	}
}

func TestForEachWorkflowMissingKeyFails(t *testing.T) {
	fe := NewForEachWorkflow("fe", "missing", "item", succeedingTask("body", nil))
	r := fe.Execute(context.Background(), NewContext())
	if !r.IsFailure() {
		t.Fatalf("Execute() status = %s, want a failure for a missing items key", r.Status)
	}
	if !errors.Is(r.Err, ErrTaskValidation) {
		t.Fatalf("Execute() error = %v, want ErrTaskValidation", r.Err)
	}
}

func TestForEachWorkflowShortCircuitsOnFailure(t *testing.T) {
	var calls int
	fe := NewForEachWorkflow("fe", "items", "item", countingTask("body", &calls, func(ctx context.Context, ctxData *Context) (any, error) {
		return nil, errBoom
	}))
	ctxData := NewContext()
	ctxData.Put("items", []any{1, 2, 3})
	r := fe.Execute(context.Background(), ctxData)
	if !r.IsFailure() {
		t.Fatalf("Execute() status = %s, want a failure", r.Status)
	}
	if calls != 1 {
		t.Fatalf("body ran %d times, want 1 (should stop at first failure)", calls)
	}
}
