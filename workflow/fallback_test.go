package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackWorkflowUsesPrimaryOnSuccess(t *testing.T) {
	fb := NewFallbackWorkflow("fb", succeedingTask("primary", "P"), succeedingTask("fallback", "F"))
	r := fb.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "P" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"P\"", r)
	}
}

func TestFallbackWorkflowRunsFallbackOnPrimaryFailure(t *testing.T) {
	fb := NewFallbackWorkflow("fb", failingTask("primary", errBoom), succeedingTask("fallback", "F"))
	r := fb.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "F" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"F\"", r)
	}
}

func TestFallbackWorkflowBothFailPreservesPrimaryCause(t *testing.T) {
	fb := NewFallbackWorkflow("fb", failingTask("primary", errBoom), failingTask("fallback", errBoom))
	r := fb.Execute(context.Background(), NewContext())
	if !r.IsFailure() {
		t.Fatalf("Execute() status = %s, want a failure", r.Status)
	}
	var fbErr *FallbackError
	if !errors.As(r.Err, &fbErr) {
		t.Fatalf("Execute() error = %T (%v), want *FallbackError", r.Err, r.Err)
	}
	if !errors.Is(fbErr.Primary, errBoom) {
		t.Fatalf("FallbackError.Primary = %v, want the primary's original error", fbErr.Primary)
	}
}
