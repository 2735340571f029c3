package workflow

import (
	"context"
	"testing"
)

func TestDynamicBranchingWorkflowMatchesCase(t *testing.T) {
	sw := NewDynamicBranchingWorkflow("sw",
		func(ctxData *Context) string { return "b" },
		[]SwitchCase{
			{Key: "a", Branch: succeedingTask("a", "A")},
			{Key: "b", Branch: succeedingTask("b", "B")},
		},
		nil,
	)
	r := sw.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "B" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"B\"", r)
	}
}

func TestDynamicBranchingWorkflowFallsBackToDefault(t *testing.T) {
	sw := NewDynamicBranchingWorkflow("sw",
		func(ctxData *Context) string { return "unmatched" },
		[]SwitchCase{{Key: "a", Branch: succeedingTask("a", "A")}},
		succeedingTask("default", "D"),
	)
	r := sw.Execute(context.Background(), NewContext())
	if !r.IsSuccess() || r.Output != "D" {
		t.Fatalf("Execute() = %+v, want SUCCESS with output \"D\"", r)
	}
}

func TestDynamicBranchingWorkflowNoDefaultIsSkipped(t *testing.T) {
	sw := NewDynamicBranchingWorkflow("sw",
		func(ctxData *Context) string { return "unmatched" },
		[]SwitchCase{{Key: "a", Branch: succeedingTask("a", "A")}},
		nil,
	)
	r := sw.Execute(context.Background(), NewContext())
	if r.Status != StatusSkipped {
		t.Fatalf("Execute() status = %s, want SKIPPED", r.Status)
	}
}
