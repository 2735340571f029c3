package workflow

import (
	"context"
	"fmt"
)

// Predicate evaluates a boolean decision over the current Context.
type Predicate func(ctxData *Context) bool

// ConditionalWorkflow evaluates Condition and executes WhenTrue or
// WhenFalse accordingly. A nil WhenFalse makes the false branch a no-op
// that returns SUCCESS.
type ConditionalWorkflow struct {
	WorkflowName string
	Condition    Predicate
	WhenTrue     Workflow
	WhenFalse    Workflow
}

func NewConditionalWorkflow(name string, condition Predicate, whenTrue, whenFalse Workflow) *ConditionalWorkflow {
	return &ConditionalWorkflow{WorkflowName: name, Condition: condition, WhenTrue: whenTrue, WhenFalse: whenFalse}
}

func (w *ConditionalWorkflow) Name() string { return w.WorkflowName }
func (w *ConditionalWorkflow) Kind() Kind   { return KindConditional }

func (w *ConditionalWorkflow) Children() []Workflow {
	if w.WhenFalse == nil {
		return []Workflow{w.WhenTrue}
	}
	return []Workflow{w.WhenTrue, w.WhenFalse}
}

func (w *ConditionalWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	taken, err := evaluateCondition(w.Condition, ctxData)
	if err != nil {
		return failure(started, now(), err)
	}

	if taken {
		r := w.WhenTrue.Execute(ctx, ctxData)
		r.StartedAt = started
		return r
	}

	if w.WhenFalse == nil {
		return success(started, now())
	}
	r := w.WhenFalse.Execute(ctx, ctxData)
	r.StartedAt = started
	return r
}

// evaluateCondition recovers from a panicking predicate and reports it
// as an ordinary failure rather than letting it escape Execute.
func evaluateCondition(pred Predicate, ctxData *Context) (result bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = conditionPanicError{recovered: rec}
		}
	}()
	return pred(ctxData), nil
}

type conditionPanicError struct {
	recovered any
}

func (e conditionPanicError) Error() string {
	return fmt.Sprintf("workflow: condition predicate panicked: %v", e.recovered)
}
