package workflow

import (
	"context"
	"fmt"
)

// ForEachWorkflow reads an iterable from Context[ItemsKey] and executes
// Body once per element, writing the current element to
// Context[ItemVariable] before each run. It short-circuits on the first
// failing iteration, same as SequentialWorkflow.
type ForEachWorkflow struct {
	WorkflowName string
	ItemsKey     string
	ItemVariable string
	Body         Workflow
}

func NewForEachWorkflow(name, itemsKey, itemVariable string, body Workflow) *ForEachWorkflow {
	return &ForEachWorkflow{WorkflowName: name, ItemsKey: itemsKey, ItemVariable: itemVariable, Body: body}
}

func (w *ForEachWorkflow) Name() string        { return w.WorkflowName }
func (w *ForEachWorkflow) Kind() Kind           { return KindForEach }
func (w *ForEachWorkflow) Children() []Workflow { return []Workflow{w.Body} }

func (w *ForEachWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	items, ok := ctxData.Iterate(w.ItemsKey)
	if !ok {
		return failure(started, now(), fmt.Errorf("%w: context key %q is absent or not iterable", ErrTaskValidation, w.ItemsKey))
	}

	for _, item := range items {
		ctxData.Put(w.ItemVariable, item)
		r := w.Body.Execute(ctx, ctxData)
		if r.IsFailure() {
			return Result{
				Status:      r.Status,
				StartedAt:   started,
				CompletedAt: r.CompletedAt,
				Err:         r.Err,
			}
		}
	}

	return success(started, now())
}
