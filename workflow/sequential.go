package workflow

import "context"

// SequentialWorkflow runs children in insertion order against the same
// Context, stopping at the first failing child.
type SequentialWorkflow struct {
	WorkflowName string
	Steps        []Workflow
}

// NewSequentialWorkflow builds a SequentialWorkflow over steps, in order.
func NewSequentialWorkflow(name string, steps ...Workflow) *SequentialWorkflow {
	return &SequentialWorkflow{WorkflowName: name, Steps: steps}
}

func (w *SequentialWorkflow) Name() string         { return w.WorkflowName }
func (w *SequentialWorkflow) Kind() Kind           { return KindSequence }
func (w *SequentialWorkflow) Children() []Workflow { return w.Steps }

func (w *SequentialWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()
	if len(w.Steps) == 0 {
		return success(started, now())
	}

	for _, step := range w.Steps {
		r := step.Execute(ctx, ctxData)
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
