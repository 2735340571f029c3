package workflow

import "context"

const defaultIndexVariable = "repeat.index"

// RepeatWorkflow executes Body Times times, writing the 0-based
// iteration index to Context[IndexVariable] before each run. It
// short-circuits on the first failing iteration.
type RepeatWorkflow struct {
	WorkflowName  string
	Times         int
	IndexVariable string
	Body          Workflow
}

func NewRepeatWorkflow(name string, times int, body Workflow) *RepeatWorkflow {
	return &RepeatWorkflow{WorkflowName: name, Times: times, IndexVariable: defaultIndexVariable, Body: body}
}

func (w *RepeatWorkflow) Name() string        { return w.WorkflowName }
func (w *RepeatWorkflow) Kind() Kind           { return KindRepeat }
func (w *RepeatWorkflow) Children() []Workflow { return []Workflow{w.Body} }

func (w *RepeatWorkflow) indexVariable() string {
	if w.IndexVariable != "" {
		return w.IndexVariable
	}
	return defaultIndexVariable
}

func (w *RepeatWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	if w.Times <= 0 {
		return success(started, now())
	}

	indexVar := w.indexVariable()
	for i := 0; i < w.Times; i++ {
		ctxData.Put(indexVar, i)
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
