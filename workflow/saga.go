package workflow

import "context"

// SagaStep is one ordered unit of a SagaWorkflow: Action runs forward,
// Compensation (optional) reverses it if a later step fails.
type SagaStep struct {
	StepName     string
	Action       Workflow
	Compensation Workflow
}

// SagaWorkflow runs Steps in order. If a step's Action fails, forward
// progress stops and previously-completed steps are compensated in
// reverse order, best-effort: a failing compensation does not stop the
// rollback of earlier steps, and its error is attached to the saga's
// failure rather than replacing the triggering cause.
type SagaWorkflow struct {
	WorkflowName string
	Steps        []SagaStep
}

func NewSagaWorkflow(name string, steps ...SagaStep) *SagaWorkflow {
	return &SagaWorkflow{WorkflowName: name, Steps: steps}
}

func (w *SagaWorkflow) Name() string { return w.WorkflowName }
func (w *SagaWorkflow) Kind() Kind   { return KindSaga }

func (w *SagaWorkflow) Children() []Workflow {
	children := make([]Workflow, 0, len(w.Steps)*2)
	for _, step := range w.Steps {
		children = append(children, step.Action)
		if step.Compensation != nil {
			children = append(children, step.Compensation)
		}
	}
	return children
}

func (w *SagaWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	completed := make([]SagaStep, 0, len(w.Steps))

	for _, step := range w.Steps {
		r := step.Action.Execute(ctx, ctxData)
		if r.IsFailure() {
			compensationFails := w.compensate(ctx, ctxData, completed)
			return Result{
				Status:      StatusFailed,
				StartedAt:   started,
				CompletedAt: now(),
				Err: &SagaCompensationError{
					Step:              step.StepName,
					Cause:             r.Err,
					CompensationFails: compensationFails,
				},
			}
		}
		completed = append(completed, step)
	}

	return success(started, now())
}

// compensate walks completed steps in reverse, running each one's
// Compensation if present. Steps without a Compensation are skipped.
func (w *SagaWorkflow) compensate(ctx context.Context, ctxData *Context, completed []SagaStep) []error {
	var fails []error
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensation == nil {
			continue
		}
		r := step.Compensation.Execute(ctx, ctxData)
		if r.IsFailure() {
			fails = append(fails, r.Err)
		}
	}
	return fails
}
