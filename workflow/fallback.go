package workflow

import "context"

// FallbackWorkflow executes Primary; on failure it executes Fallback,
// whose Result becomes the node's Result. StartedAt is Primary's start;
// CompletedAt is Fallback's end. If Fallback also fails, Primary's error
// is preserved as a suppressed cause.
type FallbackWorkflow struct {
	WorkflowName string
	Primary      Workflow
	Fallback     Workflow
}

func NewFallbackWorkflow(name string, primary, fallback Workflow) *FallbackWorkflow {
	return &FallbackWorkflow{WorkflowName: name, Primary: primary, Fallback: fallback}
}

func (w *FallbackWorkflow) Name() string        { return w.WorkflowName }
func (w *FallbackWorkflow) Kind() Kind           { return KindFallback }
func (w *FallbackWorkflow) Children() []Workflow { return []Workflow{w.Primary, w.Fallback} }

func (w *FallbackWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	primaryResult := w.Primary.Execute(ctx, ctxData)
	if !primaryResult.IsFailure() {
		primaryResult.StartedAt = started
		return primaryResult
	}

	fallbackResult := w.Fallback.Execute(ctx, ctxData)
	fallbackResult.StartedAt = started

	if fallbackResult.IsFailure() {
		fallbackResult.Err = &FallbackError{Cause: fallbackResult.Err, Primary: primaryResult.Err}
	}

	return fallbackResult
}
