package workflow

import "context"

// Selector computes the discriminant value a DynamicBranchingWorkflow
// switches on.
type Selector func(ctxData *Context) string

// SwitchCase is one branch of a DynamicBranchingWorkflow, kept in an
// ordered slice (rather than a plain map) so that both execution lookup
// and tree rendering preserve declaration order.
type SwitchCase struct {
	Key    string
	Branch Workflow
}

// DynamicBranchingWorkflow evaluates Selector and executes the first
// case whose Key matches, falling back to Default (if set) or SKIPPED.
type DynamicBranchingWorkflow struct {
	WorkflowName string
	Selector     Selector
	Cases        []SwitchCase
	Default      Workflow
}

func NewDynamicBranchingWorkflow(name string, selector Selector, cases []SwitchCase, defaultBranch Workflow) *DynamicBranchingWorkflow {
	return &DynamicBranchingWorkflow{WorkflowName: name, Selector: selector, Cases: cases, Default: defaultBranch}
}

func (w *DynamicBranchingWorkflow) Name() string { return w.WorkflowName }
func (w *DynamicBranchingWorkflow) Kind() Kind   { return KindSwitch }

func (w *DynamicBranchingWorkflow) Children() []Workflow {
	children := make([]Workflow, 0, len(w.Cases)+1)
	for _, c := range w.Cases {
		children = append(children, c.Branch)
	}
	if w.Default != nil {
		children = append(children, w.Default)
	}
	return children
}

func (w *DynamicBranchingWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	key := w.Selector(ctxData)
	for _, c := range w.Cases {
		if c.Key == key {
			r := c.Branch.Execute(ctx, ctxData)
			r.StartedAt = started
			return r
		}
	}

	if w.Default != nil {
		r := w.Default.Execute(ctx, ctxData)
		r.StartedAt = started
		return r
	}

	return skipped(started, now())
}
