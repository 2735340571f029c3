package assembly

import (
	"github.com/flowkernel/workflow/scheduling"
	"github.com/flowkernel/workflow/workflow"
)

// ElementKind discriminates whether an Element's factory produces a
// workflow.Workflow directly or a workflow.Task to be wrapped as one.
type ElementKind int

const (
	ElementKindWorkflow ElementKind = iota
	ElementKindTask
)

// BuildContext exposes the already-built Workflows for a Definition's
// Refs, keyed by the name under which they were registered. Element
// factories receive it so they can wire a resolved reference into the
// node they produce (e.g. a Sequential step that runs one of this
// Definition's Refs as a child).
type BuildContext struct {
	refs map[string]workflow.Workflow
}

// Ref returns the built Workflow registered under name, if any.
func (bc *BuildContext) Ref(name string) (workflow.Workflow, bool) {
	w, ok := bc.refs[name]
	return w, ok
}

// Element is one contributor to a Definition's composed tree: either a
// WORKFLOW element (its factory returns a Workflow directly) or a TASK
// element (its factory returns a Task, which Build wraps as a
// workflow.TaskWorkflow, applying MaxRetries/TimeoutMs when positive).
// Order controls composition order; ties preserve registration order
// (Build sorts with a stable sort).
type Element struct {
	Name            string
	Order           int
	Kind            ElementKind
	WorkflowFactory func(bc *BuildContext) (workflow.Workflow, error)
	TaskFactory     func(bc *BuildContext) (workflow.Task, error)
	MaxRetries      int
	TimeoutMs       int64
	RetryableErr    func(err error) bool
}

// Ref is an explicit, typed reference from one Definition to another —
// the registration-pattern replacement for a reflection-discovered
// WorkflowRef field or parameter.
type Ref struct {
	Name       string
	Definition *Definition
}

// Definition is a declaratively-described workflow: a named, ordered
// set of Elements plus a set of Refs to other Definitions, composed
// either sequentially or in parallel.
type Definition struct {
	Name         string
	Parallel     bool
	ShareContext bool
	Pool         *scheduling.Pool
	Elements     []Element
	Refs         []Ref
}
