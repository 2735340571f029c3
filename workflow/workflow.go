package workflow

import (
	"context"
	"time"
)

// Kind discriminates the concrete node type of a Workflow, for rendering
// and for declarative assembly.
type Kind string

const (
	KindTask        Kind = "Task"
	KindSequence    Kind = "Sequence"
	KindParallel    Kind = "Parallel"
	KindConditional Kind = "Conditional"
	KindSwitch      Kind = "Switch"
	KindForEach     Kind = "ForEach"
	KindRepeat      Kind = "Repeat"
	KindFallback    Kind = "Fallback"
	KindRateLimited Kind = "RateLimited"
	KindTimeout     Kind = "Timeout"
	KindSaga        Kind = "Saga"
	KindScript      Kind = "Script"
)

// Workflow is the composition unit: everything executable in this package
// implements it, leaves and branches alike. Execute must not panic on
// caller error — it reports failure through Result.
type Workflow interface {
	// Execute runs the node against ctxData, honouring ctx cancellation.
	Execute(ctx context.Context, ctxData *Context) Result

	// Name is a short human label used in logs, metrics, and tree
	// rendering (e.g. "LinearFlow", "validate-payment").
	Name() string

	// Kind identifies the node's concrete type.
	Kind() Kind
}

// Children exposes a node's immediate sub-workflows, in execution order.
// Leaf nodes (TaskWorkflow, JavascriptWorkflow) do not implement it.
// Validate recurses through this interface rather than type-switching
// on every concrete node twice.
type Children interface {
	Children() []Workflow
}

// now is overridable in tests that need deterministic timestamps; outside
// tests it is time.Now.
var now = time.Now
