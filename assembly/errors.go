package assembly

import "errors"

// Error kinds raised during Build, never wrapped inside a
// workflow.Result — assembly failures are synchronous build-time
// errors, since there is no execution yet to produce one.
var (
	// ErrWorkflowBuild covers any construction failure other than
	// reference resolution: no factory registered for an element's Kind,
	// a factory that returns an error or nil or panics, or an unknown
	// Kind.
	ErrWorkflowBuild = errors.New("assembly: workflow build failed")

	// ErrWorkflowComposition covers reference-resolution failures: a
	// Ref with no Definition, a referenced Definition that fails to
	// build, or a Registry registration without a name.
	ErrWorkflowComposition = errors.New("assembly: workflow composition failed")

	// ErrCircularComposition is a subtype of ErrWorkflowComposition:
	// the reference graph re-encounters the root definition.
	ErrCircularComposition = errors.New("assembly: circular composition detected")
)

// CircularCompositionError names the cycle discovered during the
// reference-acyclicity walk (§4.14 step 4).
type CircularCompositionError struct {
	Path []string
}

func (e *CircularCompositionError) Error() string {
	path := e.Path[0]
	for _, p := range e.Path[1:] {
		path += " -> " + p
	}
	return "assembly: circular composition detected: " + path
}

func (e *CircularCompositionError) Unwrap() []error {
	return []error{ErrCircularComposition, ErrWorkflowComposition}
}

// WorkflowCompositionError wraps a reference that could not be resolved.
type WorkflowCompositionError struct {
	RefName string
	Cause   error
}

func (e *WorkflowCompositionError) Error() string {
	return "assembly: resolving ref " + e.RefName + ": " + e.Cause.Error()
}

func (e *WorkflowCompositionError) Unwrap() error {
	return ErrWorkflowComposition
}

// WorkflowBuildError wraps any other construction failure: a missing
// factory for the element's Kind, a factory that returned an error or
// nil or panicked, or an unknown Kind.
type WorkflowBuildError struct {
	ElementName string
	Cause       error
}

func (e *WorkflowBuildError) Error() string {
	return "assembly: building element " + e.ElementName + ": " + e.Cause.Error()
}

func (e *WorkflowBuildError) Unwrap() error {
	return ErrWorkflowBuild
}
