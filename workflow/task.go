package workflow

import (
	"context"
	"fmt"

	"github.com/flowkernel/workflow/resilience"
)

// Task is a single unit of externally-meaningful work: an HTTP call, a
// database statement, a shell command, a pure transform. TaskWorkflow
// wraps a Task with retry and timeout policy; the Task itself stays
// oblivious to both.
type Task interface {
	// Run executes the unit of work and returns its output, or an error.
	// Implementations must honour ctx cancellation/deadline.
	Run(ctx context.Context, ctxData *Context) (any, error)

	// Name identifies the task for logging, metrics, and tree rendering.
	Name() string
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc struct {
	FuncName string
	Fn       func(ctx context.Context, ctxData *Context) (any, error)
}

func (t TaskFunc) Run(ctx context.Context, ctxData *Context) (any, error) {
	return t.Fn(ctx, ctxData)
}

func (t TaskFunc) Name() string {
	if t.FuncName == "" {
		return "anonymous"
	}
	return t.FuncName
}

// TaskDescriptor binds a Task to the name and resilience policies it
// should execute under. Workflow() is how builders turn one into the
// corresponding leaf node.
type TaskDescriptor struct {
	Name    string
	Task    Task
	Retry   resilience.RetryPolicy
	Timeout resilience.TimeoutPolicy
}

// Workflow produces the TaskWorkflow described by d.
func (d TaskDescriptor) Workflow() *TaskWorkflow {
	return &TaskWorkflow{TaskName: d.Name, Task: d.Task, Retry: d.Retry, Timeout: d.Timeout}
}

// TaskSpec identifies a Task by registered type name plus a static
// configuration payload, as produced when building a tree from a
// declarative definition file rather than Go code.
type TaskSpec struct {
	Type   string
	Config map[string]any
}

// TaskProvider resolves a TaskSpec to a concrete Task. TaskRegistry below
// is the implementation in this module; the tasks package supplies Task
// types (http.go, shellfile.go, transform.go, pgtask.go), not providers.
type TaskProvider interface {
	Resolve(spec TaskSpec) (Task, error)
}

// TaskRegistry is a TaskProvider backed by a name -> factory map, mirroring
// the executor-registry pattern used for dispatching step types by a
// string discriminant.
type TaskRegistry struct {
	factories map[string]func(config map[string]any) (Task, error)
}

// NewTaskRegistry creates an empty registry. Callers register factories
// with Register before use.
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{factories: make(map[string]func(config map[string]any) (Task, error))}
}

// Register adds a factory for taskType. A later call for the same type
// replaces the earlier one.
func (r *TaskRegistry) Register(taskType string, factory func(config map[string]any) (Task, error)) {
	r.factories[taskType] = factory
}

// Resolve builds a Task from spec using the registered factory for
// spec.Type.
func (r *TaskRegistry) Resolve(spec TaskSpec) (Task, error) {
	factory, ok := r.factories[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTaskProvider, spec.Type)
	}
	task, err := factory(spec.Config)
	if err != nil {
		return nil, fmt.Errorf("workflow: resolving task %q: %w", spec.Type, err)
	}
	return task, nil
}
