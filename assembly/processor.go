package assembly

import (
	"fmt"
	"sort"

	"github.com/flowkernel/workflow/resilience"
	"github.com/flowkernel/workflow/workflow"
)

// Build resolves def's Refs, validates the reference graph is acyclic,
// invokes each Element's factory in ascending Order (stable on ties),
// and composes the results into a SequentialWorkflow or ParallelWorkflow
// per def.Parallel. All failures are returned, never thrown: a factory
// that panics is caught and reported as a *WorkflowBuildError.
func Build(def *Definition) (workflow.Workflow, error) {
	if err := detectCycle(def, nil); err != nil {
		return nil, err
	}
	return build(def)
}

func build(def *Definition) (workflow.Workflow, error) {
	refs := make(map[string]workflow.Workflow, len(def.Refs))
	for _, ref := range def.Refs {
		if ref.Definition == nil {
			return nil, &WorkflowCompositionError{RefName: ref.Name, Cause: fmt.Errorf("ref %q has no Definition", ref.Name)}
		}
		built, err := build(ref.Definition)
		if err != nil {
			return nil, &WorkflowCompositionError{RefName: ref.Name, Cause: err}
		}
		refs[ref.Name] = built
	}
	bc := &BuildContext{refs: refs}

	elements := make([]Element, len(def.Elements))
	copy(elements, def.Elements)
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].Order < elements[j].Order })

	nodes := make([]workflow.Workflow, 0, len(elements))
	for _, el := range elements {
		node, err := buildElement(el, bc)
		if err != nil {
			return nil, &WorkflowBuildError{ElementName: el.Name, Cause: err}
		}
		nodes = append(nodes, node)
	}

	if def.Parallel {
		p := workflow.NewParallelWorkflow(def.Name, def.Pool, nodes...)
		p.ShareContext = def.ShareContext
		return p, nil
	}
	return workflow.NewSequentialWorkflow(def.Name, nodes...), nil
}

func buildElement(el Element, bc *BuildContext) (node workflow.Workflow, err error) {
	// A factory closure is user code invoked at build time; a panic
	// there must surface as a build error, not take the process down.
	defer func() {
		if rec := recover(); rec != nil {
			node = nil
			err = fmt.Errorf("element factory panicked: %v", rec)
		}
	}()

	switch el.Kind {
	case ElementKindWorkflow:
		if el.WorkflowFactory == nil {
			return nil, fmt.Errorf("element %q declared as WORKFLOW but has no factory", el.Name)
		}
		built, err := el.WorkflowFactory(bc)
		if err != nil {
			return nil, err
		}
		if built == nil {
			return nil, fmt.Errorf("element %q factory returned no Workflow", el.Name)
		}
		return built, nil
	case ElementKindTask:
		if el.TaskFactory == nil {
			return nil, fmt.Errorf("element %q declared as TASK but has no factory", el.Name)
		}
		task, err := el.TaskFactory(bc)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, fmt.Errorf("element %q factory returned no Task", el.Name)
		}
		tw := workflow.NewTaskWorkflow(el.Name, task)
		if el.MaxRetries > 0 {
			tw.Retry = resilience.LimitedRetries(el.MaxRetries)
			tw.Retry.RetryableErr = el.RetryableErr
		}
		if el.TimeoutMs > 0 {
			tw.Timeout = resilience.TimeoutOfMillis(el.TimeoutMs)
		}
		return tw, nil
	default:
		return nil, fmt.Errorf("element %q has unknown kind %v", el.Name, el.Kind)
	}
}

// detectCycle walks the reference graph depth-first, failing when any
// path re-encounters a Definition already on the walk stack. Identity
// is pointer identity, not name equality — two distinct Definitions may
// share a display name without forming a cycle.
func detectCycle(def *Definition, stack []*Definition) error {
	for _, visited := range stack {
		if visited == def {
			path := make([]string, 0, len(stack)+1)
			for _, s := range stack {
				path = append(path, s.Name)
			}
			path = append(path, def.Name)
			return &CircularCompositionError{Path: path}
		}
	}
	stack = append(stack, def)
	for _, ref := range def.Refs {
		if ref.Definition == nil {
			continue
		}
		if err := detectCycle(ref.Definition, stack); err != nil {
			return err
		}
	}
	return nil
}
