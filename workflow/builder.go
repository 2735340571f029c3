package workflow

// Build validates a composed tree and hands it back, so construction
// mistakes surface where the tree is assembled rather than as a nil
// dereference mid-execution. It is the build-time counterpart of
// Execute: every node's required fields are checked, depth-first.
func Build(root Workflow) (Workflow, error) {
	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Validate checks root and every node below it for missing required
// fields. It returns the first defect found as a *ValidationError.
func Validate(root Workflow) error {
	if root == nil {
		return &ValidationError{Node: "(root)", Field: "workflow"}
	}
	return validateNode(root)
}

func validateNode(w Workflow) error {
	switch n := w.(type) {
	case *TaskWorkflow:
		if n.Task == nil {
			return &ValidationError{Node: n.Name(), Field: "Task"}
		}
		return nil
	case *SequentialWorkflow:
		for _, step := range n.Steps {
			if step == nil {
				return &ValidationError{Node: n.Name(), Field: "Steps"}
			}
		}
	case *ParallelWorkflow:
		for _, branch := range n.Branches {
			if branch == nil {
				return &ValidationError{Node: n.Name(), Field: "Branches"}
			}
		}
	case *ConditionalWorkflow:
		if n.Condition == nil {
			return &ValidationError{Node: n.Name(), Field: "Condition"}
		}
		if n.WhenTrue == nil {
			return &ValidationError{Node: n.Name(), Field: "WhenTrue"}
		}
	case *DynamicBranchingWorkflow:
		if n.Selector == nil {
			return &ValidationError{Node: n.Name(), Field: "Selector"}
		}
		for _, c := range n.Cases {
			if c.Branch == nil {
				return &ValidationError{Node: n.Name(), Field: "Cases"}
			}
		}
	case *ForEachWorkflow:
		if n.ItemsKey == "" {
			return &ValidationError{Node: n.Name(), Field: "ItemsKey"}
		}
		if n.ItemVariable == "" {
			return &ValidationError{Node: n.Name(), Field: "ItemVariable"}
		}
		if n.Body == nil {
			return &ValidationError{Node: n.Name(), Field: "Body"}
		}
	case *RepeatWorkflow:
		if n.Times < 0 {
			return &ValidationError{Node: n.Name(), Field: "Times"}
		}
		if n.Body == nil {
			return &ValidationError{Node: n.Name(), Field: "Body"}
		}
	case *FallbackWorkflow:
		if n.Primary == nil {
			return &ValidationError{Node: n.Name(), Field: "Primary"}
		}
		if n.Fallback == nil {
			return &ValidationError{Node: n.Name(), Field: "Fallback"}
		}
	case *RateLimitedWorkflow:
		if n.Limiter == nil {
			return &ValidationError{Node: n.Name(), Field: "Limiter"}
		}
		if n.Child == nil {
			return &ValidationError{Node: n.Name(), Field: "Child"}
		}
	case *TimeoutWorkflow:
		if n.Child == nil {
			return &ValidationError{Node: n.Name(), Field: "Child"}
		}
		if n.Limit <= 0 {
			return &ValidationError{Node: n.Name(), Field: "Limit"}
		}
	case *SagaWorkflow:
		for _, step := range n.Steps {
			if step.Action == nil {
				return &ValidationError{Node: n.Name(), Field: "Steps[" + step.StepName + "].Action"}
			}
		}
	case *JavascriptWorkflow:
		if n.Provider == nil {
			return &ValidationError{Node: n.Name(), Field: "Provider"}
		}
		if n.Engine == nil {
			return &ValidationError{Node: n.Name(), Field: "Engine"}
		}
		return nil
	}

	if parent, ok := w.(Children); ok {
		for _, child := range parent.Children() {
			if child == nil {
				continue
			}
			if err := validateNode(child); err != nil {
				return err
			}
		}
	}
	return nil
}
