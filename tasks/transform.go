package tasks

import (
	"context"
	"fmt"

	"github.com/flowkernel/workflow/workflow"
)

// TransformTask applies Fn to the current Context and returns its
// result as the task output, without performing any I/O itself — the
// pure-computation counterpart to HTTPTask/ShellTask/FileReadTask.
type TransformTask struct {
	TaskName string
	Fn       func(ctxData *workflow.Context) (any, error)
}

func (t *TransformTask) Name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return "transform"
}

func (t *TransformTask) Run(_ context.Context, ctxData *workflow.Context) (any, error) {
	return t.Fn(ctxData)
}

// CopyKeyTask copies the value at FromKey to ToKey and returns it,
// the most common shape of transform: passing one step's output
// forward under a new name.
type CopyKeyTask struct {
	TaskName string
	FromKey  string
	ToKey    string
}

func (t *CopyKeyTask) Name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return "copy:" + t.FromKey + "->" + t.ToKey
}

func (t *CopyKeyTask) Run(_ context.Context, ctxData *workflow.Context) (any, error) {
	value, ok := ctxData.Get(t.FromKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingInput, t.FromKey)
	}
	ctxData.Put(t.ToKey, value)
	return value, nil
}
