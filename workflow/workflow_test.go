package workflow

import (
	"context"
	"errors"
)

// succeedingTask always returns a fixed output.
func succeedingTask(name string, output any) *TaskWorkflow {
	return NewTaskWorkflow(name, TaskFunc{
		FuncName: name,
		Fn: func(ctx context.Context, ctxData *Context) (any, error) {
			return output, nil
		},
	})
}

// failingTask always fails with err.
func failingTask(name string, err error) *TaskWorkflow {
	return NewTaskWorkflow(name, TaskFunc{
		FuncName: name,
		Fn: func(ctx context.Context, ctxData *Context) (any, error) {
			return nil, err
		},
	})
}

// countingTask increments *calls on every run and delegates to fn.
func countingTask(name string, calls *int, fn func(ctx context.Context, ctxData *Context) (any, error)) *TaskWorkflow {
	return NewTaskWorkflow(name, TaskFunc{
		FuncName: name,
		Fn: func(ctx context.Context, ctxData *Context) (any, error) {
			*calls++
			return fn(ctx, ctxData)
		},
	})
}

var errBoom = errors.New("boom")
