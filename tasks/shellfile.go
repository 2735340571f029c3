package tasks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/flowkernel/workflow/workflow"
)

// ShellTask runs a single command under ctx; exec.CommandContext kills
// the subprocess when the workflow is cancelled or timed out. A
// non-zero exit is reported as a task failure; stdout and stderr are
// both captured into the outputs regardless.
type ShellTask struct {
	TaskName string
	Command  string
	Args     []string
	Dir      string
}

func (t *ShellTask) Name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return "shell:" + t.Command
}

func (t *ShellTask) Run(ctx context.Context, ctxData *workflow.Context) (any, error) {
	cmd := exec.CommandContext(ctx, t.Command, t.Args...)
	cmd.Dir = t.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outputs := map[string]any{
		"stdout": stdout.String(),
		"stderr": stderr.String(),
	}
	if cmd.ProcessState != nil {
		outputs["exit_code"] = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return outputs, fmt.Errorf("tasks: command %q failed: %w", t.Command, err)
	}
	return outputs, nil
}

// FileReadTask reads a file's contents and returns them as a string
// output. It exists alongside ShellTask for the same reason: the
// source treats file I/O as a pluggable integration, only its interface
// is specified by the core.
type FileReadTask struct {
	TaskName string
	Path     string
}

func (t *FileReadTask) Name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return "read:" + t.Path
}

func (t *FileReadTask) Run(ctx context.Context, ctxData *workflow.Context) (any, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("tasks: reading %q: %w", t.Path, err)
	}
	return string(data), nil
}

// FileWriteTask writes the value stored at ContentKey to Path, creating
// it with Perm if it does not already exist.
type FileWriteTask struct {
	TaskName   string
	Path       string
	ContentKey string
	Perm       os.FileMode
}

func (t *FileWriteTask) Name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return "write:" + t.Path
}

func (t *FileWriteTask) Run(ctx context.Context, ctxData *workflow.Context) (any, error) {
	raw, ok := ctxData.Get(t.ContentKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingInput, t.ContentKey)
	}
	content, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("tasks: context key %q is not a string", t.ContentKey)
	}
	perm := t.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(t.Path, []byte(content), perm); err != nil {
		return nil, fmt.Errorf("tasks: writing %q: %w", t.Path, err)
	}
	return t.Path, nil
}
