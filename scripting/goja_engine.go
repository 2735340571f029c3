package scripting

import (
	"context"
	"fmt"

	"github.com/dop251/goja"

	"github.com/flowkernel/workflow/workflow"
)

// GojaEngine implements workflow.ScriptEngine over goja. A new
// goja.Runtime is created for every Run call — the runtime is not
// safe to reuse across concurrent executions, and a fresh one keeps
// ParallelWorkflow branches fully isolated from one another.
type GojaEngine struct{}

// NewGojaEngine returns a ready-to-use engine; it carries no state of
// its own.
func NewGojaEngine() *GojaEngine {
	return &GojaEngine{}
}

// Run evaluates source with a bound `ctx` object exposing Get/Put/
// ContainsKey over ctxData, and returns the script's final expression
// value exported to a plain Go value. ctx cancellation interrupts the
// running script rather than letting it run to completion.
func (e *GojaEngine) Run(ctx context.Context, source string, ctxData *workflow.Context) (any, error) {
	vm := goja.New()

	binding := &contextBinding{ctxData: ctxData}
	if err := vm.Set("ctx", binding); err != nil {
		return nil, fmt.Errorf("scripting: binding context: %w", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt("workflow: script execution cancelled")
		case <-stop:
		}
	}()

	value, err := vm.RunString(source)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return value.Export(), nil
}

// contextBinding exposes a workflow.Context to script code as a plain
// object with Get/Put/ContainsKey methods; goja reflects these over the
// Go method set without any further registration.
type contextBinding struct {
	ctxData *workflow.Context
}

func (b *contextBinding) Get(key string) any {
	v, _ := b.ctxData.Get(key)
	return v
}

func (b *contextBinding) Put(key string, value any) {
	b.ctxData.Put(key, value)
}

func (b *contextBinding) ContainsKey(key string) bool {
	return b.ctxData.ContainsKey(key)
}
