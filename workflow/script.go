package workflow

import "context"

// ScriptProvider yields the source text of a script and its origin, for
// error messages and tree rendering. Origin is a filename when the
// script was loaded from a file, or "" for inline source.
type ScriptProvider interface {
	Source() (string, error)
	Origin() string
}

// InlineScript is a ScriptProvider over a literal string.
type InlineScript struct {
	Code string
}

func (s InlineScript) Source() (string, error) { return s.Code, nil }
func (s InlineScript) Origin() string          { return "" }

// ScriptEngine executes a script against a Context and returns its
// result value. Implementations live in the scripting package.
type ScriptEngine interface {
	Run(ctx context.Context, source string, ctxData *Context) (any, error)
}

// JavascriptWorkflow delegates execution to an external ScriptEngine.
// The engine's return value becomes the node's Result.Output verbatim;
// if ResultKey is non-empty, the value is also written into Context
// under that key so downstream nodes can consume it.
type JavascriptWorkflow struct {
	WorkflowName string
	Provider     ScriptProvider
	Engine       ScriptEngine
	ResultKey    string
}

func NewJavascriptWorkflow(name string, provider ScriptProvider, engine ScriptEngine) *JavascriptWorkflow {
	return &JavascriptWorkflow{WorkflowName: name, Provider: provider, Engine: engine}
}

func (w *JavascriptWorkflow) Name() string { return w.WorkflowName }
func (w *JavascriptWorkflow) Kind() Kind   { return KindScript }

func (w *JavascriptWorkflow) Execute(ctx context.Context, ctxData *Context) Result {
	started := now()

	source, err := w.Provider.Source()
	if err != nil {
		return failure(started, now(), &ScriptExecutionError{Source: w.scriptOrigin(), Cause: err})
	}

	output, err := w.Engine.Run(ctx, source, ctxData)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(started, now(), ctx.Err())
		}
		return failure(started, now(), &ScriptExecutionError{Source: w.scriptOrigin(), Cause: err})
	}

	if w.ResultKey != "" {
		ctxData.Put(w.ResultKey, output)
	}

	return successWithOutput(started, now(), output)
}

// scriptOrigin resolves the label TreeRenderer and error messages use to
// identify the script: the filename if one was loaded from, or "inline".
func (w *JavascriptWorkflow) scriptOrigin() string {
	origin := w.Provider.Origin()
	if origin == "" {
		return "inline"
	}
	return origin
}
