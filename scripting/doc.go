// Package scripting implements workflow.ScriptEngine on top of
// dop251/goja, an embedded ECMAScript runtime used for the
// JavascriptWorkflow node. A fresh *goja.Runtime is created per Run
// call so that concurrent ParallelWorkflow branches each running a
// script never share interpreter state.
package scripting
