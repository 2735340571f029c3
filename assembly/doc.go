// Package assembly turns a declarative workflow definition into a built
// workflow.Workflow tree.
//
// Reflection-driven discovery of workflow elements has no honest
// equivalent in Go, so this package uses an explicit registration
// pattern instead: a Definition registers its elements (name, order,
// factory closures producing a Workflow or a Task) up front, plus
// explicit named references to other Definitions, and Build operates
// purely over that already-explicit description — no reflection, no
// struct tags.
//
// Build is two passes: validate the reference graph (depth-first cycle
// detection over Definition pointers), then resolve refs and invoke
// factories in ascending element order, composing the results into a
// sequential or parallel root.
package assembly
