// Package workflow is the composition kernel: a Context carried through a
// tree of Workflow nodes, producing a Result at each level.
//
// # Overview
//
// A Workflow is a recursive node — Task, Sequence, Parallel, Conditional,
// Switch, ForEach, Repeat, Fallback, RateLimited, Timeout, Saga, or
// JavaScript — executed against a Context:
//
//	ctx := workflow.NewContext()
//	result := root.Execute(context.Background(), ctx)
//	if result.IsFailure() {
//	    // result.Err carries the cause
//	}
//
// Data flows top-down (Context into the root, propagated to children);
// results flow bottom-up (each child's Result feeds the parent's
// aggregation rule). Traversal is depth-first except ParallelWorkflow,
// which fans children out onto an injected scheduling.Pool.
//
// # Files
//
//   - context.go        Context, the mutable keyed store
//   - result.go         Status, Result
//   - task.go           Task interface, TaskDescriptor, TaskRegistry
//   - workflow.go       Workflow interface, Kind
//   - task_workflow.go  TaskWorkflow (retry + timeout around a Task)
//   - sequential.go     SequentialWorkflow
//   - parallel.go       ParallelWorkflow
//   - conditional.go    ConditionalWorkflow
//   - switch.go         DynamicBranchingWorkflow
//   - foreach.go        ForEachWorkflow
//   - repeat.go         RepeatWorkflow
//   - fallback.go       FallbackWorkflow
//   - ratelimited.go    RateLimitedWorkflow
//   - timeout.go        TimeoutWorkflow
//   - saga.go           SagaWorkflow, SagaStep
//   - script.go         JavascriptWorkflow, ScriptProvider
//   - render.go         TreeRenderer (toTreeString)
//   - errors.go         error taxonomy
package workflow
