// Package scheduling provides the bounded worker pool that fans out
// ParallelWorkflow branches and TimeoutWorkflow's watched goroutine,
// following the start/stop goroutine-lifecycle idiom (WaitGroup +
// stopped flag guarded by its own mutex) used elsewhere in
// this codebase's long-running components.
package scheduling
