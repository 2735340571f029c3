// Package tasks provides concrete workflow.Task implementations: the
// integrations the core composition kernel treats as external
// collaborators. Each Task reads its inputs from static fields plus
// workflow.Context keys and writes its outcome back through the Task
// return value — HTTP calls, shell commands, file I/O, pure transforms,
// and a Postgres-backed query/exec pair over a pgx pool.
//
// The core never imports this package; these types depend on the
// workflow package, not the other way around.
package tasks
