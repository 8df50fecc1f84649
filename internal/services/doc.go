// Package services implements the business logic layer for terralift.
//
// StackService sits between the HTTP handlers and the terraform lifecycle
// package. It resolves action names to stack configs, schedules the actual
// work on the shared worker pool and maintains the status cache.
//
// # Request Flow
//
//	handler ──► StackService ──► scheduler.Submit ──► terraform.Stack
//	                 │                                       │
//	                 └──────────── store.Status() ◄──────────┘
//	                      (record result / invalidate)
//
// Every scheduled operation is tagged with a generated operation ID that
// appears in all log lines it emits, so one request's subprocess output can
// be followed through concurrent work.
//
// # Deploy Semantics
//
// Deploy probes the stack first. An up-to-date stack is a no-op. An outdated
// stack is applied only when the stack config sets autoApply; otherwise the
// pending changes are logged and the call reports the outdated state without
// touching infrastructure.
//
// # Delete Semantics
//
// Delete refuses to destroy a stack whose config does not set allowDestroy.
// The refusal is not an error: it logs a warning and reports the stack
// unchanged, so a misconfigured orchestrator cannot tear down protected
// infrastructure by accident. A successful destroy drops the stack's cached
// status row.
//
// CommandStacks adapts the service to the passthrough dispatcher, which only
// needs name resolution and cache invalidation.
package services
