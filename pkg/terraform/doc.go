// Package terraform drives the terraform CLI for one configured stack.
//
// A Stack wraps an immutable StackConfig and an Executor and exposes the
// lifecycle operations the agent needs: workspace selection, init with
// backend drift detection, plan-based status probing, apply, destroy and
// output extraction. Every subprocess runs through the Executor interface so
// the whole package is testable without a terraform binary.
//
// # Lifecycle Flow
//
//	EnsureWorkspace ──► EnsureInit ──► Status ──► Apply / Destroy ──► Outputs
//
// Callers compose these steps; the package never sequences them on its own
// beyond what a single step requires (destroy re-selects the workspace
// because it may run long after the selection that preceded the status
// probe).
//
// # Status Classification
//
// Status runs a read-only plan with -detailed-exitcode and maps the process
// exit code onto a coarse stack state:
//
//	┌───────────┬──────────────┬──────────────────────────────────────────┐
//	│ Exit code │ Status       │ Meaning                                  │
//	├───────────┼──────────────┼──────────────────────────────────────────┤
//	│ 0         │ up-to-date   │ No changes between config and state      │
//	│ 1         │ error        │ Plan failed; details logged, not raised  │
//	│ 2         │ outdated     │ Plan found pending changes               │
//	│ other     │ —            │ Plugin-level failure, raised as error    │
//	└───────────┴──────────────┴──────────────────────────────────────────┘
//
// The probe passes -refresh=false and -lock=false so that asking for status
// never mutates state files or contends with a running apply.
//
// # Init Protocol
//
// EnsureInit avoids redundant `terraform init` calls:
//
//  1. When the stack declares backend config and the recorded backend in
//     .terraform/terraform.tfstate differs on any desired key, init runs
//     immediately with -reconfigure.
//  2. Otherwise `validate -json` probes the working directory. A valid
//     result means init is skipped entirely.
//  3. An invalid result triggers init followed by exactly one re-validation.
//     If the directory is still invalid, the consolidated diagnostics are
//     returned as a configuration error.
//
// The backend comparison is asymmetric: only keys named in the desired
// config are compared, so extra recorded keys (injected by the backend
// itself) never count as drift.
//
// # Variables
//
// PrepareVariables writes the stack's variables to terralift.tfvars.json in
// the stack root before plan, apply and destroy. The file is overwritten on
// every invocation so stale values from a previous run cannot leak in.
//
// # Managed Binaries
//
// ResolveBinary returns the terraform executable for a stack. Stacks without
// a pinned version use the binary on PATH; pinned versions are downloaded
// from releases.hashicorp.com once and cached under the agent data folder:
//
//	<dataFolder>/bin/terraform/<version>/terraform
package terraform
