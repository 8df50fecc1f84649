// Package commands exposes an allow-listed passthrough to the terraform CLI.
//
// Operators sometimes need raw terraform access for a managed stack (state
// surgery, forced unlocks, targeted imports) without losing the agent's
// workspace selection, init handling and variable injection. The Dispatcher
// provides that: it resolves the target stack, runs the preparation steps
// the subcommand requires, then streams the subprocess output line by line.
//
// # Command Table
//
// Table maps each allowed subcommand to the preparation it needs:
//
//	┌──────────────┬───────────┬───────────────┬───────────────────┐
//	│ Subcommand   │ Variables │ Requires init │ Requires workspace │
//	├──────────────┼───────────┼───────────────┼───────────────────┤
//	│ apply        │ yes       │ yes           │ yes               │
//	│ plan         │ yes       │ yes           │ yes               │
//	│ destroy      │ yes       │ yes           │ yes               │
//	│ refresh      │ yes       │ yes           │ yes               │
//	│ import       │ yes       │ yes           │ yes               │
//	│ output       │ no        │ yes           │ yes               │
//	│ show         │ no        │ yes           │ yes               │
//	│ graph        │ no        │ yes           │ yes               │
//	│ taint        │ no        │ yes           │ yes               │
//	│ untaint      │ no        │ yes           │ yes               │
//	│ test         │ no        │ yes           │ yes               │
//	│ force-unlock │ no        │ yes           │ yes               │
//	│ state        │ no        │ yes           │ yes               │
//	│ workspace    │ no        │ yes           │ no                │
//	│ init         │ no        │ no            │ no                │
//	│ validate     │ no        │ no            │ no                │
//	│ fmt          │ no        │ no            │ no                │
//	│ get          │ no        │ no            │ no                │
//	│ login        │ no        │ no            │ no                │
//	│ logout       │ no        │ no            │ no                │
//	└──────────────┴───────────┴───────────────┴───────────────────┘
//
// Subcommands outside the table are rejected with a parameter error before
// any subprocess is started.
//
// # Cache Invalidation
//
// Passthrough commands can change remote state behind the agent's back, so
// the root form drops the recorded status for the target stack before
// executing. No stale diagnostic record survives a manual intervention.
package commands
