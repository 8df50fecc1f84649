// Package handlers implements the HTTP endpoints for the terralift API.
//
// # Endpoints
//
//	┌────────┬───────────────────────────┬──────────────────────────────────┐
//	│ Method │ Path                      │ Purpose                          │
//	├────────┼───────────────────────────┼──────────────────────────────────┤
//	│ GET    │ /stacks/:name/status      │ Probe or read cached stack state │
//	│ POST   │ /stacks/:name/deploy      │ Converge the stack               │
//	│ DELETE │ /stacks/:name             │ Destroy the stack (guarded)      │
//	│ POST   │ /commands                 │ Allow-listed CLI passthrough     │
//	└────────┴───────────────────────────┴──────────────────────────────────┘
//
// # Error Mapping
//
//	parameter error      → 404 on the stack endpoints (unknown path name)
//	                       400 on /commands (bad command/action in the body)
//	configuration error  → 422
//	anything else        → 500
package handlers
