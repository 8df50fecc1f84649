// Package server wires the gin HTTP server for terralift.
//
// The server mounts the v1 API group, installs zap request logging and
// recovery middleware, and optionally enforces bearer-token authentication
// when auth.enabled is set. Tokens are HS256 JWTs validated against the
// shared secret read from auth.secretFilePath.
//
// Start blocks until the listener fails or Stop is called; Stop drains
// in-flight requests with a ten second grace period.
package server
