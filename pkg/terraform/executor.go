package terraform

import (
	"context"
	"time"

	"github.com/terralift/terralift/internal/models"
)

// Request describes one terraform subcommand invocation.
type Request struct {
	// Dir is the working directory (the stack root).
	Dir string
	// Args are the terraform arguments, subcommand first.
	Args []string
	// AllowFailure makes a nonzero exit return a ProcessResult instead of an
	// error. Used where the exit code itself carries the signal (plan
	// -detailed-exitcode, validate -json).
	AllowFailure bool
	// Timeout bounds the invocation. Zero means the default probe timeout.
	Timeout time.Duration
}

// LineSink receives one line of subprocess output at a time, in real time.
type LineSink func(line string)

// Executor runs terraform subcommands. The CLI runner is the production
// implementation; tests substitute a scripted fake.
type Executor interface {
	// Run executes the request to completion, buffering all output.
	Run(ctx context.Context, req Request) (*models.ProcessResult, error)
	// Stream executes the request while forwarding each output line to sink
	// as it is produced. Stderr is additionally buffered in full so failures
	// carry an actionable message.
	Stream(ctx context.Context, req Request, sink LineSink) (*models.ProcessResult, error)
}
