package scheduler

import (
	"context"
)

// Work is one unit of stack work (a status probe, an apply, a destroy).
type Work[T any] func(ctx context.Context) (T, error)

// Result carries the outcome of one unit of work.
type Result[T any] struct {
	Data T
	Err  error
}

// Future hands the caller the eventual result of submitted work together
// with a way to cancel it.
type Future[T any] struct {
	out    chan Result[T]
	cancel context.CancelFunc
}

// C is the channel the result arrives on. It is buffered with capacity one,
// so a worker never blocks on a caller that stopped listening.
func (f *Future[T]) C() <-chan Result[T] {
	return f.out
}

// Stop cancels the context the work runs under.
func (f *Future[T]) Stop() {
	f.cancel()
}
