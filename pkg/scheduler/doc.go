// Package scheduler implements a bounded worker pool with futures.
//
// Stack operations fork terraform subprocesses that can hold locks for
// minutes, so concurrency has to be capped. The scheduler runs submitted
// work on a fixed number of long-lived workers; work beyond the pool size
// queues in FIFO order inside a pump goroutine that sits between submission
// and the workers.
//
// # Architecture
//
//	Submit(fn) ──► submit channel ──► pump ──► ready channel ──► worker 1..N
//	                                   │
//	                             [FIFO backlog]
//
// The pump owns the backlog: it appends new submissions and offers only the
// head of the queue to the ready channel, so order is preserved no matter
// which worker picks the task up. Workers are plain goroutines looping on
// the ready channel; there is no idle-worker bookkeeping.
//
// Submit returns a *Future immediately. The future's channel is buffered
// with capacity one, so a worker never blocks on a caller that stopped
// listening, and Stop() cancels the context the work runs under.
//
// Cancellation is hierarchical: every task context derives from the
// scheduler's root context, so Close() cancels all in-flight work, waits for
// the workers to drain, and resolves any still-queued futures with
// context.Canceled rather than leaving them hanging. Panics inside a work
// function are recovered and delivered through the future as an error
// result.
//
// The scheduler is generic over the result type, so callers get typed
// results back without assertions:
//
//	s := scheduler.New[*models.StackResult](3)
//	defer s.Close()
//
//	future := s.Submit(func(ctx context.Context) (*models.StackResult, error) {
//	    return probeStack(ctx)
//	})
//
//	select {
//	case r := <-future.C():
//	    // r.Data / r.Err
//	case <-ctx.Done():
//	    future.Stop()
//	}
package scheduler
