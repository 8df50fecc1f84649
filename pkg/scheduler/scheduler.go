package scheduler

import (
	"context"
	"fmt"
	"sync"
)

type task[T any] struct {
	fn  Work[T]
	out chan Result[T]
	ctx context.Context
}

// run executes the work, delivering exactly one result to the future. A
// panic inside the work function becomes an error result instead of taking
// the worker down.
func (t *task[T]) run() {
	defer func() {
		if rec := recover(); rec != nil {
			t.out <- Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
	}()
	v, err := t.fn(t.ctx)
	t.out <- Result[T]{Data: v, Err: err}
}

// Scheduler runs submitted work on a fixed number of long-lived worker
// goroutines. Work beyond the pool size queues in FIFO order. Stack
// operations block on subprocesses for minutes, so the bound is what keeps
// a burst of deploy requests from forking an unbounded number of terraform
// processes.
type Scheduler[T any] struct {
	submit chan *task[T]
	ready  chan *task[T]

	ctx    context.Context
	cancel context.CancelFunc
	pumped chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func New[T any](workers int) *Scheduler[T] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		submit: make(chan *task[T]),
		ready:  make(chan *task[T]),
		ctx:    ctx,
		cancel: cancel,
		pumped: make(chan struct{}),
	}
	for range workers {
		s.wg.Add(1)
		go s.worker()
	}
	go s.pump()
	return s
}

// Submit hands one unit of work to the pool and returns a future for its
// result. When the scheduler is already closed, the future resolves
// immediately with context.Canceled.
func (s *Scheduler[T]) Submit(w Work[T]) *Future[T] {
	out := make(chan Result[T], 1)
	ctx, cancel := context.WithCancel(s.ctx)
	t := &task[T]{fn: w, out: out, ctx: ctx}

	select {
	case s.submit <- t:
	case <-s.ctx.Done():
		out <- Result[T]{Err: context.Canceled}
	}
	return &Future[T]{out: out, cancel: cancel}
}

// Close cancels all running work and blocks until the workers and the pump
// have drained. Queued work that never reached a worker resolves with
// context.Canceled rather than leaving its future hanging.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		<-s.pumped
	})
}

// pump sits between Submit and the workers, buffering bursts that exceed
// the pool size while preserving submission order. Only the head of the
// backlog is ever offered to the ready channel.
func (s *Scheduler[T]) pump() {
	defer close(s.pumped)
	var backlog []*task[T]
	for {
		var ready chan *task[T]
		var head *task[T]
		if len(backlog) > 0 {
			ready = s.ready
			head = backlog[0]
		}

		select {
		case t := <-s.submit:
			backlog = append(backlog, t)
		case ready <- head:
			backlog = backlog[1:]
		case <-s.ctx.Done():
			for _, t := range backlog {
				t.out <- Result[T]{Err: context.Canceled}
			}
			return
		}
	}
}

func (s *Scheduler[T]) worker() {
	defer s.wg.Done()
	for {
		select {
		case t := <-s.ready:
			t.run()
		case <-s.ctx.Done():
			return
		}
	}
}
