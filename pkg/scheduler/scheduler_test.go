package scheduler_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/terralift/terralift/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler[string]

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("Submit", func() {
		// Given a one-worker pool
		// When work is submitted
		// Then the typed result arrives through the future
		It("should run work and deliver a typed result", func() {
			s = scheduler.New[string](1)

			future := s.Submit(func(ctx context.Context) (string, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[string]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
			Expect(result.Err).NotTo(HaveOccurred())
		})

		// Given more submissions than workers
		// When they all run
		// Then the backlog drains in submission order
		It("should queue beyond the pool size preserving FIFO order", func() {
			s = scheduler.New[string](1)

			order := make(chan string, 4)
			for _, name := range []string{"a", "b", "c", "d"} {
				n := name
				s.Submit(func(ctx context.Context) (string, error) {
					order <- n
					return n, nil
				})
			}

			var seen []string
			Eventually(func() []string {
				for {
					select {
					case n := <-order:
						seen = append(seen, n)
					default:
						return seen
					}
				}
			}, 2*time.Second, 20*time.Millisecond).Should(Equal([]string{"a", "b", "c", "d"}))
		})

		// Given a panicking work function
		// When it runs
		// Then the future receives an error result and the worker survives
		It("should recover a panic into an error result", func() {
			s = scheduler.New[string](1)

			future := s.Submit(func(ctx context.Context) (string, error) {
				panic("boom")
			})

			var result scheduler.Result[string]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("boom")))

			// the pool still works afterwards
			after := s.Submit(func(ctx context.Context) (string, error) {
				return "alive", nil
			})
			Eventually(after.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("alive"))
		})
	})

	Describe("Cancellation", func() {
		blocking := func(cancelled chan bool) scheduler.Work[string] {
			return func(ctx context.Context) (string, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return "", ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}
		}

		// Given running work
		// When its future is stopped
		// Then the work's context is cancelled
		It("should cancel work via future.Stop()", func() {
			s = scheduler.New[string](1)

			cancelled := make(chan bool, 1)
			future := s.Submit(blocking(cancelled))

			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		// Given running work
		// When the scheduler closes
		// Then the work's context is cancelled
		It("should cancel running work on Close", func() {
			s = scheduler.New[string](1)

			cancelled := make(chan bool, 1)
			s.Submit(blocking(cancelled))

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		// Given queued work that never reached a worker
		// When the scheduler closes
		// Then its future resolves with context.Canceled instead of hanging
		It("should resolve queued futures with Canceled on Close", func() {
			s = scheduler.New[string](1)

			cancelled := make(chan bool, 1)
			s.Submit(blocking(cancelled)) // occupies the only worker
			queued := s.Submit(func(ctx context.Context) (string, error) {
				if err := ctx.Err(); err != nil {
					return "", err
				}
				return "never", nil
			})

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil

			var result scheduler.Result[string]
			Eventually(queued.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		// Given a closed scheduler
		// When work is submitted
		// Then the future resolves immediately with context.Canceled
		It("should return canceled when Submit is called after Close", func() {
			s = scheduler.New[string](1)
			s.Close()

			future := s.Submit(func(ctx context.Context) (string, error) {
				return "done", nil
			})

			var result scheduler.Result[string]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})
	})
})
