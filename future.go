package areq

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future is the awaitable handle of one submitted request. It resolves
// exactly once; awaiting is repeatable and dropping the future without
// awaiting is safe, the worker never blocks on an absent awaiter.
type Future struct {
	done  chan struct{}
	resp  *Response
	err   error
	abort *PanicError
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve publishes the outcome and wakes every awaiter. Fields are written
// before done closes, which is all the synchronization awaiters need.
func (f *Future) resolve(resp *Response, err error) {
	f.resp = resp
	f.err = err
	close(f.done)
}

// aborted records a worker panic for re-raising in the awaiter.
func (f *Future) aborted(p *PanicError) {
	f.abort = p
	close(f.done)
}

// Done returns a channel that closes once the future resolves, for use in
// select loops. After Done closes, Await returns without blocking.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the request completes and returns the HTTP library's
// verdict untouched. If the pool closure panicked, Await panics with the
// *PanicError carrying the worker stack: an abort stays an abort.
func (f *Future) Await() (*Response, error) {
	<-f.done

	return f.outcome()
}

// AwaitContext waits like Await but abandons the wait when ctx is done. The
// in-flight request keeps running to completion either way; a later Await
// observes its outcome.
func (f *Future) AwaitContext(ctx context.Context) (*Response, error) {
	select {
	case <-f.done:
		return f.outcome()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *Future) outcome() (*Response, error) {
	if f.abort != nil {
		panic(f.abort)
	}

	return f.resp, f.err
}

// AwaitAll waits for every future and returns the responses in argument
// order. The first error wins; the remaining waits are abandoned while their
// requests run to completion in the background. A worker abort re-raises on
// the calling goroutine once the waits settle, like Await.
func AwaitAll(ctx context.Context, futures ...*Future) ([]*Response, error) {
	responses := make([]*Response, len(futures))
	aborts := make([]*PanicError, len(futures))
	eg, ctx := errgroup.WithContext(ctx)

	for i, f := range futures {
		// go.mod targets go 1.21, whose range variables are shared across
		// iterations; the copies keep the per-iteration capture below.
		i, f := i, f
		eg.Go(func() (err error) {
			// An abort re-raised by AwaitContext panics inside a goroutine
			// the group owns, where no recover of the caller can reach it.
			// Contain it; the caller goroutine re-raises after Wait.
			defer func() {
				if p, ok := recover().(*PanicError); ok {
					aborts[i] = p
					err = p
				}
			}()

			resp, err := f.AwaitContext(ctx)
			if err != nil {
				return err
			}
			responses[i] = resp

			return nil
		})
	}

	err := eg.Wait()
	for _, p := range aborts {
		if p != nil {
			panic(p)
		}
	}
	if err != nil {
		return nil, err
	}

	return responses, nil
}
