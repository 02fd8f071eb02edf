package areq

import (
	"fmt"
	"runtime/debug"
)

// CallAsync submits the request without a body and immediately returns a
// future for the eventual response. The blocking call runs on a pool worker;
// the calling goroutine never waits.
func (r *Request) CallAsync() *Future {
	return r.submit(func() (*Response, error) {
		return r.call()
	})
}

// SendAsync streams the chunk source as the request body. The source is
// wrapped into a blocking reader inside the pool closure, so chunks reach the
// HTTP library in source order while only the worker ever blocks on them.
//
// The source must be fed by a goroutine that keeps running while the future
// is awaited. Feeding src and awaiting the future from the same goroutine
// deadlocks both sides unless every chunk fits the channel buffer and src is
// closed before the await.
func (r *Request) SendAsync(src <-chan Chunk) *Future {
	return r.submit(func() (*Response, error) {
		return r.send(newChunkReader(src))
	})
}

// SendJSONAsync submits the request with v as its JSON body. Marshaling runs
// inside the pool closure with the configured serialization capability; a
// marshal failure resolves the future with that error untouched. v is owned
// by the call from submission until the future resolves.
func (r *Request) SendJSONAsync(v any) *Future {
	return r.submit(func() (*Response, error) {
		return r.sendJSON(v)
	})
}

// SendBytesAsync submits the request with b as its body. The slice is owned
// by the call from submission until the future resolves.
func (r *Request) SendBytesAsync(b []byte) *Future {
	return r.submit(func() (*Response, error) {
		return r.sendBytes(b)
	})
}

// SendStringAsync submits the request with s as its body.
func (r *Request) SendStringAsync(s string) *Future {
	return r.submit(func() (*Response, error) {
		return r.sendString(s)
	})
}

// SendFormAsync submits the request with the pairs as its form body. Encoding
// runs inside the pool closure, in pair order, byte for byte what the
// blocking SendForm produces.
func (r *Request) SendFormAsync(form []FormPair) *Future {
	return r.submit(func() (*Response, error) {
		return r.sendForm(form)
	})
}

// submit consumes the request and hands op to the worker pool. The returned
// future is already resolved when the request was consumed earlier or when
// the pool rejects the closure; a rejection resolves to an error wrapping
// ErrExecutor, never to a fabricated HTTP outcome.
func (r *Request) submit(op func() (*Response, error)) *Future {
	f := newFuture()

	if err := r.consume(); err != nil {
		f.resolve(nil, err)

		return f
	}

	c := r.c
	err := c.pool.Submit(func() {
		defer func() {
			if v := recover(); v != nil {
				f.aborted(&PanicError{Value: v, Stack: debug.Stack()})
			}
		}()

		resp, opErr := op()
		f.resolve(resp, opErr)
	})
	if err != nil {
		c.logger.Warnf("Worker pool rejected request: %v.", err)
		f.resolve(nil, fmt.Errorf("%w: %w", ErrExecutor, err))
	}

	return f
}
