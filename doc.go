// Package areq bridges blocking HTTP calls into cooperative callers:
// goroutines that must stay responsive submit the blocking call to a worker
// pool and receive a future that resolves once the response arrives, without
// the caller ever blocking on the network.
//
// Features:
//   - Single-use requests: Get, Post and friends build a pending request
//     whose query pairs, headers and payload travel into the pool closure;
//     sending twice fails with ErrConsumed.
//   - Async facade: CallAsync, SendAsync, SendJSONAsync, SendBytesAsync,
//     SendStringAsync and SendFormAsync submit the blocking call and return
//     a *Future immediately.
//   - Futures: Await, AwaitContext and Done integrate with selects and
//     contexts; AwaitAll fans in a batch of requests.
//   - Streamed bodies: SendAsync adapts a chunk channel into the blocking
//     reader the HTTP library expects, entirely on the worker goroutine.
//   - Pluggable engine and pool: any Doer carries the requests (net/http by
//     default, fasthttpc for the fasthttp engine) and any Pool runs them
//     (an ants pool by default, shareable via NewWorkerPool).
//
// Basic Example:
//
//	client, err := areq.New(nil)
//	if err != nil {
//	    // handle error
//	}
//	defer client.Close()
//
//	fut := client.Get("http://localhost:9000/things").
//	    Set("Accept", "application/json").
//	    CallAsync()
//	// ... keep scheduling other work ...
//	resp, err := fut.Await()
//	if err != nil {
//	    // the HTTP library's own error, verbatim
//	}
//	defer resp.Body.Close()
//
// Streamed Body Example:
//
//	src := make(chan areq.Chunk)
//	go func() {
//	    defer close(src)
//	    src <- areq.Chunk{Data: []byte("abc")}
//	    src <- areq.Chunk{Data: []byte("def")}
//	}()
//	resp, err := client.Post("http://localhost:9000/upload").SendAsync(src).Await()
//
// The producing goroutine above must stay alive while the future is awaited:
// closing a worker's read over src is the only thing that lets the request
// finish, so feeding src and awaiting from one goroutine deadlocks unless the
// channel buffers every chunk and is closed before the await.
//
// Errors come in two classes. Request-level failures are whatever the HTTP
// library returned, passed through verbatim, never retried, rewrapped or
// logged. Executor failures, a released or saturated pool, wrap ErrExecutor
// and are recognizable with errors.Is; a panic inside the pool closure
// re-raises on the awaiting goroutine as a *PanicError. Note that like the
// underlying net/http, a 4xx or 5xx status is a successful request, not an
// error.
package areq
