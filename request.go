package areq

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// Request is a single-use pending request. Method, URL, query pairs and
// headers accumulate until one send operation, blocking or async, consumes
// it; every later send fails with ErrConsumed. A Request must not be mutated
// once sent: the closure running on the pool owns it from that point.
type Request struct {
	c        *Client
	method   string
	url      string
	query    []FormPair
	header   http.Header
	consumed atomic.Bool
}

// Set sets a header, replacing any existing values for the key.
func (r *Request) Set(key, value string) *Request {
	r.header.Set(key, value)

	return r
}

// Add appends a header value for the key.
func (r *Request) Add(key, value string) *Request {
	r.header.Add(key, value)

	return r
}

// Query appends a query pair. Pairs are encoded in the order added and
// combined with any query already present in the URL.
func (r *Request) Query(key, value string) *Request {
	r.query = append(r.query, FormPair{Name: key, Value: value})

	return r
}

// Call performs the request without a body, blocking the calling goroutine
// until the response arrives. Cooperative callers use CallAsync instead.
func (r *Request) Call() (*Response, error) {
	if err := r.consume(); err != nil {
		return nil, err
	}

	return r.call()
}

// Send performs the request with a streamed body of unknown length, blocking
// the calling goroutine. The HTTP library reads body until EOF.
func (r *Request) Send(body io.Reader) (*Response, error) {
	if err := r.consume(); err != nil {
		return nil, err
	}

	return r.send(body)
}

// SendJSON marshals v with the configured serialization capability, sets
// Content-Type to application/json unless one is set already, and performs
// the request, blocking the calling goroutine.
func (r *Request) SendJSON(v any) (*Response, error) {
	if err := r.consume(); err != nil {
		return nil, err
	}

	return r.sendJSON(v)
}

// SendBytes performs the request with b as its body and an exact
// Content-Length, blocking the calling goroutine.
func (r *Request) SendBytes(b []byte) (*Response, error) {
	if err := r.consume(); err != nil {
		return nil, err
	}

	return r.sendBytes(b)
}

// SendString performs the request with s as its body and an exact
// Content-Length, blocking the calling goroutine.
func (r *Request) SendString(s string) (*Response, error) {
	if err := r.consume(); err != nil {
		return nil, err
	}

	return r.sendString(s)
}

// SendForm encodes the pairs in order as application/x-www-form-urlencoded,
// sets Content-Type unless one is set already, and performs the request,
// blocking the calling goroutine.
func (r *Request) SendForm(form []FormPair) (*Response, error) {
	if err := r.consume(); err != nil {
		return nil, err
	}

	return r.sendForm(form)
}

// Internal methods. The unexported send variants assume the request is
// already consumed; they run on the caller for blocking sends and inside the
// pool closure for async ones.

// consume marks the request sent. Exactly one caller wins.
func (r *Request) consume() error {
	if !r.consumed.CompareAndSwap(false, true) {
		return ErrConsumed
	}

	return nil
}

func (r *Request) call() (*Response, error) {
	return r.perform(nil)
}

func (r *Request) send(body io.Reader) (*Response, error) {
	return r.perform(body)
}

func (r *Request) sendJSON(v any) (*Response, error) {
	if r.c.marshal == nil {
		return nil, ErrNoMarshal
	}

	b, err := r.c.marshal(v)
	if err != nil {
		return nil, err
	}

	r.defaultType("application/json")

	return r.perform(bytes.NewReader(b))
}

func (r *Request) sendBytes(b []byte) (*Response, error) {
	return r.perform(bytes.NewReader(b))
}

func (r *Request) sendString(s string) (*Response, error) {
	return r.perform(strings.NewReader(s))
}

func (r *Request) sendForm(form []FormPair) (*Response, error) {
	r.defaultType("application/x-www-form-urlencoded")

	return r.perform(strings.NewReader(encodeForm(form)))
}

// perform hands the built request to the blocking HTTP library and returns
// its verdict untouched: no retries, no wrapping, no logging.
func (r *Request) perform(body io.Reader) (*Response, error) {
	req, err := r.build(body)
	if err != nil {
		return nil, err
	}

	return r.c.doer.Do(req)
}

// build assembles the final *http.Request. Query pairs are appended to any
// query the URL already carries, preserving order within the appended part.
func (r *Request) build(body io.Reader) (*http.Request, error) {
	target := r.url
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + encodeForm(r.query)
	}

	req, err := http.NewRequest(r.method, target, body)
	if err != nil {
		return nil, err
	}

	if len(r.header) > 0 {
		req.Header = r.header
	}

	return req, nil
}

// defaultType sets Content-Type unless the caller set one.
func (r *Request) defaultType(value string) {
	if r.header.Get("Content-Type") == "" {
		r.header.Set("Content-Type", value)
	}
}
