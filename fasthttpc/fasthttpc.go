// Package fasthttpc adapts the fasthttp engine to the areq Doer seam, for
// callers that want fasthttp performing the blocking requests behind the
// async facade.
package fasthttpc

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/valyala/fasthttp"
)

// Doer performs blocking requests through a fasthttp.Client. The zero value
// is usable and runs on a default client. Like fasthttp itself, Doer performs
// exactly one request per call; redirects come back as responses.
type Doer struct {
	Client *fasthttp.Client
}

// New returns a Doer over the given client. A nil client means a default one.
func New(client *fasthttp.Client) *Doer {
	if client == nil {
		client = &fasthttp.Client{}
	}

	return &Doer{Client: client}
}

// Do translates req into fasthttp terms, performs it, and translates the
// response back. The response body is copied out before fasthttp reclaims its
// buffers, so the returned response stays valid indefinitely.
func (d *Doer) Do(req *http.Request) (*http.Response, error) {
	freq := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(freq)
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(req.URL.String())
	freq.Header.SetMethod(req.Method)

	for key, values := range req.Header {
		for _, value := range values {
			freq.Header.Add(key, value)
		}
	}

	if req.Body != nil && req.Body != http.NoBody {
		size := -1
		if req.ContentLength > 0 {
			size = int(req.ContentLength)
		}
		freq.SetBodyStream(req.Body, size)
	}

	client := d.Client
	if client == nil {
		client = &fasthttp.Client{}
	}

	if err := client.Do(freq, fresp); err != nil {
		return nil, err
	}

	header := make(http.Header)
	fresp.Header.VisitAll(func(key, value []byte) {
		header.Add(string(key), string(value))
	})

	body := append([]byte(nil), fresp.Body()...)
	code := fresp.StatusCode()

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
