// Package areq_test provides tests for the areq package.
//
//nolint:all
package areq_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// recorded captures what the test server observed for one request.
type recorded struct {
	method string
	path   string
	query  string
	length int64
	header http.Header
	body   []byte
}

// startRecordServer runs a local HTTP server that records every request it
// serves and echoes the request body back.
func startRecordServer(t *testing.T) (*httptest.Server, <-chan recorded) {
	t.Helper()

	rec := make(chan recorded, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		rec <- recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			length: r.ContentLength,
			header: r.Header.Clone(),
			body:   body,
		}

		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

// waitRecorded receives one recorded request or fails the test. It prevents
// tests from hanging when the request never reaches the server.
func waitRecorded(t *testing.T, rec <-chan recorded) recorded {
	t.Helper()

	select {
	case r := <-rec:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the server to observe a request")

		return recorded{}
	}
}

// deadServerURL returns a URL nothing listens on anymore, for provoking the
// HTTP library's own connection errors.
func deadServerURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	return url
}

// recordLogger captures log lines by level for assertions.
type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) log(level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, v...))
}

func (l *recordLogger) Print(v ...any)                 { l.log("info", "%s", fmt.Sprint(v...)) }
func (l *recordLogger) Printf(format string, v ...any) { l.log("info", format, v...) }
func (l *recordLogger) Infof(format string, v ...any)  { l.log("info", format, v...) }
func (l *recordLogger) Warnf(format string, v ...any)  { l.log("warn", format, v...) }
func (l *recordLogger) Errorf(format string, v ...any) { l.log("error", format, v...) }

// all returns a copy of the captured lines.
func (l *recordLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.lines...)
}
