// Package main provides an example of using the areq library.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrei-cloud/areq"
)

// startServer runs a small HTTP server the example talks to. It echoes POST
// bodies back and reports form submissions.
func startServer(addr string) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}
		_, _ = w.Write(body)
	})
	mux.HandleFunc("/form", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}
		fmt.Fprintf(w, "form with %d fields", len(r.PostForm))
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server failed: %v", err)
		}
	}()

	return srv, nil
}

// newClient configures an areq client with a console logger.
func newClient() (*areq.Client, error) {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	return areq.New(&areq.Config{
		PoolSize: 8,
		Logger:   &areq.ZeroLogger{L: zl},
		Marshal:  json.Marshal,
	})
}

// dispatch fires a batch of async requests and returns their futures without
// waiting for any of them.
func dispatch(client *areq.Client, base string) []*areq.Future {
	futures := []*areq.Future{
		client.Post(base+"/echo").SendStringAsync("hello"),
		client.Post(base+"/echo").SendBytesAsync([]byte("world")),
		client.Post(base+"/echo").SendJSONAsync(map[string]string{"greeting": "hello"}),
		client.Post(base+"/form").SendFormAsync(areq.Pairs("a", "1", "b", "2")),
	}

	// A streamed body: the producer goroutine keeps feeding chunks while the
	// main goroutine goes on to await.
	src := make(chan areq.Chunk)
	go func() {
		defer close(src)
		for _, part := range []string{"str", "eam", "ed"} {
			src <- areq.Chunk{Data: []byte(part)}
		}
	}()
	futures = append(futures, client.Post(base+"/echo").SendAsync(src))

	return futures
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	addr := "localhost:3000"

	srv, err := startServer(addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("error stopping server: %v", err)
		}
	}()

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	// Show that dispatching does not block: a counter keeps ticking on this
	// goroutine between submit and await.
	var ticks atomic.Int64
	stop := make(chan struct{})
	go func() {
		t := time.NewTicker(time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				ticks.Add(1)
			}
		}
	}()

	futures := dispatch(client, "http://"+addr)
	log.Printf("client launched %d requests.", len(futures))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	responses, err := areq.AwaitAll(ctx, futures...)
	if err != nil {
		log.Printf("await failed: %v", err)

		return
	}

	for i, resp := range responses {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Printf("reading response %d: %v", i, err)

			continue
		}
		resp.Body.Close()
		log.Printf("response %d: %d %q", i, resp.StatusCode, body)
	}

	close(stop)
	log.Printf("client finished; ticked %d times while requests ran.", ticks.Load())
}
