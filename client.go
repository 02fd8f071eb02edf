package areq

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// Response is the blocking HTTP library's response. Futures resolve to it
// untouched; in particular the status code is data, not an error, whatever it
// is. Callers coming from status-as-error clients check StatusCode themselves.
type Response = http.Response

// Doer is the blocking entry point of the underlying HTTP library. The
// standard *http.Client satisfies Doer, as does fasthttpc.Doer. Everything
// behind it, redirects, TLS, proxies, timeouts, belongs to the implementation
// and is passed through untouched.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MarshalFunc is the serialization capability behind SendJSON and
// SendJSONAsync.
type MarshalFunc func(v any) ([]byte, error)

// Config contains configuration options for a client.
type Config struct {
	// PoolSize caps concurrently running blocking calls when the client owns
	// its worker pool. Zero or negative means unbounded. Default is unbounded.
	PoolSize int
	// HTTPClient performs the blocking requests. Default is a plain
	// *http.Client.
	HTTPClient Doer
	// Pool runs the submitted closures. When nil the client creates and owns
	// a pool sized by PoolSize; a caller-supplied pool is shared property and
	// is never closed by the client.
	Pool Pool
	// Logger receives lifecycle and executor events. Default is NoopLogger.
	Logger Logger
	// Marshal backs SendJSON and SendJSONAsync. DefaultConfig wires
	// encoding/json; leaving it nil in a hand-built Config disables the JSON
	// operations, which then fail with ErrNoMarshal.
	Marshal MarshalFunc
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTPClient: &http.Client{},
		Logger:     &NoopLogger{},
		Marshal:    json.Marshal,
	}
}

// applyDefaults fills the ambient fields a caller left unset. Marshal stays as
// given: an unset capability is a choice, not an omission.
func (c *Config) applyDefaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Logger == nil {
		c.Logger = &NoopLogger{}
	}
}

// Client builds single-use requests and bridges their blocking execution onto
// a worker pool. All methods are safe for concurrent use.
type Client struct {
	doer    Doer
	pool    Pool
	owned   *ants.Pool // pool created here; released on Close
	logger  Logger
	marshal MarshalFunc
	closed  atomic.Bool
}

// New creates a new client. A nil config means DefaultConfig.
func New(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	cfg.applyDefaults()

	c := &Client{
		doer:    cfg.HTTPClient,
		pool:    cfg.Pool,
		logger:  cfg.Logger,
		marshal: cfg.Marshal,
	}

	if c.pool == nil {
		p, err := NewWorkerPool(cfg.PoolSize, cfg.Logger)
		if err != nil {
			return nil, err
		}
		c.owned = p
		c.pool = p
		c.logger.Infof("Client worker pool ready, capacity %d.", p.Cap())
	}

	return c, nil
}

// NewRequest creates a single-use pending request for the given method and
// URL. The URL is handed to the HTTP library as-is when the request runs;
// malformed URLs surface there, as that library's error.
func (c *Client) NewRequest(method, url string) *Request {
	return &Request{
		c:      c,
		method: method,
		url:    url,
		header: make(http.Header),
	}
}

// Get creates a GET request.
func (c *Client) Get(url string) *Request { return c.NewRequest(http.MethodGet, url) }

// Post creates a POST request.
func (c *Client) Post(url string) *Request { return c.NewRequest(http.MethodPost, url) }

// Put creates a PUT request.
func (c *Client) Put(url string) *Request { return c.NewRequest(http.MethodPut, url) }

// Delete creates a DELETE request.
func (c *Client) Delete(url string) *Request { return c.NewRequest(http.MethodDelete, url) }

// Head creates a HEAD request.
func (c *Client) Head(url string) *Request { return c.NewRequest(http.MethodHead, url) }

// Close releases the client-owned worker pool. Closures already running
// finish and their futures resolve; later submissions fail with ErrExecutor.
// A caller-supplied pool is left untouched.
func (c *Client) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if c.owned != nil {
		c.owned.Release()
	}
	c.logger.Print("Client closed.")
}
