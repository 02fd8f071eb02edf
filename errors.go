package areq

import (
	"errors"
	"fmt"
)

var (
	// ErrConsumed indicates a single-use request was sent more than once.
	ErrConsumed = errors.New("request already sent")

	// ErrExecutor indicates the worker pool could not run the request closure.
	// Errors carrying it are execution failures, never HTTP outcomes; the cause
	// reported by the pool is wrapped alongside it.
	ErrExecutor = errors.New("executor rejected request")

	// ErrNoMarshal indicates a JSON send was attempted without a serialization
	// capability configured.
	ErrNoMarshal = errors.New("no marshal capability configured")
)

// PanicError carries a panic raised inside a pool-executed closure. Await
// re-raises it on the awaiting goroutine so the abort terminates the awaiter
// instead of masquerading as a request error.
type PanicError struct {
	Value any    // recovered panic value
	Stack []byte // worker stack captured at the point of the panic
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("request closure panicked: %v", e.Value)
}
