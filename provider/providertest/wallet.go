// Package providertest provides a scripted in-memory wallet for tests.
package providertest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"charm-mint-tui/provider"
)

// HandlerFunc answers one request. The returned value is marshalled to JSON.
type HandlerFunc func(params []any) (any, error)

// Call is a recorded request.
type Call struct {
	Method string
	Params []any
}

// Wallet is a provider.Provider whose answers are scripted per method.
// Methods without a handler fail with CodeUnsupportedMethod.
type Wallet struct {
	mu       sync.Mutex
	handlers map[string]HandlerFunc
	calls    []Call
}

// New returns an empty wallet.
func New() *Wallet {
	return &Wallet{handlers: make(map[string]HandlerFunc)}
}

// Handle installs fn for method, replacing any previous handler.
func (w *Wallet) Handle(method string, fn HandlerFunc) *Wallet {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[method] = fn
	return w
}

// Return makes method always answer with v.
func (w *Wallet) Return(method string, v any) *Wallet {
	return w.Handle(method, func([]any) (any, error) { return v, nil })
}

// Fail makes method always fail with the given wallet error code.
func (w *Wallet) Fail(method string, code int, message string) *Wallet {
	return w.Handle(method, func([]any) (any, error) {
		return nil, &provider.Error{Code: code, Message: message}
	})
}

// Request implements provider.Provider.
func (w *Wallet) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.calls = append(w.calls, Call{Method: method, Params: params})
	fn, ok := w.handlers[method]
	w.mu.Unlock()

	if !ok {
		return nil, &provider.Error{
			Code:    provider.CodeUnsupportedMethod,
			Message: fmt.Sprintf("method %s not supported", method),
		}
	}
	v, err := fn(params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Calls returns the recorded requests for method, or all of them when method is empty.
func (w *Wallet) Calls(method string) []Call {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Call
	for _, c := range w.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times method was requested.
func (w *Wallet) Count(method string) int {
	return len(w.Calls(method))
}
