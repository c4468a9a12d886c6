// Package llm abstracts the chat completion providers behind a small
// client interface with composable middleware.
package llm

import (
	"context"
	"encoding/json"

	"questify/internal/schema"
)

// Client is the provider-agnostic surface the pipeline talks to.
// CompleteJSON forces the model to answer with arguments matching the
// given schema descriptor and returns the raw argument bytes.
type Client interface {
	Name() string
	CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error)
	CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error)
	Close() error
}

// Middleware decorates a Client to inject cross-cutting concerns
// (rate limiting, retries, logging, caching).
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}
