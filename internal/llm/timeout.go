package llm

import (
	"context"
	"encoding/json"
	"time"

	"questify/internal/schema"
)

// WithTimeout bounds each provider call. Placed innermost in the chain so
// the bound covers the call itself, not queueing in the rate limiter.
func WithTimeout(d time.Duration) Middleware {
	return func(next Client) Client {
		return &timeoutClient{next: next, d: d}
	}
}

type timeoutClient struct {
	next Client
	d    time.Duration
}

func (c *timeoutClient) Name() string { return c.next.Name() }

func (c *timeoutClient) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.next.CompleteText(ctx, system, prompt, temperature)
}

func (c *timeoutClient) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.next.CompleteJSON(ctx, system, prompt, desc, temperature)
}

func (c *timeoutClient) Close() error { return c.next.Close() }
