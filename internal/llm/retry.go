package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"questify/internal/schema"
)

// Retry retries failed completions up to maxAttempts with exponential
// backoff starting at baseDelay. Permanent errors and context
// cancellation stop the loop immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Client) Client {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Client
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	var out string
	err := r.attempt(ctx, func() error {
		var err error
		out, err = r.next.CompleteText(ctx, system, prompt, temperature)
		return err
	})
	return out, err
}

func (r *retrying) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.attempt(ctx, func() error {
		var err error
		out, err = r.next.CompleteJSON(ctx, system, prompt, desc, temperature)
		return err
	})
	return out, err
}

func (r *retrying) attempt(ctx context.Context, call func() error) error {
	var last error
	for i := 0; i < r.max; i++ {
		err := call()
		if err == nil {
			return nil
		}
		last = err
		// A payload that failed to parse means the prompt and schema are
		// out of step; repeating the request will not fix that.
		if IsPermanent(err) || errors.Is(err, ErrInvalidJSON) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.base * time.Duration(1<<i)):
		}
	}
	return last
}
