package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"questify/internal/schema"
)

// WithCache memoizes structured completions issued at temperature zero.
// Calls above zero are sampled on purpose, so they bypass the cache.
func WithCache(size int) Middleware {
	if size <= 0 {
		size = 128
	}
	return func(next Client) Client {
		// lru.New only fails on a non-positive size.
		c, err := lru.New[string, json.RawMessage](size)
		if err != nil {
			return next
		}
		return &cached{next: next, lru: c}
	}
}

type cached struct {
	next Client
	lru  *lru.Cache[string, json.RawMessage]
}

func (c *cached) Name() string { return c.next.Name() }
func (c *cached) Close() error { return c.next.Close() }

func (c *cached) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	return c.next.CompleteText(ctx, system, prompt, temperature)
}

func (c *cached) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	if temperature != 0 {
		return c.next.CompleteJSON(ctx, system, prompt, desc, temperature)
	}
	// The rendered schema is part of the key so a schema revision never
	// serves entries produced under the old shape.
	key := cacheKey(c.next.Name(), system, prompt, desc.Name, desc.JSON())
	if raw, ok := c.lru.Get(key); ok {
		return raw, nil
	}
	raw, err := c.next.CompleteJSON(ctx, system, prompt, desc, temperature)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, raw)
	return raw, nil
}

func cacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
