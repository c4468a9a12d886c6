package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"questify/internal/schema"
	"questify/internal/tester"
)

func testSchema() schema.Descriptor {
	return schema.Descriptor{
		Name:       "test_schema",
		Parameters: schema.Object("", map[string]any{"a": schema.Str("")}, "a"),
	}
}

func TestRateLimitSpacing(t *testing.T) {
	// rps=2, burst=1: the second call should wait roughly 500ms.
	inner := NewFakeClient().
		ScriptJSON("test_schema", map[string]any{"a": "1"}).
		ScriptJSON("test_schema", map[string]any{"a": "2"})
	cli := Wrap(inner, RateLimit(2, 1))
	t.Cleanup(func() { _ = cli.Close() })

	ctx := context.Background()
	start := time.Now()
	_, err := cli.CompleteJSON(ctx, "", "p", testSchema(), 0.2)
	tester.NoErr(t, err)
	_, err = cli.CompleteJSON(ctx, "", "p", testSchema(), 0.2)
	tester.NoErr(t, err)
	elapsed := time.Since(start)
	tester.True(t, elapsed >= 400*time.Millisecond, "expected the limiter to delay the second call")
}

func TestRateLimitHonorsContextCancel(t *testing.T) {
	inner := NewFakeClient().ScriptJSON("test_schema", map[string]any{"a": "1"})
	cli := Wrap(inner, RateLimit(0.1, 1))
	t.Cleanup(func() { _ = cli.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := cli.CompleteJSON(ctx, "", "p", testSchema(), 0)
	tester.NoErr(t, err, "first call consumes the burst token")
	_, err = cli.CompleteJSON(ctx, "", "p", testSchema(), 0)
	tester.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRetryRecoversFromTransientError(t *testing.T) {
	calls := 0
	inner := &funcClient{json: func() error {
		calls++
		if calls < 3 {
			return &ProviderError{Kind: KindRateLimited, Status: 429, Message: "slow down"}
		}
		return nil
	}}
	cli := Wrap(inner, Retry(5, time.Millisecond))
	_, err := cli.CompleteJSON(context.Background(), "", "p", testSchema(), 0)
	tester.NoErr(t, err)
	tester.Eq(t, calls, 3)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	inner := &funcClient{json: func() error {
		calls++
		return NewPermanentError(&ProviderError{Kind: KindAuthFailed, Status: 401, Message: "bad key"})
	}}
	cli := Wrap(inner, Retry(5, time.Millisecond))
	_, err := cli.CompleteJSON(context.Background(), "", "p", testSchema(), 0)
	tester.Err(t, err)
	tester.Eq(t, calls, 1, "permanent errors must not be retried")
	tester.True(t, IsPermanent(err))
}

func TestRetryDoesNotRepeatMalformedPayloads(t *testing.T) {
	calls := 0
	inner := &funcClient{json: func() error {
		calls++
		return ErrInvalidJSON
	}}
	cli := Wrap(inner, Retry(5, time.Millisecond))
	_, err := cli.CompleteJSON(context.Background(), "", "p", testSchema(), 0)
	tester.True(t, errors.Is(err, ErrInvalidJSON))
	tester.Eq(t, calls, 1, "schema mismatches must not be retried")
}

func TestCacheHitsOnlyAtTemperatureZero(t *testing.T) {
	inner := NewFakeClient().
		ScriptJSON("test_schema", map[string]any{"a": "cold"}).
		ScriptJSON("test_schema", map[string]any{"a": "warm1"}).
		ScriptJSON("test_schema", map[string]any{"a": "warm2"})
	cli := Wrap(inner, WithCache(8))

	ctx := context.Background()
	r1, err := cli.CompleteJSON(ctx, "s", "p", testSchema(), 0)
	tester.NoErr(t, err)
	r2, err := cli.CompleteJSON(ctx, "s", "p", testSchema(), 0)
	tester.NoErr(t, err)
	tester.Eq(t, string(r1), string(r2), "temperature 0 repeats must come from cache")
	tester.Eq(t, inner.CallCount("test_schema"), 1)

	_, err = cli.CompleteJSON(ctx, "s", "p", testSchema(), 0.2)
	tester.NoErr(t, err)
	_, err = cli.CompleteJSON(ctx, "s", "p", testSchema(), 0.2)
	tester.NoErr(t, err)
	tester.Eq(t, inner.CallCount("test_schema"), 3, "sampled calls bypass the cache")
}

func TestCacheKeyCoversSchemaShape(t *testing.T) {
	inner := NewFakeClient().
		ScriptJSON("test_schema", map[string]any{"a": "first"}).
		ScriptJSON("test_schema", map[string]any{"a": "second"})
	cli := Wrap(inner, WithCache(8))

	ctx := context.Background()
	_, err := cli.CompleteJSON(ctx, "s", "p", testSchema(), 0)
	tester.NoErr(t, err)

	revised := schema.Descriptor{
		Name:       "test_schema",
		Parameters: schema.Object("", map[string]any{"b": schema.Str("")}, "b"),
	}
	_, err = cli.CompleteJSON(ctx, "s", "p", revised, 0)
	tester.NoErr(t, err)
	tester.Eq(t, inner.CallCount("test_schema"), 2, "a revised schema must miss the cache")
}

func TestClassifyStatus(t *testing.T) {
	tester.True(t, IsPermanent(classifyStatus(401, "no")))
	tester.True(t, IsPermanent(classifyStatus(404, "gone")))
	tester.False(t, IsPermanent(classifyStatus(429, "later")))
	tester.False(t, IsPermanent(classifyStatus(500, "oops")))
}

// funcClient drives the JSON path through an injected func.
type funcClient struct {
	json func() error
}

func (f *funcClient) Name() string { return "func" }
func (f *funcClient) Close() error { return nil }
func (f *funcClient) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	return "", nil
}
func (f *funcClient) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	if err := f.json(); err != nil {
		return nil, err
	}
	return json.RawMessage(`{"a":"ok"}`), nil
}
