package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"questify/internal/schema"
)

// FakeClient returns scripted responses for offline tests. JSON responses
// are keyed by schema name and consumed in order; text responses are
// consumed from a single queue.
type FakeClient struct {
	mu    sync.Mutex
	json  map[string][]json.RawMessage
	text  []string
	err   error
	Calls []FakeCall
}

// FakeCall records one completion request.
type FakeCall struct {
	Schema      string
	Prompt      string
	Temperature float64
}

func NewFakeClient() *FakeClient {
	return &FakeClient{json: make(map[string][]json.RawMessage)}
}

// ScriptJSON queues a structured response for the named schema. Marshaling
// failures panic; the fake is test-only.
func (f *FakeClient) ScriptJSON(schemaName string, v any) *FakeClient {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return f.ScriptRawJSON(schemaName, b)
}

// ScriptRawJSON queues raw bytes for the named schema.
func (f *FakeClient) ScriptRawJSON(schemaName string, raw []byte) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.json[schemaName] = append(f.json[schemaName], json.RawMessage(raw))
	return f
}

// ScriptText queues a free-text response.
func (f *FakeClient) ScriptText(s string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = append(f.text, s)
	return f
}

// Fail makes every subsequent call return err.
func (f *FakeClient) Fail(err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, FakeCall{Prompt: prompt, Temperature: temperature})
	if f.err != nil {
		return "", f.err
	}
	if len(f.text) == 0 {
		return "", fmt.Errorf("fake: no text response scripted")
	}
	out := f.text[0]
	f.text = f.text[1:]
	return out, nil
}

func (f *FakeClient) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, FakeCall{Schema: desc.Name, Prompt: prompt, Temperature: temperature})
	if f.err != nil {
		return nil, f.err
	}
	queue := f.json[desc.Name]
	if len(queue) == 0 {
		return nil, fmt.Errorf("fake: no response scripted for schema %q", desc.Name)
	}
	out := queue[0]
	f.json[desc.Name] = queue[1:]
	return out, nil
}

// CallCount returns how many requests hit the fake for the given schema
// name; the empty name counts text requests.
func (f *FakeClient) CallCount(schemaName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c.Schema == schemaName {
			n++
		}
	}
	return n
}
