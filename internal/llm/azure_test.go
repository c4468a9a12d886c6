package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"questify/internal/tester"
)

func TestAzureCompleteJSONForcesToolCall(t *testing.T) {
	var gotPath, gotKey string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "test_schema", "arguments": "{\"a\":\"ok\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer srv.Close()

	cli := NewAzureClient(AzureConfig{
		APIKey:     "secret",
		APIBase:    srv.URL,
		APIVersion: "2024-06-01",
		Deployment: "gpt-4o",
	})
	raw, err := cli.CompleteJSON(context.Background(), "sys", "hello", testSchema(), 0.3)
	tester.NoErr(t, err)
	tester.Eq(t, string(raw), `{"a":"ok"}`)
	tester.Eq(t, gotPath, "/openai/deployments/gpt-4o/chat/completions?api-version=2024-06-01")
	tester.Eq(t, gotKey, "secret")
	tester.Eq(t, len(gotBody.Tools), 1)
	tester.Eq(t, gotBody.Tools[0].Function.Name, "test_schema")
	tester.Eq(t, gotBody.ToolChoice.Function.Name, "test_schema")
	tester.Eq(t, gotBody.Messages[0].Role, "system")
	tester.Eq(t, gotBody.Temperature, 0.3)
}

func TestAzureCompleteText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"summary text"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	cli := NewAzureClient(AzureConfig{APIKey: "k", APIBase: srv.URL, APIVersion: "v", Deployment: "d"})
	out, err := cli.CompleteText(context.Background(), "", "summarize", 0)
	tester.NoErr(t, err)
	tester.Eq(t, out, "summary text")
}

func TestAzureAuthFailureIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cli := NewAzureClient(AzureConfig{APIKey: "bad", APIBase: srv.URL, APIVersion: "v", Deployment: "d"})
	_, err := cli.CompleteJSON(context.Background(), "", "p", testSchema(), 0)
	tester.Err(t, err)
	tester.True(t, IsPermanent(err), "401 must not be retried")
}

func TestAzureRateLimitIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cli := NewAzureClient(AzureConfig{APIKey: "k", APIBase: srv.URL, APIVersion: "v", Deployment: "d"})
	_, err := cli.CompleteJSON(context.Background(), "", "p", testSchema(), 0)
	tester.Err(t, err)
	tester.False(t, IsPermanent(err))
}
