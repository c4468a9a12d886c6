package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"questify/internal/schema"
)

// AzureConfig configures the Azure OpenAI chat completions client.
type AzureConfig struct {
	APIKey     string
	APIBase    string
	APIVersion string
	Deployment string
	Timeout    time.Duration
}

// AzureClient talks to an Azure OpenAI deployment. Structured output is
// obtained by forcing a function tool call and reading its arguments.
type AzureClient struct {
	client     *http.Client
	apiKey     string
	apiBase    string
	apiVersion string
	deployment string
}

func NewAzureClient(cfg AzureConfig) *AzureClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AzureClient{
		client:     &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		apiVersion: cfg.APIVersion,
		deployment: cfg.Deployment,
	}
}

func (a *AzureClient) Name() string { return "Azure:" + a.deployment }
func (a *AzureClient) Close() error { return nil }

func (a *AzureClient) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	resp, err := a.complete(ctx, chatRequest{
		Messages:    chatMessages(system, prompt),
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrInvalidJSON
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *AzureClient) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	req := chatRequest{
		Messages:    chatMessages(system, prompt),
		Temperature: temperature,
		Tools: []chatTool{{
			Type: "function",
			Function: chatFunction{
				Name:        desc.Name,
				Description: desc.Description,
				Parameters:  desc.Parameters,
			},
		}},
		ToolChoice: &chatToolChoice{
			Type:     "function",
			Function: chatToolChoiceFunction{Name: desc.Name},
		},
	}
	resp, err := a.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrInvalidJSON
	}
	raw := json.RawMessage(resp.Choices[0].Message.ToolCalls[0].Function.Arguments)
	if !json.Valid(raw) {
		return nil, ErrInvalidJSON
	}
	return raw, nil
}

func (a *AzureClient) complete(ctx context.Context, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("azure: marshal request: %w", err)
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		a.apiBase, a.deployment, a.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("azure: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("azure: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("azure: decode response: %w", err)
	}
	return &out, nil
}

func chatMessages(system, prompt string) []chatMessage {
	msgs := make([]chatMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	return append(msgs, chatMessage{Role: "user", Content: prompt})
}

type chatRequest struct {
	Messages    []chatMessage   `json:"messages"`
	Temperature float64         `json:"temperature"`
	Tools       []chatTool      `json:"tools,omitempty"`
	ToolChoice  *chatToolChoice `json:"tool_choice,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type chatToolChoice struct {
	Type     string                 `json:"type"`
	Function chatToolChoiceFunction `json:"function"`
}

type chatToolChoiceFunction struct {
	Name string `json:"name"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				ID       string `json:"id"`
				Type     string `json:"type"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
