package llm

import (
	"context"
	"encoding/json"
	"fmt"

	genai "google.golang.org/genai"

	"questify/internal/jsonutil"
	"questify/internal/schema"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: systemContent(system),
			Temperature:       genai.Ptr(float32(temperature)),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrInvalidJSON
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// CompleteJSON asks for application/json output shaped by the descriptor.
// The descriptor is rendered into the prompt so the model sees the exact
// parameter schema it must satisfy.
func (g *GeminiClient) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	full := prompt + "\n\nAnswer with a single JSON object matching this schema (" + desc.Name + "):\n" + desc.JSON()
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: systemContent(system),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr(float32(temperature)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrInvalidJSON
	}
	raw := jsonutil.StripFences([]byte(resp.Candidates[0].Content.Parts[0].Text))
	if !json.Valid(raw) {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(raw), nil
}

func systemContent(system string) *genai.Content {
	if system == "" {
		return nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: system}}}
}
