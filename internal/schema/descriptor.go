// Package schema declares the structured-output contracts the capability
// provider is asked to fill. A Descriptor is a named, versionless
// JSON-Schema-like structure; providers embed it into the request (Gemini) or
// hand it to the tool-calling API (Azure OpenAI).
package schema

import "encoding/json"

// Descriptor names one structured output shape.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// JSON renders the parameter schema for embedding into a prompt.
func (d Descriptor) JSON() string {
	b, err := json.MarshalIndent(d.Parameters, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Schema construction helpers. They keep the per-call declarations below
// readable; nothing else should build raw schema maps by hand.

func Object(description string, props map[string]any, required ...string) map[string]any {
	m := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if description != "" {
		m["description"] = description
	}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

func Str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func StrEnum(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func Bool(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func Number(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func Integer(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func Array(description string, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "description": description, "items": items}
}

func MapOf(description string, values map[string]any) map[string]any {
	return map[string]any{"type": "object", "description": description, "additionalProperties": values}
}

func Nullable(inner map[string]any) map[string]any {
	out := make(map[string]any, len(inner)+1)
	for k, v := range inner {
		out[k] = v
	}
	if t, ok := out["type"]; ok {
		out["type"] = []any{t, "null"}
	}
	return out
}
