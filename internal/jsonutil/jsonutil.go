package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into
// \u003c, \u003e, \u0026.
// LDAP filter strings are full of angle brackets, so the default encoder output
// is unreadable in saved artifacts.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalNoEscapeIndent encodes v with indentation but without HTML escaping.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	b, err := MarshalNoEscape(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// UnescapeUnicodeString converts JSON unicode escapes like \u003e into the
// actual characters. Handles double-escaped sequences like \\u003e.
func UnescapeUnicodeString(s string) (string, error) {
	esc := strings.ReplaceAll(s, `\`, `\\`)
	esc = strings.ReplaceAll(esc, `"`, `\"`)
	var out string
	if err := json.Unmarshal([]byte(`"`+esc+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}

// UnmarshalFlex unmarshals raw into v with best effort: a direct unmarshal
// first, then a pass that strips markdown code fences and unwraps a payload
// that arrived as a quoted JSON string. Model output is not always clean.
func UnmarshalFlex(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	norm := StripFences(raw)
	if err := json.Unmarshal(norm, v); err == nil {
		return nil
	}
	// The whole payload may be a JSON-encoded string of JSON.
	var s string
	if err := json.Unmarshal(norm, &s); err == nil {
		return json.Unmarshal([]byte(s), v)
	}
	return json.Unmarshal(norm, v)
}

// UnmarshalRaw accepts json.RawMessage directly.
func UnmarshalRaw(raw json.RawMessage, v any) error {
	return UnmarshalFlex([]byte(raw), v)
}

// StripFences removes a surrounding markdown code fence (``` or ```json)
// if present, returning the inner bytes unchanged otherwise.
func StripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}
