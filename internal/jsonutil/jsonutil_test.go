package jsonutil

import (
	"testing"

	"questify/internal/tester"
)

func TestMarshalNoEscapeKeepsAngleBrackets(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"q": "(&(objectClass=user)(lockoutTime>=1))"})
	tester.NoErr(t, err)
	tester.Eq(t, string(b), `{"q":"(&(objectClass=user)(lockoutTime>=1))"}`)
}

func TestStripFences(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	tester.Eq(t, string(StripFences([]byte(in))), `{"a":1}`)
	tester.Eq(t, string(StripFences([]byte(`{"a":1}`))), `{"a":1}`)
}

func TestUnmarshalFlexQuotedPayload(t *testing.T) {
	var got map[string]int
	err := UnmarshalFlex([]byte(`"{\"a\": 2}"`), &got)
	tester.NoErr(t, err)
	tester.Eq(t, got["a"], 2)
}

func TestUnescapeUnicodeString(t *testing.T) {
	s, err := UnescapeUnicodeString(`a \u003e b`)
	tester.NoErr(t, err)
	tester.Eq(t, s, "a > b")
}
