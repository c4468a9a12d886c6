// Package preprocess prepares a Quest XML template for the pipeline:
// decoding the file, substituting event class ids with readable names
// and extracting a free-text description.
package preprocess

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"questify/internal/knowledge"
	"questify/internal/llm"
)

// ReadTemplate reads a template file as text. Quest exports templates as
// UTF-16; a BOM selects the decoder, otherwise the bytes are assumed to
// be UTF-8 already.
func ReadTemplate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("preprocess: read %s: %w", path, err)
	}
	return DecodeTemplate(raw)
}

// DecodeTemplate converts raw template bytes to a string, honoring a
// UTF-16 byte order mark.
func DecodeTemplate(raw []byte) (string, error) {
	if len(raw) >= 2 && ((raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF)) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), dec))
		if err != nil {
			return "", fmt.Errorf("preprocess: decode utf-16: %w", err)
		}
		return string(out), nil
	}
	return string(raw), nil
}

// Prepared is the preprocessing result for one template.
type Prepared struct {
	// Text is the template with event class ids replaced by names.
	Text string
	// Events are the event names found during substitution.
	Events []string
	// Extracted is the model's free-text description of the template.
	Extracted string
}

// Extractor runs the preprocessing steps that need the knowledge base
// and one free-text completion.
type Extractor struct {
	Client llm.Client
	KB     *knowledge.Base
}

func NewExtractor(client llm.Client, kb *knowledge.Base) *Extractor {
	return &Extractor{Client: client, KB: kb}
}

// Prepare substitutes event ids and summarizes the template.
func (e *Extractor) Prepare(ctx context.Context, templateText string) (*Prepared, error) {
	text, events := e.KB.ReplaceEventIDs(templateText)
	extracted, err := e.summarize(ctx, text, events)
	if err != nil {
		return nil, err
	}
	return &Prepared{Text: text, Events: events, Extracted: extracted}, nil
}

func (e *Extractor) summarize(ctx context.Context, text string, events []string) (string, error) {
	prompt := fmt.Sprintf(`Here's an XML report template content:
<xml report template>
%s
</xml report template>

I think that it includes the following events:
%s

Please tell me, in an elaborate way, what is the report about:
- which environment/scope does it search in?
- Which events are included in the report?
- Is there a daterange?
- Other filtering parameters?
- What information is displayed about the result? Which object fields?
- Any other relevant information that you can extract from the XML content.

Your summary will be used as a replacement for the report- so it should be inclusive, exhaustive and elaborate.
Start your answer with "# Report Overview and Extracted Data".`,
		text, strings.Join(events, ", "))

	out, err := e.Client.CompleteText(ctx,
		"You are a helpful assistant, expert at report understanding and data & insights extraction.",
		prompt, 0)
	if err != nil {
		return "", fmt.Errorf("preprocess: summarize: %w", err)
	}
	return out, nil
}
