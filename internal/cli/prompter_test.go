package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"questify/internal/likelihood"
	"questify/internal/report"
	"questify/internal/tester"
)

func TestRemoveByNumbers(t *testing.T) {
	files := []string{"a.xml", "b.xml", "c.xml"}
	got, err := removeByNumbers(files, "r 1 3")
	tester.NoErr(t, err)
	tester.Eq(t, got, []string{"b.xml"})

	// Out-of-range and duplicate numbers are ignored.
	got, err = removeByNumbers(files, "r 2 2 9")
	tester.NoErr(t, err)
	tester.Eq(t, got, []string{"a.xml", "c.xml"})

	_, err = removeByNumbers(files, "r")
	tester.Err(t, err)
	_, err = removeByNumbers(files, "r x y")
	tester.Err(t, err)
}

func TestConfirmFilesProceedOnEnter(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	got, err := p.ConfirmFiles([]string{"a.xml", "b.xml"})
	tester.NoErr(t, err)
	tester.Eq(t, got, []string{"a.xml", "b.xml"})
}

func TestConfirmFilesRemoveThenProceed(t *testing.T) {
	p := NewPrompter(strings.NewReader("r 1\n\n"), &bytes.Buffer{})
	got, err := p.ConfirmFiles([]string{"a.xml", "b.xml"})
	tester.NoErr(t, err)
	tester.Eq(t, got, []string{"b.xml"})
}

func TestConfirmFilesAddThenProceed(t *testing.T) {
	in := strings.NewReader("a\nc.xml\na.xml\n\n\n")
	var out bytes.Buffer
	p := NewPrompter(in, &out)
	got, err := p.ConfirmFiles([]string{"a.xml"})
	tester.NoErr(t, err)
	tester.Eq(t, got, []string{"a.xml", "c.xml"})
	tester.Contains(t, out.String(), "File already selected: a.xml")
}

func TestConfirmLikelihoodWarnsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("banana\n"), &out)
	answer, err := p.ConfirmLikelihood(report.KindDNS, likelihood.Judgment{
		Conclusion: report.ConclusionMaybe,
		Reasoning:  "zone filters are present",
	})
	tester.NoErr(t, err)
	tester.Eq(t, answer, "banana")
	tester.Contains(t, out.String(), "might be (=1)")
	tester.Contains(t, out.String(), "DNS")
	tester.Contains(t, out.String(), "Invalid input")
}

func TestClarify(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("only the current state\n"), &out)
	got, err := p.Clarify(context.Background(), "too vague")
	tester.NoErr(t, err)
	tester.Eq(t, got, "only the current state")
	tester.Contains(t, out.String(), "too vague")
}
