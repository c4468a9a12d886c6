package likelihood

import (
	"context"
	"testing"

	"questify/internal/knowledge"
	"questify/internal/llm"
	"questify/internal/report"
	"questify/internal/tester"
)

func scriptedVerdicts(ldap, dns, nondns string) map[string]any {
	return map[string]any{
		"LDAP":   map[string]string{"conclusion": ldap, "reasoning": "r1"},
		"DNS":    map[string]string{"conclusion": dns, "reasoning": "r2"},
		"NonDNS": map[string]string{"conclusion": nondns, "reasoning": "r3"},
	}
}

func TestEstimateReturnsAllKinds(t *testing.T) {
	kb, err := knowledge.Load()
	tester.NoErr(t, err)
	fake := llm.NewFakeClient().
		ScriptJSON("report_type_likelihoods", scriptedVerdicts("maybe", "no", "yes"))

	est := NewEstimator(fake, kb)
	got, err := est.Estimate(context.Background(), "<xml/>", "extracted")
	tester.NoErr(t, err)
	tester.Eq(t, len(got), 3)
	tester.Eq(t, got[report.KindLDAP].Conclusion, report.ConclusionMaybe)
	tester.Eq(t, got[report.KindDNS].Conclusion, report.ConclusionNo)
	tester.Eq(t, got[report.KindNonDNS].Conclusion, report.ConclusionYes)

	// The prompt carries the template, the extraction and the vocabulary.
	call := fake.Calls[0]
	tester.Contains(t, call.Prompt, "<xml/>")
	tester.Contains(t, call.Prompt, "extracted")
	tester.Contains(t, call.Prompt, "LDAP Report Properties")
	tester.Contains(t, call.Prompt, "Zones")
	tester.Eq(t, fake.CallCount("report_type_likelihoods"), 1, "all kinds judged in one call")
}

func TestEstimateRejectsBadConclusion(t *testing.T) {
	kb, err := knowledge.Load()
	tester.NoErr(t, err)
	fake := llm.NewFakeClient().
		ScriptJSON("report_type_likelihoods", scriptedVerdicts("definitely", "no", "yes"))
	est := NewEstimator(fake, kb)
	_, err = est.Estimate(context.Background(), "<xml/>", "")
	tester.Err(t, err)
}

func TestConfirmOverrides(t *testing.T) {
	judged := map[report.Kind]Judgment{
		report.KindLDAP:   {Conclusion: report.ConclusionMaybe, Reasoning: "a"},
		report.KindDNS:    {Conclusion: report.ConclusionNo, Reasoning: "b"},
		report.KindNonDNS: {Conclusion: report.ConclusionYes, Reasoning: "c"},
	}
	answers := map[report.Kind]string{
		report.KindLDAP:   "2",  // override to yes
		report.KindDNS:    "",   // accept
		report.KindNonDNS: "0",  // override to no
	}
	got, err := Confirm(judged, func(kind report.Kind, j Judgment) (string, error) {
		return answers[kind], nil
	})
	tester.NoErr(t, err)
	tester.Eq(t, got[report.KindLDAP], report.ConclusionYes)
	tester.Eq(t, got[report.KindDNS], report.ConclusionNo)
	tester.Eq(t, got[report.KindNonDNS], report.ConclusionNo)
}

func TestConfirmInvalidInputAcceptsVerdict(t *testing.T) {
	judged := map[report.Kind]Judgment{
		report.KindLDAP:   {Conclusion: report.ConclusionMaybe},
		report.KindDNS:    {Conclusion: report.ConclusionNo},
		report.KindNonDNS: {Conclusion: report.ConclusionYes},
	}
	got, err := Confirm(judged, func(kind report.Kind, j Judgment) (string, error) {
		return "banana", nil
	})
	tester.NoErr(t, err)
	tester.Eq(t, got[report.KindLDAP], report.ConclusionMaybe)
	tester.Eq(t, got[report.KindDNS], report.ConclusionNo)
	tester.Eq(t, got[report.KindNonDNS], report.ConclusionYes)
}

func TestConfirmNilAskAcceptsEverything(t *testing.T) {
	judged := map[report.Kind]Judgment{
		report.KindLDAP:   {Conclusion: report.ConclusionNo},
		report.KindDNS:    {Conclusion: report.ConclusionMaybe},
		report.KindNonDNS: {Conclusion: report.ConclusionYes},
	}
	got, err := Confirm(judged, nil)
	tester.NoErr(t, err)
	tester.Eq(t, got[report.KindDNS], report.ConclusionMaybe)
}
