// Package likelihood estimates how likely a report template is to be of
// each report kind and lets a human confirm or override the verdicts.
package likelihood

import (
	"context"
	"fmt"

	"questify/internal/jsonutil"
	"questify/internal/knowledge"
	"questify/internal/llm"
	"questify/internal/report"
	"questify/internal/schema"
)

const systemPrompt = "You are a helpful assistant that analyzes reports and determines what kinds of report they could be. You pay attention to functionality, fields names etc."

// Judgment is the model's verdict for one report kind.
type Judgment struct {
	Conclusion report.Conclusion `json:"conclusion"`
	Reasoning  string            `json:"reasoning"`
}

// ConfirmFunc presents one verdict to the requester and returns their raw
// answer: "0" for no, "1" for maybe, "2" for yes, empty to accept.
type ConfirmFunc func(kind report.Kind, j Judgment) (string, error)

// Estimator produces likelihood judgments for all three kinds in a
// single structured call.
type Estimator struct {
	Client llm.Client
	KB     *knowledge.Base
}

func NewEstimator(client llm.Client, kb *knowledge.Base) *Estimator {
	return &Estimator{Client: client, KB: kb}
}

// Estimate judges the template against all three kinds. Every kind must
// appear in the response with a valid conclusion.
func (e *Estimator) Estimate(ctx context.Context, templateText, extracted string) (map[report.Kind]Judgment, error) {
	raw, err := e.Client.CompleteJSON(ctx, systemPrompt, e.prompt(templateText, extracted), schema.TypeLikelihoods(), 0)
	if err != nil {
		return nil, fmt.Errorf("likelihood: %w", err)
	}
	var parsed struct {
		LDAP   Judgment `json:"LDAP"`
		DNS    Judgment `json:"DNS"`
		NonDNS Judgment `json:"NonDNS"`
	}
	if err := jsonutil.UnmarshalRaw(raw, &parsed); err != nil {
		return nil, fmt.Errorf("likelihood: decode: %w", err)
	}
	out := map[report.Kind]Judgment{
		report.KindLDAP:   parsed.LDAP,
		report.KindDNS:    parsed.DNS,
		report.KindNonDNS: parsed.NonDNS,
	}
	for kind, j := range out {
		if _, err := report.ParseConclusion(string(j.Conclusion)); err != nil {
			return nil, fmt.Errorf("likelihood: %s: %w", kind, err)
		}
	}
	return out, nil
}

func (e *Estimator) prompt(templateText, extracted string) string {
	example := `{"LDAP": {"conclusion": "maybe", "reasoning": "There are mostly requests about current situation"}, "DNS": {"conclusion": "no", "reasoning": "I see no filters nor display fields of the DNS report"}, "NonDNS": {"conclusion": "yes", "reasoning": "There are requests about historical changes and filters that are typical for NonDNS reports"}}`
	return fmt.Sprintf(`I can produce 3 kinds of reports: LDAP, DNS and NonDNS. Here is some information about the 3 kinds:

# LDAP:
%s

# DNS and NonDNS:
%s

For each of these 3 kinds (LDAP, DNS, NonDNS), I'd like you look at the following XML report template- and tell me how likely it is to be of that kind.
For example, if it might be LDAP, definitely not DNS and very likely NonDNS, then return: %s.

Here's the report template:
<The XML file starts here>
%s
<The XML file ends here>

Here's some extracted information about the report:
%s

Here's your working process:
1. Read the report template.
2. Analyze the content of the report template.
3. Determine if the report is likely to be LDAP, DNS, or NonDNS based on the content.
4. Return a dictionary with keys "LDAP", "DNS", and "NonDNS" and values "yes", "no", or "maybe" based on your analysis.
5. You may add comments to your response in the designated fields.`,
		e.KB.LDAPOverview(), e.KB.DescribeAll(knowledge.AspectBoth), example, templateText, extracted)
}

// Confirm folds the requester's answers into the verdicts. An empty or
// unrecognized answer keeps the model's conclusion.
func Confirm(judged map[report.Kind]Judgment, ask ConfirmFunc) (map[report.Kind]report.Conclusion, error) {
	out := make(map[report.Kind]report.Conclusion, len(judged))
	for _, kind := range report.Kinds() {
		j, ok := judged[kind]
		if !ok {
			continue
		}
		if ask == nil {
			out[kind] = j.Conclusion
			continue
		}
		answer, err := ask(kind, j)
		if err != nil {
			return nil, fmt.Errorf("likelihood: confirm %s: %w", kind, err)
		}
		out[kind] = overrideFor(answer, j.Conclusion)
	}
	return out, nil
}

func overrideFor(answer string, fallback report.Conclusion) report.Conclusion {
	switch answer {
	case "0":
		return report.ConclusionNo
	case "1":
		return report.ConclusionMaybe
	case "2":
		return report.ConclusionYes
	default:
		// Empty and invalid answers both accept the model's verdict.
		return fallback
	}
}
