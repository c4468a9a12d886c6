// Package generate turns confirmed likelihoods into finished report
// candidates, fanning the per-temperature drafts out over a bounded
// worker pool.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"questify/internal/jsonutil"
	"questify/internal/knowledge"
	"questify/internal/llm"
	"questify/internal/postprocess"
	"questify/internal/report"
	"questify/internal/schema"
)

const (
	generatorSystemPrompt = "You are a helpful assistant, an expert of reports generation. Reply briefly according to the schema."
	ldapQuerySystemPrompt = "You're a helpful assistant that generates LDAP queries."
)

// Orchestrator drives candidate generation for one template.
type Orchestrator struct {
	Client  llm.Client
	KB      *knowledge.Base
	Post    *postprocess.Processor
	Log     *logrus.Logger
	Workers int
}

func NewOrchestrator(client llm.Client, kb *knowledge.Base, log *logrus.Logger, workers int) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		Client:  client,
		KB:      kb,
		Post:    postprocess.New(),
		Log:     log,
		Workers: workers,
	}
}

// TemperaturesFor maps a confirmed likelihood to the sampling
// temperatures attempted for that kind.
func TemperaturesFor(c report.Conclusion) []float64 {
	switch c {
	case report.ConclusionYes:
		return []float64{0, 0.2, 0.4}
	case report.ConclusionMaybe:
		return []float64{0.1, 0.3}
	default:
		return nil
	}
}

type job struct {
	kind        report.Kind
	temperature float64
	slot        int
}

// Generate produces all candidates implied by the verdicts. Candidates
// that fail generation or validation are dropped with a warning; a
// permanent provider error aborts the whole run.
func (o *Orchestrator) Generate(ctx context.Context, templateText, extracted string, verdicts map[report.Kind]report.Conclusion) ([]report.Candidate, error) {
	var jobs []job
	for _, kind := range report.Kinds() {
		for _, temp := range TemperaturesFor(verdicts[kind]) {
			jobs = append(jobs, job{kind: kind, temperature: temp, slot: len(jobs)})
		}
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	// The synthesized LDAP query is shared by every LDAP candidate, so it
	// is produced once up front. A transient synthesis failure abandons
	// only the LDAP candidates; the DB kinds keep going.
	var ldapQuery string
	if len(TemperaturesFor(verdicts[report.KindLDAP])) > 0 {
		q, err := o.synthesizeLDAPQuery(ctx, templateText, extracted)
		if err != nil {
			if llm.IsPermanent(err) || ctx.Err() != nil {
				return nil, err
			}
			o.Log.WithError(err).Warn("ldap query synthesis failed, dropping ldap candidates")
			kept := jobs[:0]
			for _, j := range jobs {
				if j.kind != report.KindLDAP {
					j.slot = len(kept)
					kept = append(kept, j)
				}
			}
			jobs = kept
			if len(jobs) == 0 {
				return nil, nil
			}
		} else {
			ldapQuery = q
		}
	}

	results := make([]*report.Candidate, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			start := time.Now()
			cand, err := o.generateOne(gctx, j, templateText, extracted, ldapQuery)
			if err != nil {
				if llm.IsPermanent(err) || gctx.Err() != nil {
					return err
				}
				o.Log.WithFields(logrus.Fields{
					"kind":        j.kind,
					"temperature": j.temperature,
				}).WithError(err).Warn("candidate dropped")
				return nil
			}
			o.Log.WithFields(logrus.Fields{
				"kind":        j.kind,
				"temperature": j.temperature,
				"elapsed_ms":  time.Since(start).Milliseconds(),
			}).Info("candidate generated")
			results[j.slot] = cand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]report.Candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (o *Orchestrator) generateOne(ctx context.Context, j job, templateText, extracted, ldapQuery string) (*report.Candidate, error) {
	var (
		content     report.ContentPayload
		contentJSON []byte
		err         error
	)
	if j.kind == report.KindLDAP {
		content, contentJSON, err = o.ldapContent(ctx, templateText, extracted, ldapQuery, j.temperature)
	} else {
		content, contentJSON, err = o.dbContent(ctx, j.kind, templateText, extracted, j.temperature)
	}
	if err != nil {
		return nil, err
	}

	meta, err := o.metadata(ctx, j.kind, templateText, extracted, ldapQuery, string(contentJSON), j.temperature)
	if err != nil {
		return nil, err
	}
	if err := o.Post.Process(meta, j.kind); err != nil {
		return nil, err
	}

	return &report.Candidate{
		Kind:        j.kind,
		Temperature: j.temperature,
		Content:     content,
		MetaData:    *meta,
	}, nil
}

// synthesizeLDAPQuery asks for the closest LDAP equivalent of the
// template. The query seeds content generation whatever the stated
// confidence is; a weak query still anchors the draft better than none.
func (o *Orchestrator) synthesizeLDAPQuery(ctx context.Context, templateText, extracted string) (string, error) {
	prompt := fmt.Sprintf(`Here is an XML report format:
<report>
%s
</report>

For your convenience, here is also a description of the report:
%s

How confident are you that a similar report could, in principle, be generated from an LDAP query?

Note: An LDAP query is a query that can be run against an Active Directory server to retrieve information about objects in the directory, such as users, computers, and groups.
Example 1: (&(objectCategory=person)(memberOf=CN=HR,OU=Groups,DC=example,DC=com)(mail=*))
Example 2: (|(objectClass=user)(objectClass=contact))
Example 3: (&(objectCategory=person)(objectClass=user)(!(userAccountControl:1.2.840.113556.1.4.803:=2))(memberOf=CN=Sales,OU=Groups,DC=example,DC=com)(displayName=A*)(mail=*))
Example 4: (&(objectClass=group)(cn=*VPN*))

Either way, do your best to generate an LDAP query that mimics this report in the best way you can.`,
		templateText, extracted)

	raw, err := o.Client.CompleteJSON(ctx, ldapQuerySystemPrompt, prompt, schema.LDAPQuery(), 0)
	if err != nil {
		return "", fmt.Errorf("generate: ldap query: %w", err)
	}
	var parsed struct {
		Confidence string `json:"confidence"`
		Reasoning  string `json:"reasoning"`
		LDAPQuery  string `json:"ldap_query"`
	}
	if err := jsonutil.UnmarshalRaw(raw, &parsed); err != nil {
		return "", fmt.Errorf("generate: decode ldap query: %w", err)
	}
	o.Log.WithFields(logrus.Fields{
		"confidence": parsed.Confidence,
	}).Debug("ldap query synthesized")
	return parsed.LDAPQuery, nil
}

func (o *Orchestrator) ldapContent(ctx context.Context, templateText, extracted, ldapQuery string, temperature float64) (report.ContentPayload, []byte, error) {
	prompt := fmt.Sprintf(`I want you to help me convert a report in one format, to another.

Original report format:
<original report format>%s</original report format>

Report description:
<report description>%s</report description>

LDAP query that is likely to be used in the report:
<ldap query>%s</ldap query>

Here's some general information about the report I want to generate:
%s`,
		templateText, extracted, ldapQuery, o.KB.LDAPOverview())

	raw, err := o.Client.CompleteJSON(ctx, generatorSystemPrompt, prompt, schema.LDAPContent(), temperature)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: ldap content: %w", err)
	}
	var content report.LDAPContent
	if err := jsonutil.UnmarshalRaw(raw, &content); err != nil {
		return nil, nil, fmt.Errorf("generate: decode ldap content: %w", err)
	}
	if content.FilterString == "" {
		content.FilterString = ldapQuery
	}
	content.ResultColumns = nil
	content.Filter.TypeName = report.TypeLDAPFilterQuery
	content.Filter.LDAPFilter.StampTypes()

	encoded, err := jsonutil.MarshalNoEscape(content)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: encode ldap content: %w", err)
	}
	return content, encoded, nil
}

func (o *Orchestrator) dbContent(ctx context.Context, kind report.Kind, templateText, extracted string, temperature float64) (report.ContentPayload, []byte, error) {
	prompt := fmt.Sprintf(`I want you to help me convert a report in one format, to another.

Original report format:
<original report format>%s</original report format>

Report description:
<report description>%s</report description>

Here's some general information about the report I want to generate:
%s`,
		templateText, extracted, o.KB.Describe(kind, knowledge.AspectBoth))

	desc := schema.DNSContent()
	if kind == report.KindNonDNS {
		desc = schema.NonDNSContent()
	}
	raw, err := o.Client.CompleteJSON(ctx, generatorSystemPrompt, prompt, desc, temperature)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: %s content: %w", kind, err)
	}
	var decoded report.DBContent
	if err := jsonutil.UnmarshalRaw(raw, &decoded); err != nil {
		return nil, nil, fmt.Errorf("generate: decode %s content: %w", kind, err)
	}
	content := report.NewDBContent(kind, decoded)
	if err := content.ValidateFields(kind); err != nil {
		return nil, nil, fmt.Errorf("generate: %s content: %w", kind, err)
	}
	if err := content.ValidateMirror(); err != nil {
		return nil, nil, fmt.Errorf("generate: %s content: %w", kind, err)
	}
	content.FilterString = nil
	content.Filter.TypeName = report.TypeDBFilterFields
	for i := range content.ResultColumns {
		col := &content.ResultColumns[i]
		col.TypeName = report.TypeDBDataColumn
		col.SelectedFormatter.TypeName = report.FormatterTypeFor(col.SelectedFormatter.Name)
	}

	encoded, err := jsonutil.MarshalNoEscape(content)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: encode %s content: %w", kind, err)
	}
	return content, encoded, nil
}

func (o *Orchestrator) metadata(ctx context.Context, kind report.Kind, templateText, extracted, ldapQuery, contentJSON string, temperature float64) (*report.MetaData, error) {
	querySection := ""
	if kind == report.KindLDAP {
		querySection = fmt.Sprintf("\nLDAP query that is likely to be used in the report:\n<ldap query>%s</ldap query>\n", ldapQuery)
	}
	prompt := fmt.Sprintf(`I took an original xml report and turned it into my own json format. You will help me generate the metadata for this report.

Original report format:
<original report format>%s</original report format>

Original report description:
<report description>%s</report description>
%s
Here is the content of the report I generated:
<report content>%s</report content>

Follow the schema and generate the metadata for the report.`,
		templateText, extracted, querySection, contentJSON)

	raw, err := o.Client.CompleteJSON(ctx, generatorSystemPrompt, prompt, schema.MetaData(), temperature)
	if err != nil {
		return nil, fmt.Errorf("generate: %s metadata: %w", kind, err)
	}
	var meta report.MetaData
	if err := jsonutil.UnmarshalRaw(raw, &meta); err != nil {
		return nil, fmt.Errorf("generate: decode %s metadata: %w", kind, err)
	}
	return &meta, nil
}
