package report

import "fmt"

// Kind discriminates the three target report formats.
type Kind string

const (
	KindLDAP   Kind = "LDAP"
	KindDNS    Kind = "DNS"
	KindNonDNS Kind = "NonDNS"
)

// Kinds returns every kind in canonical order.
func Kinds() []Kind { return []Kind{KindLDAP, KindDNS, KindNonDNS} }

// TemplateType is the serialized report-type discriminator.
type TemplateType string

const (
	TemplateAD TemplateType = "ADTemplate"
	TemplateDB TemplateType = "DBTemplate"
)

// TemplateType maps the kind to its metadata discriminator:
// LDAP reports are AD templates, DNS and NonDNS are DB templates.
func (k Kind) TemplateType() TemplateType {
	if k == KindLDAP {
		return TemplateAD
	}
	return TemplateDB
}

// ParseKind validates a kind string coming from outside the process.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLDAP, KindDNS, KindNonDNS:
		return Kind(s), nil
	}
	return "", fmt.Errorf("report: unknown kind %q", s)
}

// Conclusion is a three-way likelihood judgment.
type Conclusion string

const (
	ConclusionYes   Conclusion = "yes"
	ConclusionNo    Conclusion = "no"
	ConclusionMaybe Conclusion = "maybe"
)

// ParseConclusion validates a conclusion produced by the model.
func ParseConclusion(s string) (Conclusion, error) {
	switch Conclusion(s) {
	case ConclusionYes, ConclusionNo, ConclusionMaybe:
		return Conclusion(s), nil
	}
	return "", fmt.Errorf("report: unknown conclusion %q", s)
}
