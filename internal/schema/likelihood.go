package schema

func judgment(kind string) map[string]any {
	return Object("Likelihood and reasoning why this report might be a "+kind+" report.", map[string]any{
		"conclusion": StrEnum("The conclusion about whether the report is a "+kind+" report.", "yes", "no", "maybe"),
		"reasoning":  Str("The reasoning behind the conclusion."),
	}, "conclusion", "reasoning")
}

// TypeLikelihoods asks for the three independent per-kind judgments in one
// shot. The three are not mutually exclusive.
func TypeLikelihoods() Descriptor {
	return Descriptor{
		Name:        "report_type_likelihoods",
		Description: "For each report kind, how likely the given template is to be of that kind.",
		Parameters: Object("", map[string]any{
			"LDAP":   judgment("LDAP"),
			"DNS":    judgment("DNS"),
			"NonDNS": judgment("NonDNS"),
		}, "LDAP", "DNS", "NonDNS"),
	}
}

// LDAPQuery asks for an LDAP query approximating the report, with a
// feasibility confidence. The query is synthesized regardless of confidence.
func LDAPQuery() Descriptor {
	return Descriptor{
		Name:        "ldap_query_synthesis",
		Description: "Synthesize an LDAP query that mimics the report, with a feasibility judgment.",
		Parameters: Object("", map[string]any{
			"confidence": StrEnum("Confidence that this report can be mimicked by an LDAP query.", "yes", "maybe", "no"),
			"reasoning":  Str("Why the report is, or is not, expressible as an LDAP query."),
			"ldap_query": Str("An LDAP query that mimics the report as closely as possible."),
		}, "confidence", "reasoning", "ldap_query"),
	}
}
