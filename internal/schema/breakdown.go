package schema

// Breakdown is the six-signal decomposition of a free-form report request.
// Each signal is judged independently; the decision rule lives in the
// classification engine, not here.
func Breakdown() Descriptor {
	return Descriptor{
		Name:        "report_request_breakdown",
		Description: "Break a user's report request into independent signals about what the request asks for.",
		Parameters: Object("", map[string]any{
			"asks_current_status":     Bool("True if the request asks about the current state of Active Directory (users, groups, OUs as they are now)."),
			"asks_historical_changes": Bool("True if the request asks about historical change events in Active Directory."),
			"asks_dns_filters":        Bool("True if the request mentions filters specific to DNS reports (Zones, RecordTypes)."),
			"asks_dns_displays":       Bool("True if the request mentions display fields specific to DNS reports."),
			"asks_nondns_filters":     Bool("True if the request mentions filters specific to NonDNS reports (Partitions, ObjectClasses, Attributes, ObjectDN, GroupResultsByOperation, sAMAccountName)."),
			"asks_nondns_displays":    Bool("True if the request mentions display fields specific to NonDNS reports."),
			"comment":                 Str("Free-text commentary on the judgment."),
			"feedback":                Str("Optional feedback to relay to the requester."),
		},
			"asks_current_status", "asks_historical_changes",
			"asks_dns_filters", "asks_dns_displays",
			"asks_nondns_filters", "asks_nondns_displays",
			"comment",
		),
	}
}
