package schema

// MetaData is the metadata draft schema. CategoryId carries a category *name*
// here; post-processing resolves it to the canonical UUID and overwrites
// UniqueId and the timestamps.
func MetaData() Descriptor {
	return Descriptor{
		Name:        "report_metadata",
		Description: "Metadata for a generated report.",
		Parameters: Object("", map[string]any{
			"Name":        Str("Report name."),
			"Description": Str("Description of the report."),
			"UniqueId":    Str("A random unique uuid4. Will be replaced during post-processing."),
			"CreatedAt":   Str("Timestamp of format YYYY-MM-DDTHH:MM:SS.sssZ."),
			"ImportedAt":  Str("Timestamp of format YYYY-MM-DDTHH:MM:SS.sssZ."),
			"ModifiedAt":  Str("Timestamp of format YYYY-MM-DDTHH:MM:SS.sssZ."),
			"MinVerDsp":   Number("One of: 3.0, 3.8, 4.0, 4.1, 5.0."),
			"Company":     StrEnum("Company name, usually Semperis.", "Semperis", "LDC"),
			"CategoryId": StrEnum("Report category.",
				"General", "Operational", "Best Practices", "Service Accounts", "Regulatory Compliance", "Security"),
			"ReportType":     StrEnum("'ADTemplate' for LDAP reports, 'DBTemplate' for DB reports.", "ADTemplate", "DBTemplate"),
			"Status":         Str("Report status, usually 'internal'."),
			"LicenseLevel":   Str("License level, usually 'None'."),
			"IndicatorTypes": Nullable(Str("Indicator types, usually null.")),
			"Targets":        Nullable(Str("Targets, usually null.")),
			"Version":        Integer("Report version, usually 0."),
			"Weight":         Integer("Report weight, usually 1."),
			"IsSecurity":     Bool("Whether this is a security report."),
		}, "Name", "Description", "MinVerDsp", "Company", "CategoryId", "ReportType"),
	}
}
