package schema

// Content schemas for the three report kinds. These describe the shape the
// generator must fill; semantic validation (allowed states, mandatory fields,
// preview mirroring) happens after decoding.

func ldapTreeNode(depth int) map[string]any {
	leaf := Object("An attribute-comparison leaf of the LDAP filter tree.", map[string]any{
		"Type":            Str("The comparison to perform, e.g. 'Equal', 'Present', 'Extensible', 'LessThanOrEqualTo', 'GreaterThanOrEqualTo'."),
		"Operation":       Str("The operation symbol, e.g. '=', '<=', '>='."),
		"Syntax":          Str("The syntax of the LDAP attribute, e.g. 'DN', 'Oid', 'DirectoryString'."),
		"Attribute":       Str("The LDAP attribute to filter on, e.g. 'objectCategory', 'objectClass', 'mail'."),
		"Alias":           Nullable(Str("Optional alias for the attribute.")),
		"Data":            Str("The default value for the attribute filtration, e.g. 'user', '*', 'Rel:1D'."),
		"SyntaxUI":        Str("The UI representation of the syntax, e.g. 'String', 'SelectionFromList', 'CalculatedDateTime'."),
		"DataInputMethod": StrEnum("Whether a default value is presented.", "Preset", "UserInput"),
	}, "Type", "Operation", "Syntax", "Attribute", "Data", "SyntaxUI", "DataInputMethod")
	if depth <= 0 {
		return leaf
	}
	condition := Object("An 'And' or 'Not' condition over child nodes. 'Not' must hold exactly one node.", map[string]any{
		"Type":      StrEnum("The condition type.", "And", "Not"),
		"Operation": StrEnum("The condition symbol.", "&", "!"),
		"Nodes":     Array("Child nodes of the condition.", ldapTreeNode(depth-1)),
	}, "Type", "Operation", "Nodes")
	return map[string]any{
		"description": "Either a condition node or a comparison leaf.",
		"anyOf":       []any{condition, leaf},
	}
}

// LDAPContent is the content schema for LDAP reports.
func LDAPContent() Descriptor {
	return Descriptor{
		Name:        "ldap_report_content",
		Description: "The content of an LDAP (current AD state) report.",
		Parameters: Object("", map[string]any{
			"FilterString": Str("The LDAP query as-is."),
			"Filter": Object("The filter of the report.", map[string]any{
				"LDAPFilter":     ldapTreeNode(3),
				"MaxResultLimit": Integer("Maximum number of results; 0 for unlimited."),
			}, "LDAPFilter", "MaxResultLimit"),
			"PreviewValues": Object("Preview values mirroring the filter tree's leaves.", map[string]any{
				"BaseDn":      Array("Base DNs, e.g. 'DC=example,DC=com' or 'OU=Blah'.", Str("")),
				"SearchScope": StrEnum("Search depth: '0'=Base, '1'=One Level, '2'=Sub tree.", "0", "1", "2"),
				"IsGC":        Bool("True if the search spans the global catalog."),
				"TreeValues":  MapOf("Map from LDAP attribute to the value it is compared against.", Str("")),
			}, "BaseDn", "SearchScope", "IsGC", "TreeValues"),
		}, "FilterString", "Filter", "PreviewValues"),
	}
}

func filterField() map[string]any {
	return Object("One filter field of the report.", map[string]any{
		"FieldName":       Str("The filter field name, drawn from the vocabulary in the prompt."),
		"State":           Str("The filter state; each field allows only the states listed in the vocabulary."),
		"Data":            Str("The filter value. Multi-valued filters join values with ';'."),
		"DataInputMethod": StrEnum("Whether a default value is presented.", "Preset", "UserInput"),
	}, "FieldName", "State", "Data", "DataInputMethod")
}

func resultColumn() map[string]any {
	return Object("One displayed output column.", map[string]any{
		"Name":  Str("The column/field name, e.g. 'from_stringvalue', 'modificationtype'."),
		"Alias": Nullable(Str("Optional alias to display instead of the real name.")),
		"SelectedFormatter": Object("The formatter for this column.", map[string]any{
			"Name": StrEnum("Formatter name. 'ADSyntax Formatting' for From_Syntax/To_Syntax, 'Universal sortable date/time pattern' for time columns, 'No Formatting' otherwise.",
				"ADSyntax Formatting", "Universal sortable date/time pattern", "No Formatting"),
		}, "Name"),
	}, "Name", "SelectedFormatter")
}

func dbContent(kind, mandatory string) map[string]any {
	return Object("", map[string]any{
		"Filter": Object("The filtering settings of this "+kind+" report.", map[string]any{
			"FilterFields": Array("Filter fields. Must include the field {FieldName:'Type', State:'Is', Data:'"+kind+"', DataInputMethod:'Preset'} and a '"+mandatory+"' field.", filterField()),
		}, "FilterFields"),
		"PreviewValues": MapOf("Map from each used filter field name to a list holding exactly one preview value string. Must mirror FilterFields one to one.",
			Array("", Str(""))),
		"ResultColumns": Array("How to present the results of this "+kind+" report.", resultColumn()),
	}, "Filter", "PreviewValues", "ResultColumns")
}

// DNSContent is the content schema for DNS change reports.
func DNSContent() Descriptor {
	return Descriptor{
		Name:        "dns_report_content",
		Description: "The content of a DNS (historical change) report.",
		Parameters:  dbContent("DNS", "Zones"),
	}
}

// NonDNSContent is the content schema for NonDNS change reports.
func NonDNSContent() Descriptor {
	return Descriptor{
		Name:        "nondns_report_content",
		Description: "The content of a NonDNS (historical change) report.",
		Parameters:  dbContent("NonDNS", "Partitions"),
	}
}
