package report

import "fmt"

// Per-field allowed filter states. Fields absent from both maps accept any of
// the text-relation states.

var textRelationStates = []string{"Contains", "NotContain", "Equals", "NotEquals", "IsNotNullAndNotEmpty", "IsNullOrEmpty"}

// mutualFieldStates covers filters shared by DNS and NonDNS reports.
var mutualFieldStates = map[string][]string{
	"Type":          {"Is"},
	"DateRange":     {"Is"},
	"Operations":    {"Include", "Exclude"},
	"OldValue":      textRelationStates,
	"NewValue":      textRelationStates,
	"ChangedBy":     textRelationStates,
	"SourceServers": {"Include", "Exclude"},
	"ObjectListIds": {"Equals", "NotEquals", "StartsWith", "EndsWith"},
}

// dnsFieldStates covers filters available only on DNS reports.
var dnsFieldStates = map[string][]string{
	"Zones":       {"Include"},
	"RecordTypes": {"Include", "Exclude"},
}

// nonDNSFieldStates covers filters available only on NonDNS reports.
var nonDNSFieldStates = map[string][]string{
	"Partitions":              {"Include", "Exclude"},
	"ObjectClasses":           {"Include", "Exclude"},
	"Attributes":              {"Include", "Exclude"},
	"ObjectDN":                {"Equals", "NotEquals", "StartsWith"},
	"GroupResultsByOperation": {"Is"},
	"sAMAccountName":          {"Equals", "NotEquals", "StartsWith", "EndsWith"},
}

// mandatoryField is the kind-mandatory filter beyond the Type discriminator.
var mandatoryField = map[Kind]string{
	KindDNS:    "Zones",
	KindNonDNS: "Partitions",
}

func allowedStates(kind Kind, fieldName string) ([]string, bool) {
	if states, ok := mutualFieldStates[fieldName]; ok {
		return states, true
	}
	specific := dnsFieldStates
	if kind == KindNonDNS {
		specific = nonDNSFieldStates
	}
	states, ok := specific[fieldName]
	return states, ok
}

// ValidateFields checks that every filter field belongs to the kind's
// vocabulary with an allowed state, that the Type discriminator matches the
// kind, and that the kind-mandatory field is present.
func (c *DBContent) ValidateFields(kind Kind) error {
	typ, ok := c.Field("Type")
	if !ok {
		return fmt.Errorf("report: %s content is missing the Type filter field", kind)
	}
	if typ.Data != string(kind) {
		return fmt.Errorf("report: Type filter field is %q, want %q", typ.Data, kind)
	}
	if typ.State != "Is" || typ.DataInputMethod != InputPreset {
		return fmt.Errorf("report: Type filter field must be State=Is, DataInputMethod=Preset")
	}
	must := mandatoryField[kind]
	if _, ok := c.Field(must); !ok {
		return fmt.Errorf("report: %s content is missing the mandatory %s filter field", kind, must)
	}
	for _, f := range c.Filter.FilterFields {
		states, known := allowedStates(kind, f.FieldName)
		if !known {
			return fmt.Errorf("report: filter field %q is not in the %s vocabulary", f.FieldName, kind)
		}
		if !contains(states, f.State) {
			return fmt.Errorf("report: filter field %q does not allow state %q", f.FieldName, f.State)
		}
		if f.DataInputMethod != InputPreset && f.DataInputMethod != InputUserInput {
			return fmt.Errorf("report: filter field %q has invalid input method %q", f.FieldName, f.DataInputMethod)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
