// Package knowledge holds the domain reference material injected into
// prompts: filter and display vocabularies per report kind, the LDAP
// report overview, and the event class id to name mapping.
package knowledge

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"questify/internal/report"
)

//go:embed data/*.txt data/*.csv
var dataFS embed.FS

// Aspect selects which part of the vocabulary Describe returns.
type Aspect string

const (
	AspectFilters  Aspect = "filters"
	AspectDisplays Aspect = "displays"
	AspectBoth     Aspect = "both"
)

// Base is the loaded knowledge base. Construct it once with Load and
// inject it where prompts are built.
type Base struct {
	mutualFilters   string
	dnsFilters      string
	nonDNSFilters   string
	mutualDisplays  string
	dnsDisplays     string
	nonDNSDisplays  string
	ldapOverview    string
	eventClassNames map[string]string
}

// Load reads the embedded knowledge files into a Base.
func Load() (*Base, error) {
	b := &Base{}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"mutual_filters.txt", &b.mutualFilters},
		{"dns_filters.txt", &b.dnsFilters},
		{"nondns_filters.txt", &b.nonDNSFilters},
		{"mutual_displays.txt", &b.mutualDisplays},
		{"dns_displays.txt", &b.dnsDisplays},
		{"nondns_displays.txt", &b.nonDNSDisplays},
		{"ldap_overview.txt", &b.ldapOverview},
	} {
		raw, err := dataFS.ReadFile("data/" + f.name)
		if err != nil {
			return nil, fmt.Errorf("knowledge: read %s: %w", f.name, err)
		}
		*f.dst = strings.TrimSpace(string(raw))
	}

	raw, err := dataFS.ReadFile("data/events_ids_names_mapping.csv")
	if err != nil {
		return nil, fmt.Errorf("knowledge: read event mapping: %w", err)
	}
	mapping, err := parseEventMapping(raw)
	if err != nil {
		return nil, err
	}
	b.eventClassNames = mapping
	return b, nil
}

func parseEventMapping(raw []byte) (map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("knowledge: parse event mapping: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("knowledge: event mapping is empty")
	}
	header := records[0]
	idCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "EventClassIDs":
			idCol = i
		case "EventClassNames":
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("knowledge: event mapping is missing EventClassIDs or EventClassNames column")
	}
	mapping := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= idCol || len(rec) <= nameCol {
			continue
		}
		id := strings.TrimSpace(rec[idCol])
		name := strings.TrimSpace(rec[nameCol])
		if id == "" || name == "" {
			continue
		}
		mapping[id] = name
	}
	return mapping, nil
}

// LDAPOverview returns the LDAP report primer with example queries.
func (b *Base) LDAPOverview() string { return b.ldapOverview }

// Describe returns the vocabulary text for the given report kind. The kind
// selects the mutual block plus the kind-specific block; asking for both
// kinds returns the full vocabulary with section headers.
func (b *Base) Describe(kind report.Kind, aspect Aspect) string {
	var parts []string
	switch kind {
	case report.KindDNS:
		if aspect == AspectFilters || aspect == AspectBoth {
			parts = append(parts, b.mutualFilters, b.dnsFilters)
		}
		if aspect == AspectDisplays || aspect == AspectBoth {
			parts = append(parts, b.mutualDisplays, b.dnsDisplays)
		}
	case report.KindNonDNS:
		if aspect == AspectFilters || aspect == AspectBoth {
			parts = append(parts, b.mutualFilters, b.nonDNSFilters)
		}
		if aspect == AspectDisplays || aspect == AspectBoth {
			parts = append(parts, b.mutualDisplays, b.nonDNSDisplays)
		}
	}
	return strings.Join(parts, "\n")
}

// DescribeAll returns the vocabulary for both DB report kinds, used when the
// report kind is not yet known.
func (b *Base) DescribeAll(aspect Aspect) string {
	var parts []string
	if aspect == AspectFilters || aspect == AspectBoth {
		parts = append(parts,
			"Here are the filters available for both DNS and NonDNS reports:",
			b.mutualFilters,
			"Here are the filters available only for DNS reports:",
			b.dnsFilters,
			"Here are the filters available only for NonDNS reports:",
			b.nonDNSFilters,
		)
	}
	if aspect == AspectDisplays || aspect == AspectBoth {
		parts = append(parts,
			"Here are the display fields available for both DNS and NonDNS reports:",
			b.mutualDisplays,
			"Here are the display fields available only for DNS reports:",
			b.dnsDisplays,
			"Here are the display fields available only for NonDNS reports:",
			b.nonDNSDisplays,
		)
	}
	return strings.Join(parts, "\n")
}

// ReplaceEventIDs substitutes quoted event class ids in content with their
// human readable names and reports which names were substituted.
func (b *Base) ReplaceEventIDs(content string) (string, []string) {
	res := content
	var found []string
	for id, name := range b.eventClassNames {
		quoted := `"` + id + `"`
		if strings.Contains(res, quoted) {
			res = strings.ReplaceAll(res, quoted, `"`+name+`"`)
			found = append(found, name)
		}
	}
	sort.Strings(found)
	return res, found
}

// EventName looks up the display name for an event class id.
func (b *Base) EventName(id string) (string, bool) {
	name, ok := b.eventClassNames[id]
	return name, ok
}
