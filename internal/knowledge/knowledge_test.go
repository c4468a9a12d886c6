package knowledge

import (
	"strings"
	"testing"

	"questify/internal/report"
	"questify/internal/tester"
)

func TestLoadAndDescribe(t *testing.T) {
	kb, err := Load()
	tester.NoErr(t, err)

	dns := kb.Describe(report.KindDNS, AspectFilters)
	tester.Contains(t, dns, "Zones: Active Directory DNS zones")
	tester.False(t, strings.Contains(dns, "Partitions: Active Directory DNS partitions"),
		"DNS vocabulary must not include NonDNS-only filters")

	nondns := kb.Describe(report.KindNonDNS, AspectFilters)
	tester.Contains(t, nondns, "Partitions: Active Directory DNS partitions")
	tester.False(t, strings.Contains(nondns, "Zones: Active Directory DNS zones"),
		"NonDNS vocabulary must not include DNS-only filters")

	// Mutual filters appear for either kind.
	tester.Contains(t, dns, "ChangedBy")
	tester.Contains(t, nondns, "ChangedBy")

	both := kb.DescribeAll(AspectBoth)
	tester.Contains(t, both, "Zones")
	tester.Contains(t, both, "Partitions")
	tester.Contains(t, both, "display fields available for both")
}

func TestDescribeDisplaysPerKind(t *testing.T) {
	kb, err := Load()
	tester.NoErr(t, err)

	dns := kb.Describe(report.KindDNS, AspectDisplays)
	tester.Contains(t, dns, "From_TypeSoa_PrimaryServer")

	nondns := kb.Describe(report.KindNonDNS, AspectDisplays)
	tester.Contains(t, nondns, "From_Meta_ObjectGuid")
	tester.False(t, strings.Contains(nondns, "From_TypeSoa_PrimaryServer"))
}

func TestReplaceEventIDs(t *testing.T) {
	kb, err := Load()
	tester.NoErr(t, err)

	in := `<Filter EventClassId="a1b2e49a-6b12-4bd6-a69b-9f1a4f2c0203" />`
	out, found := kb.ReplaceEventIDs(in)
	tester.Contains(t, out, `"Group Membership Changed"`)
	tester.Eq(t, found, []string{"Group Membership Changed"})

	// Unknown ids pass through untouched.
	same, none := kb.ReplaceEventIDs(`"not-an-event-id"`)
	tester.Eq(t, same, `"not-an-event-id"`)
	tester.Eq(t, len(none), 0)
}

func TestLDAPOverview(t *testing.T) {
	kb, err := Load()
	tester.NoErr(t, err)
	tester.Contains(t, kb.LDAPOverview(), "objectClass=user")
}
