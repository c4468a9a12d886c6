package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"questify/internal/tester"
)

func TestRunDirLayout(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2025, 6, 1, 9, 5, 3, 0, time.UTC)
	dir, err := RunDir(base, now)
	tester.NoErr(t, err)
	tester.Eq(t, dir, filepath.Join(base, "artifacts", "artifacts_20250601_090503"))
	info, err := os.Stat(dir)
	tester.NoErr(t, err)
	tester.True(t, info.IsDir())
}

func TestMinUniquePrefixLength(t *testing.T) {
	tester.Eq(t, MinUniquePrefixLength([]string{"alpha-report", "beta-report"}), 5)
	// Identical first 5 runes force a longer prefix.
	tester.Eq(t, MinUniquePrefixLength([]string{"membership-a", "membership-b"}), 12)
	tester.Eq(t, MinUniquePrefixLength(nil), 5)
}

func TestSubdirNames(t *testing.T) {
	got := SubdirNames([]string{"membership-a", "membership-b", "dns"})
	tester.Eq(t, got, []string{"membership-a", "membership-b", "dns"}, "short names keep their full text")
}

func TestSubdirNamesDisambiguatesIdenticalStems(t *testing.T) {
	// The same filename fed from two directories must not share a subdir.
	got := SubdirNames([]string{"report", "report", "report"})
	tester.Eq(t, got, []string{"report", "report_2", "report_3"})
}

func TestSaveCandidateAppendsSuffixAndKeepsAngleBrackets(t *testing.T) {
	store := NewStore(t.TempDir())
	path, err := store.SaveCandidate("memb", "report_as_LDAP_1", map[string]string{
		"FilterString": "(&(objectClass=user)(lockoutTime>=1))",
	})
	tester.NoErr(t, err)
	tester.True(t, strings.HasSuffix(path, "report_as_LDAP_1.json"))

	b, err := os.ReadFile(path)
	tester.NoErr(t, err)
	tester.Contains(t, string(b), "(&(objectClass=user)(lockoutTime>=1))")
	tester.False(t, strings.Contains(string(b), `\u003e`), "angle brackets must not be HTML-escaped")
}

func TestSaveRejectsEscapingPaths(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.SaveCandidate("..", "../evil", map[string]string{})
	tester.Err(t, err)
}
