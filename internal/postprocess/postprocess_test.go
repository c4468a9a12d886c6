package postprocess

import (
	"errors"
	"testing"
	"time"

	"questify/internal/report"
	"questify/internal/tester"
)

func fixedProcessor() *Processor {
	return &Processor{
		Now:   func() time.Time { return time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC) },
		NewID: func() string { return "11111111-2222-3333-4444-555555555555" },
	}
}

func TestProcessDefaultsCategoryToGeneral(t *testing.T) {
	meta := &report.MetaData{Name: "r"}
	err := fixedProcessor().Process(meta, report.KindLDAP)
	tester.NoErr(t, err)

	want, err := report.CategoryID("General")
	tester.NoErr(t, err)
	tester.Eq(t, meta.CategoryId, want)
}

func TestProcessResolvesNamedCategory(t *testing.T) {
	meta := &report.MetaData{CategoryId: "Security"}
	err := fixedProcessor().Process(meta, report.KindDNS)
	tester.NoErr(t, err)
	tester.Eq(t, meta.CategoryId, "8b8a7eed-c190-42f4-88aa-fc47f85532e6")
}

func TestProcessRejectsUnknownCategory(t *testing.T) {
	meta := &report.MetaData{CategoryId: "Made Up"}
	err := fixedProcessor().Process(meta, report.KindDNS)
	var cerr *report.CategoryError
	tester.True(t, errors.As(err, &cerr))
	tester.Eq(t, cerr.Name, "Made Up")
}

func TestProcessStampsIdenticalTimestamps(t *testing.T) {
	meta := &report.MetaData{CreatedAt: "old", ImportedAt: "older", ModifiedAt: "oldest"}
	err := fixedProcessor().Process(meta, report.KindNonDNS)
	tester.NoErr(t, err)
	tester.Eq(t, meta.CreatedAt, "2025-06-01T12:30:45.123Z")
	tester.Eq(t, meta.ImportedAt, meta.CreatedAt)
	tester.Eq(t, meta.ModifiedAt, meta.CreatedAt)
}

func TestProcessOverwritesUniqueID(t *testing.T) {
	meta := &report.MetaData{UniqueId: "model-invented"}
	err := fixedProcessor().Process(meta, report.KindLDAP)
	tester.NoErr(t, err)
	tester.Eq(t, meta.UniqueId, "11111111-2222-3333-4444-555555555555")
}

func TestProcessStampsTemplateType(t *testing.T) {
	for kind, want := range map[report.Kind]report.TemplateType{
		report.KindLDAP:   report.TemplateAD,
		report.KindDNS:    report.TemplateDB,
		report.KindNonDNS: report.TemplateDB,
	} {
		meta := &report.MetaData{}
		err := fixedProcessor().Process(meta, kind)
		tester.NoErr(t, err)
		tester.Eq(t, meta.ReportType, want)
	}
}
