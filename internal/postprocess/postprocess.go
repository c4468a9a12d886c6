// Package postprocess fixes up model-drafted metadata into its final
// form: resolved category id, fresh unique id, stamped timestamps and
// the template type matching the report kind.
package postprocess

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"questify/internal/report"
)

// Processor rewrites draft metadata in place. Now and NewID are
// injectable for tests; nil values use the clock and uuid v4.
type Processor struct {
	Now   func() time.Time
	NewID func() string
}

func New() *Processor {
	return &Processor{}
}

// Process finalizes the metadata for one candidate. The model emits the
// category by name; an unknown name fails the candidate rather than
// silently producing a broken id.
func (p *Processor) Process(meta *report.MetaData, kind report.Kind) error {
	if err := p.fixCategoryID(meta); err != nil {
		return err
	}
	p.fixUniqueID(meta)
	p.stampTimestamps(meta)
	meta.ReportType = kind.TemplateType()
	return nil
}

func (p *Processor) fixCategoryID(meta *report.MetaData) error {
	name := meta.CategoryId
	if name == "" {
		name = report.DefaultCategory
	}
	id, err := report.CategoryID(name)
	if err != nil {
		return fmt.Errorf("postprocess: %w", err)
	}
	meta.CategoryId = id
	return nil
}

func (p *Processor) fixUniqueID(meta *report.MetaData) {
	newID := p.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	meta.UniqueId = newID()
}

// stampTimestamps writes one identical timestamp into all three fields.
func (p *Processor) stampTimestamps(meta *report.MetaData) {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	stamp := now().UTC().Format(report.TimestampLayout)
	meta.CreatedAt = stamp
	meta.ImportedAt = stamp
	meta.ModifiedAt = stamp
}
