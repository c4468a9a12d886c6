package report

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// DefaultCategory is substituted when the generator leaves the category blank.
const DefaultCategory = "General"

// categoryIDs is the closed category vocabulary. The UUIDs are fixed product
// identifiers, not generated values.
var categoryIDs = map[string]uuid.UUID{
	"General":               uuid.MustParse("9f506583-d530-4c66-a9a7-322429d828ef"),
	"Operational":           uuid.MustParse("b6b8b0f5-2072-48ba-958e-4999353277fd"),
	"Best Practices":        uuid.MustParse("76512d4d-43ea-4b29-92cc-5914e67cf13a"),
	"Service Accounts":      uuid.MustParse("b6a65ae0-78df-4ee0-a91e-e30a8da1da20"),
	"Regulatory Compliance": uuid.MustParse("55d2774f-3def-41c6-a93f-f07c6d2f29e5"),
	"Security":              uuid.MustParse("8b8a7eed-c190-42f4-88aa-fc47f85532e6"),
}

// CategoryError reports a category name outside the closed vocabulary.
// It is fatal to the candidate being post-processed, not to the run.
type CategoryError struct {
	Name string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("report: invalid category name %q (valid: %v)", e.Name, CategoryNames())
}

// CategoryID resolves a category name to its canonical UUID string.
func CategoryID(name string) (string, error) {
	id, ok := categoryIDs[name]
	if !ok {
		return "", &CategoryError{Name: name}
	}
	return id.String(), nil
}

// CategoryNames returns the closed category vocabulary, sorted.
func CategoryNames() []string {
	names := make([]string, 0, len(categoryIDs))
	for n := range categoryIDs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
