package report

import "encoding/json"

// Candidate is one generated report attempt at a specific sampling
// temperature. Immutable after post-processing; owned by the caller that
// requested generation.
type Candidate struct {
	Kind        Kind    `json:"-"`
	Temperature float64 `json:"-"`

	Content                ContentPayload  `json:"Content"`
	MetaData               MetaData        `json:"MetaData"`
	SecurityReportSettings json.RawMessage `json:"SecurityReportSettings"` // always null
	CustomLogic            json.RawMessage `json:"CustomLogic"`            // always null
}
