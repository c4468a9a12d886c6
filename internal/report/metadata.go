package report

// TimestampLayout is the wire format for metadata timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// MetaData is the canonical report metadata record. When it arrives from the
// generator CategoryId still carries a category *name*; post-processing
// resolves it to the canonical UUID, replaces UniqueId and stamps the three
// timestamps.
type MetaData struct {
	Name           string       `json:"Name"`
	Description    string       `json:"Description"`
	UniqueId       string       `json:"UniqueId"`
	CreatedAt      string       `json:"CreatedAt"`
	ImportedAt     string       `json:"ImportedAt"`
	ModifiedAt     string       `json:"ModifiedAt"`
	MinVerDsp      float64      `json:"MinVerDsp"`
	Company        string       `json:"Company"`
	CategoryId     string       `json:"CategoryId"`
	ReportType     TemplateType `json:"ReportType"`
	Status         string       `json:"Status"`
	LicenseLevel   string       `json:"LicenseLevel"`
	IndicatorTypes *string      `json:"IndicatorTypes"`
	Targets        *string      `json:"Targets"`
	Version        int          `json:"Version"`
	Weight         int          `json:"Weight"`
	IsSecurity     bool         `json:"IsSecurity"`
}
