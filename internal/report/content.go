package report

import (
	"encoding/json"
	"fmt"
)

// Serialized $type markers carried over from the target template format.
const (
	TypeLDAPFilterQuery = "Semperis.ReportTemplates.DataSource.Data.LDAPFilter.ADFilterQuery, Semperis.ReportTemplates.DataSource.Data"
	TypeLDAPTreeNode    = "Semperis.ReportTemplates.DataSource.Data.LDAPTreeNode, Semperis.ReportTemplates.DataSource.Data"
	TypeLDAPCondition   = "Semperis.ReportTemplates.DataSource.Data.LDAPTreeNodeCondition, Semperis.ReportTemplates.DataSource.Data"
	TypeDBFilterFields  = "Semperis.ReportTemplates.DataSource.Data.DBFilterFields, Semperis.ReportTemplates.DataSource.Data"
	TypeDBDataColumn    = "Semperis.ReportTemplates.DataSource.DB.DBDataColumn, Semperis.ReportTemplates.DataSource.DB"

	TypeADSyntaxFormatter   = "Semperis.ReportTemplates.DataSource.DB.ADSyntaxFormatter, Semperis.ReportTemplates.DataSource.DB"
	TypeDBDateTimeFormatter = "Semperis.ReportTemplates.DataSource.DB.DBDateTimeFormatter, Semperis.ReportTemplates.DataSource.DB"
	TypeDefaultFormatter    = "Semperis.ReportTemplates.DataSource.Data.DefaultFormatter, Semperis.ReportTemplates.DataSource.Data"
)

// FormatterTypeFor maps a formatter name to its serialized $type marker.
func FormatterTypeFor(name string) string {
	switch name {
	case "ADSyntax Formatting":
		return TypeADSyntaxFormatter
	case "Universal sortable date/time pattern":
		return TypeDBDateTimeFormatter
	default:
		return TypeDefaultFormatter
	}
}

// DataInputMethod controls whether a filter presents its default value.
const (
	InputPreset    = "Preset"
	InputUserInput = "UserInput"
)

// ContentPayload is the kind-discriminated content union.
type ContentPayload interface {
	ContentKind() Kind
}

// SearchScope is the LDAP search depth, serialized as a quoted digit.
type SearchScope string

const (
	ScopeBase     SearchScope = "0"
	ScopeOneLevel SearchScope = "1"
	ScopeSubTree  SearchScope = "2"
)

// LDAPTreeNode is one node of the recursive LDAP filter tree. A node with
// children is a condition (Type "And" or "Not"); a node without children is an
// attribute-comparison leaf.
type LDAPTreeNode struct {
	TypeName        string         `json:"$type,omitempty"`
	Type            string         `json:"Type"`      // And, Not, Equal, Present, Extensible, ...
	Operation       string         `json:"Operation"` // &, !, =, <=, >=
	Nodes           []LDAPTreeNode `json:"Nodes,omitempty"`
	Syntax          string         `json:"Syntax,omitempty"`
	Attribute       string         `json:"Attribute,omitempty"`
	Alias           *string        `json:"Alias,omitempty"`
	Data            string         `json:"Data,omitempty"`
	SyntaxUI        string         `json:"SyntaxUI,omitempty"`
	DataInputMethod string         `json:"DataInputMethod,omitempty"`
}

// IsLeaf reports whether the node is an attribute-comparison leaf.
func (n *LDAPTreeNode) IsLeaf() bool { return len(n.Nodes) == 0 }

// Leaves returns the attribute-comparison leaves in document order.
func (n *LDAPTreeNode) Leaves() []*LDAPTreeNode {
	if n.IsLeaf() {
		return []*LDAPTreeNode{n}
	}
	var out []*LDAPTreeNode
	for i := range n.Nodes {
		out = append(out, n.Nodes[i].Leaves()...)
	}
	return out
}

// StampTypes fills in the serialized $type markers for the whole tree.
func (n *LDAPTreeNode) StampTypes() {
	if n.IsLeaf() {
		n.TypeName = TypeLDAPTreeNode
		return
	}
	n.TypeName = TypeLDAPCondition
	for i := range n.Nodes {
		n.Nodes[i].StampTypes()
	}
}

// LDAPFilter is the full LDAP filter envelope around the tree.
type LDAPFilter struct {
	TypeName       string       `json:"$type"`
	LDAPFilter     LDAPTreeNode `json:"LDAPFilter"`
	BaseDNs        *string      `json:"BaseDNs"`
	SearchScope    *string      `json:"SearchScope"`
	ObjectListIds  *string      `json:"ObjectListIds"`
	IsGC           *bool        `json:"IsGC"`
	MaxResultLimit int          `json:"MaxResultLimit"`
}

// LDAPPreviewValues mirrors the filter tree's leaves for display defaults.
type LDAPPreviewValues struct {
	BaseDn      []string          `json:"BaseDn"`
	SearchScope SearchScope       `json:"SearchScope"`
	IsGC        bool              `json:"IsGC"`
	TreeValues  map[string]string `json:"TreeValues"`
}

// LDAPContent is the content payload for LDAP (current-state) reports.
type LDAPContent struct {
	FilterString  string            `json:"FilterString"`
	ResultColumns json.RawMessage   `json:"ResultColumns"` // always null for LDAP
	Filter        LDAPFilter        `json:"Filter"`
	PreviewValues LDAPPreviewValues `json:"PreviewValues"`
}

func (LDAPContent) ContentKind() Kind { return KindLDAP }

// FilterField is one DB filter entry. Data holds the serialized value;
// multi-valued filters join their values with ';'.
type FilterField struct {
	FieldName       string `json:"FieldName"`
	State           string `json:"State"`
	Data            string `json:"Data"`
	DataInputMethod string `json:"DataInputMethod"`
}

// SelectedFormatter names the output formatter of one result column.
type SelectedFormatter struct {
	TypeName string `json:"$type"`
	Name     string `json:"Name"`
}

// ResultColumn is one displayed output column of a DB report.
type ResultColumn struct {
	TypeName          string            `json:"$type"`
	Name              string            `json:"Name"`
	Alias             *string           `json:"Alias"`
	SelectedFormatter SelectedFormatter `json:"SelectedFormatter"`
}

// DBContent is the shared content payload shape for DNS and NonDNS reports.
// The Type filter field is the kind discriminator.
type DBContent struct {
	kind Kind

	FilterString  *string             `json:"FilterString"` // always null for DB reports
	ResultColumns []ResultColumn      `json:"ResultColumns"`
	Filter        DBFilter            `json:"Filter"`
	PreviewValues map[string][]string `json:"PreviewValues"`
}

// DBFilter is the DB filter-field list envelope.
type DBFilter struct {
	TypeName     string        `json:"$type"`
	FilterFields []FilterField `json:"FilterFields"`
}

// NewDBContent tags a decoded DB content payload with its kind.
func NewDBContent(kind Kind, c DBContent) DBContent {
	c.kind = kind
	return c
}

func (c DBContent) ContentKind() Kind { return c.kind }

// Field returns the filter field with the given name, if present.
func (c *DBContent) Field(name string) (FilterField, bool) {
	for _, f := range c.Filter.FilterFields {
		if f.FieldName == name {
			return f, true
		}
	}
	return FilterField{}, false
}

// ValidateMirror checks the declared 1:1 correspondence between filter fields
// and preview-value entries. A violation fails only the candidate that
// produced it.
func (c *DBContent) ValidateMirror() error {
	seen := make(map[string]bool, len(c.Filter.FilterFields))
	for _, f := range c.Filter.FilterFields {
		seen[f.FieldName] = true
		if _, ok := c.PreviewValues[f.FieldName]; !ok {
			return fmt.Errorf("report: filter field %q has no preview value", f.FieldName)
		}
	}
	for name := range c.PreviewValues {
		if !seen[name] {
			return fmt.Errorf("report: preview value %q has no filter field", name)
		}
	}
	return nil
}
