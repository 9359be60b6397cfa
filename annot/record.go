// Package annot holds the flattened, normalized annotation records and the
// in-memory store built over them. Records are created at bulk load, never
// mutated in place; a reload produces a fresh store snapshot so in-flight
// queries keep reading the old one.
package annot

import (
	"strings"
	"time"
)

// Field separators in flat association rows.
const (
	ListSeparator   = "|"
	NegationMarker  = "NOT"
	dateLayout      = "20060102" // GAF annotation_date column, YYYYMMDD
	objectKeyJoiner = ":"
)

// Row is one flat association row as produced by the ingestion collaborator:
// raw strings, multi-valued fields still pipe-separated. Load derives the
// normalized Record from it.
type Row struct {
	DB              string // source database tag (col 1)
	DBObjectID      string // object-local identifier (col 2)
	Symbol          string // col 3
	Qualifier       string // pipe-separated qualifier list (col 4)
	TermID          string // ontology class reference (col 5)
	References      string // pipe-separated supporting references (col 6)
	EvidenceCode    string // col 7
	WithFrom        string // pipe-separated with/from values (col 8)
	Aspect          string // F, P or C (col 9)
	ObjectName      string // col 10
	Synonyms        string // pipe-separated (col 11)
	ObjectType      string // col 12
	Taxon           string // pipe-separated, first value is the object taxon (col 13)
	Date            string // YYYYMMDD (col 14)
	AssignedBy      string // col 15
	Extensions      string // pipe-separated annotation extensions (col 16)
	GeneProductForm string // col 17
}

// Record is one normalized gene/product-term association. ID is the dense
// surrogate identifier assigned at load time, used to correlate rule
// violations back to records.
type Record struct {
	ID               int       `json:"id"`
	DB               string    `json:"db"`
	DBObjectID       string    `json:"db_object_id"`
	Symbol           string    `json:"db_object_symbol,omitempty"`
	Qualifiers       []string  `json:"qualifiers,omitempty"`
	Negated          bool      `json:"negated"`
	TermID           string    `json:"ontology_class_ref"`
	References       []string  `json:"supporting_references,omitempty"`
	EvidenceCode     string    `json:"evidence_type"`
	WithFrom         []string  `json:"with_or_from_list,omitempty"`
	Aspect           string    `json:"aspect,omitempty"`
	ObjectName       string    `json:"db_object_name,omitempty"`
	Synonyms         []string  `json:"db_object_synonyms_list,omitempty"`
	ObjectType       string    `json:"db_object_type,omitempty"`
	Taxon            string    `json:"db_object_taxon,omitempty"`
	InteractingTaxon string    `json:"interacting_taxon,omitempty"`
	Date             time.Time `json:"annotation_date,omitempty"`
	AssignedBy       string    `json:"assigned_by,omitempty"`
	Extensions       []string  `json:"annotation_extensions_list,omitempty"`
	GeneProductForm  string    `json:"gene_product_form,omitempty"`
}

// ObjectKey identifies the annotated gene/product across source pipelines:
// (source database, object-local identifier). Cross-record rules self-join
// on this key.
func (r *Record) ObjectKey() string {
	return r.DB + objectKeyJoiner + r.DBObjectID
}

// HasReference reports whether ref is among the supporting references.
func (r *Record) HasReference(ref string) bool {
	for _, existing := range r.References {
		if existing == ref {
			return true
		}
	}
	return false
}

// SharesReference reports whether the two records cite at least one common
// supporting reference.
func (r *Record) SharesReference(other *Record) bool {
	for _, ref := range r.References {
		if other.HasReference(ref) {
			return true
		}
	}
	return false
}

// splitList splits a pipe-separated field, dropping empty tokens.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ListSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseDate normalizes the YYYYMMDD annotation date. Empty or malformed
// values yield the zero time; date-sensitive rules treat those records as
// not evaluable by age.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
