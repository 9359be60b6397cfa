// Package query answers hierarchical containment questions over a closure
// relation, and implements the annotation rollup join used both by direct
// queries and by rule evaluation.
package query

import (
	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
)

// Filter restricts annotation candidates before the closure join. Empty
// fields match everything.
type Filter struct {
	Taxon        string
	EvidenceCode string
	Aspect       string
}

// Matches reports whether the record passes every set field.
func (f Filter) Matches(record *annot.Record) bool {
	if f.Taxon != "" && record.Taxon != f.Taxon {
		return false
	}
	if f.EvidenceCode != "" && record.EvidenceCode != f.EvidenceCode {
		return false
	}
	if f.Aspect != "" && record.Aspect != f.Aspect {
		return false
	}
	return true
}

func (f Filter) empty() bool {
	return f == Filter{}
}

// IsDescendantOrSelf reports whether candidate equals ancestor or the
// closure contains (candidate, ancestor).
func IsDescendantOrSelf(relation *closure.Relation, candidate, ancestor string) bool {
	return candidate == ancestor || relation.Contains(candidate, ancestor)
}

// DescendantsOf returns term plus every closure subject that reaches it.
func DescendantsOf(relation *closure.Relation, term string) map[string]bool {
	out := map[string]bool{term: true}
	for _, subject := range relation.Descendants(term) {
		out[subject] = true
	}
	return out
}

// AncestorsOf returns term plus every closure object reachable from it.
func AncestorsOf(relation *closure.Relation, term string) map[string]bool {
	out := map[string]bool{term: true}
	for _, object := range relation.Ancestors(term) {
		out[object] = true
	}
	return out
}

// AnnotationsUnderTerm returns every record whose own term equals term or is
// a strict descendant of it under the given closure.
//
// Plan selection matters at production scale (hundreds of millions of rows
// unfiltered): with filters supplied, records are filtered FIRST and only
// survivors pay the closure membership probe; without filters, enumeration
// walks the descendant index so cost stays proportional to the rollup's
// actual result.
func AnnotationsUnderTerm(relation *closure.Relation, store *annot.Store, term string, filters ...Filter) []*annot.Record {
	combined := combineFilters(filters)

	if !combined.empty() {
		var out []*annot.Record
		for _, record := range store.All() {
			if !combined.Matches(record) {
				continue
			}
			if IsDescendantOrSelf(relation, record.TermID, term) {
				out = append(out, record)
			}
		}
		return out
	}

	var out []*annot.Record
	for descendant := range DescendantsOf(relation, term) {
		out = append(out, store.ByTerm(descendant)...)
	}
	return out
}

// combineFilters merges filters; the last non-empty value of each field wins.
func combineFilters(filters []Filter) Filter {
	var combined Filter
	for _, f := range filters {
		if f.Taxon != "" {
			combined.Taxon = f.Taxon
		}
		if f.EvidenceCode != "" {
			combined.EvidenceCode = f.EvidenceCode
		}
		if f.Aspect != "" {
			combined.Aspect = f.Aspect
		}
	}
	return combined
}
