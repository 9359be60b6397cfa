package rules

import (
	"strings"

	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/errors"
	"github.com/cmungall/go-db/query"
)

// RetractedReferenceRule flags annotations supported only by a retracted
// publication. The retraction list is an externally-supplied table: when it
// has not been provided the rule is not evaluable, which is distinct from
// "provided and empty". Assuming an empty list would silently under-report.
type RetractedReferenceRule struct{}

func (r *RetractedReferenceRule) Code() string { return "GORULE:0000022" }
func (r *RetractedReferenceRule) Title() string {
	return "Annotations should not cite retracted publications"
}
func (r *RetractedReferenceRule) Kind() Kind { return KindExternal }

func (r *RetractedReferenceRule) Evaluate(ctx *Context) ([]Violation, error) {
	if ctx.RetractedReferences == nil {
		return nil, errors.NewNotEvaluableError("retracted publication list not supplied")
	}

	var out []Violation
	for _, record := range ctx.Store.All() {
		for _, ref := range record.References {
			if ctx.RetractedReferences[ref] {
				out = append(out, Violation{AnnotationID: record.ID, RuleCode: r.Code()})
				break
			}
		}
	}
	return out, nil
}

// TaxonConstraintRule checks annotations against only_in_taxon /
// never_in_taxon constraints. Both the constraint table and the taxonomic
// closure come from outside this core; either one missing makes the rule
// not evaluable.
type TaxonConstraintRule struct{}

func (r *TaxonConstraintRule) Code() string { return "GORULE:0000013" }
func (r *TaxonConstraintRule) Title() string {
	return "Annotations must satisfy taxon constraints"
}
func (r *TaxonConstraintRule) Kind() Kind { return KindExternal }

func (r *TaxonConstraintRule) Evaluate(ctx *Context) ([]Violation, error) {
	if ctx.TaxonConstraints == nil {
		return nil, errors.NewNotEvaluableError("taxon constraint table not supplied")
	}
	if ctx.TaxonClosure == nil {
		return nil, errors.NewNotEvaluableError("taxonomic closure not built")
	}

	termClosure, err := ctx.Closure(closure.IsAPartOf.Name)
	if err != nil {
		return nil, err
	}

	var out []Violation
	for _, record := range ctx.Store.All() {
		taxon := normalizeTaxon(record.Taxon)
		if taxon == "" {
			continue
		}
		for _, constraint := range ctx.TaxonConstraints {
			// constraint applies to the term and everything under it
			if !query.IsDescendantOrSelf(termClosure, record.TermID, constraint.TermID) {
				continue
			}
			inTaxon := query.IsDescendantOrSelf(ctx.TaxonClosure, taxon, constraint.TaxonID)
			if constraint.Exclusion == inTaxon {
				out = append(out, Violation{AnnotationID: record.ID, RuleCode: r.Code()})
				break
			}
		}
	}
	return out, nil
}

// normalizeTaxon maps the GAF "taxon:NNND" form onto the NCBITaxon CURIEs
// used by the taxonomic graph.
func normalizeTaxon(taxon string) string {
	if taxon == "" {
		return ""
	}
	if id, ok := strings.CutPrefix(taxon, "taxon:"); ok {
		return "NCBITaxon:" + id
	}
	return taxon
}
