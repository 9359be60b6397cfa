package rules

import (
	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/ontology"
)

// StaleIEAYearDays is the age threshold for electronically inferred
// annotations: anything older than a year (with slack for leap years) has
// outlived its mapping release.
const StaleIEAYearDays = 366

// StaleIEARule flags IEA-evidenced annotations older than a year.
type StaleIEARule struct{}

func (r *StaleIEARule) Code() string { return "GORULE:0000029" }
func (r *StaleIEARule) Title() string {
	return "All IEA annotations over a year old are removed"
}
func (r *StaleIEARule) Kind() Kind { return KindLocal }

func (r *StaleIEARule) Evaluate(ctx *Context) ([]Violation, error) {
	cutoff := ctx.Now.AddDate(0, 0, -StaleIEAYearDays)
	var out []Violation
	for _, record := range ctx.Store.All() {
		if record.EvidenceCode != "IEA" {
			continue
		}
		// records with no parseable date cannot be aged; leave them alone
		if record.Date.IsZero() {
			continue
		}
		if record.Date.Before(cutoff) {
			out = append(out, Violation{AnnotationID: record.ID, RuleCode: r.Code()})
		}
	}
	return out, nil
}

// NegatedProteinBindingRule flags NOT-qualified annotations to the bare
// protein-binding term: "does not bind some protein" carries no information.
type NegatedProteinBindingRule struct{}

func (r *NegatedProteinBindingRule) Code() string { return "GORULE:0000010" }
func (r *NegatedProteinBindingRule) Title() string {
	return "Negated annotations to 'protein binding' are uninformative"
}
func (r *NegatedProteinBindingRule) Kind() Kind { return KindLocal }

func (r *NegatedProteinBindingRule) Evaluate(ctx *Context) ([]Violation, error) {
	var out []Violation
	for _, record := range ctx.Store.All() {
		if record.Negated && record.TermID == ontology.TermProteinBinding {
			out = append(out, Violation{AnnotationID: record.ID, RuleCode: r.Code()})
		}
	}
	return out, nil
}

// ICWithFromRule: curator-inference evidence must cite the annotation it
// was inferred from in with/from.
type ICWithFromRule struct{}

func (r *ICWithFromRule) Code() string { return "GORULE:0000016" }
func (r *ICWithFromRule) Title() string {
	return "IC annotations require a With/From value"
}
func (r *ICWithFromRule) Kind() Kind { return KindLocal }

func (r *ICWithFromRule) Evaluate(ctx *Context) ([]Violation, error) {
	return flagEvidenceWithoutWithFrom(ctx.Store, "IC", r.Code()), nil
}

// IPIWithFromRule: physical-interaction evidence must name the interactor
// in with/from.
type IPIWithFromRule struct{}

func (r *IPIWithFromRule) Code() string { return "GORULE:0000018" }
func (r *IPIWithFromRule) Title() string {
	return "IPI annotations require a With/From value"
}
func (r *IPIWithFromRule) Kind() Kind { return KindLocal }

func (r *IPIWithFromRule) Evaluate(ctx *Context) ([]Violation, error) {
	return flagEvidenceWithoutWithFrom(ctx.Store, "IPI", r.Code()), nil
}

func flagEvidenceWithoutWithFrom(store *annot.Store, evidenceCode, ruleCode string) []Violation {
	var out []Violation
	for _, record := range store.All() {
		if record.EvidenceCode == evidenceCode && len(record.WithFrom) == 0 {
			out = append(out, Violation{AnnotationID: record.ID, RuleCode: ruleCode})
		}
	}
	return out
}
