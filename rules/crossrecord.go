package rules

import "github.com/cmungall/go-db/closure"

// RedundantAnnotationRule flags an annotation when the SAME gene/product
// carries an annotation to a strict descendant of its term, supported by a
// DIFFERENT reference. The more specific annotation subsumes the general
// one, so the general one adds nothing.
//
// The different-reference condition is deliberate and exact: two
// annotations citing the same reference are treated as non-competing
// restatements of one assertion, never as redundancy. Do not widen this to
// "different evidence".
//
// Set semantics: one distinct matching partner suffices.
type RedundantAnnotationRule struct{}

func (r *RedundantAnnotationRule) Code() string { return "GORULE:0000042" }
func (r *RedundantAnnotationRule) Title() string {
	return "Annotation is redundant with a more specific annotation from a different reference"
}
func (r *RedundantAnnotationRule) Kind() Kind { return KindCrossRecord }

func (r *RedundantAnnotationRule) Evaluate(ctx *Context) ([]Violation, error) {
	relation, err := ctx.Closure(closure.IsAPartOf.Name)
	if err != nil {
		return nil, err
	}

	var out []Violation
	for _, record := range ctx.Store.All() {
		if record.Negated {
			continue
		}
		// self-join keyed by (source database, object identifier)
		for _, partner := range ctx.Store.ByObject(record.ObjectKey()) {
			if partner.ID == record.ID || partner.Negated {
				continue
			}
			// partner's term must be a STRICT descendant; an equal term is
			// a duplicate, not a refinement
			if !relation.Contains(partner.TermID, record.TermID) {
				continue
			}
			if record.SharesReference(partner) {
				continue
			}
			out = append(out, Violation{AnnotationID: record.ID, RuleCode: r.Code()})
			break
		}
	}
	return out, nil
}
