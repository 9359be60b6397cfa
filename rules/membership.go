package rules

import (
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/ontology"
	"github.com/cmungall/go-db/query"
)

// ObsoleteTermRule flags annotations whose term is marked obsolete in the
// loaded ontology.
type ObsoleteTermRule struct{}

func (r *ObsoleteTermRule) Code() string { return "GORULE:0000014" }
func (r *ObsoleteTermRule) Title() string {
	return "Annotations must not reference obsolete terms"
}
func (r *ObsoleteTermRule) Kind() Kind { return KindTermMembership }

func (r *ObsoleteTermRule) Evaluate(ctx *Context) ([]Violation, error) {
	obsolete := make(map[string]bool)
	for _, term := range ctx.Ontology.Terms() {
		if term.Obsolete {
			obsolete[term.ID] = true
		}
	}
	return flagTermMembers(ctx, obsolete, r.Code()), nil
}

// DoNotAnnotateRule flags annotations to terms carrying the
// do-not-annotate subset tag.
type DoNotAnnotateRule struct{}

func (r *DoNotAnnotateRule) Code() string { return "GORULE:0000008" }
func (r *DoNotAnnotateRule) Title() string {
	return "No annotations to do-not-annotate subset terms"
}
func (r *DoNotAnnotateRule) Kind() Kind { return KindTermMembership }

func (r *DoNotAnnotateRule) Evaluate(ctx *Context) ([]Violation, error) {
	blocked := make(map[string]bool)
	for _, term := range ctx.Ontology.Terms() {
		if term.InSubset(ontology.SubsetDoNotAnnotate) {
			blocked[term.ID] = true
		}
	}
	return flagTermMembers(ctx, blocked, r.Code()), nil
}

// OrphanTermRule flags annotations to terms with no is-a/part-of parent at
// all. The three aspect roots are the only legitimate parentless terms.
type OrphanTermRule struct{}

func (r *OrphanTermRule) Code() string { return "GORULE:0000045" }
func (r *OrphanTermRule) Title() string {
	return "Annotated terms must have an is-a or part-of parent"
}
func (r *OrphanTermRule) Kind() Kind { return KindTermMembership }

var aspectRoots = map[string]bool{
	ontology.RootBiologicalProcess: true,
	ontology.RootMolecularFunction: true,
	ontology.RootCellularComponent: true,
}

func (r *OrphanTermRule) Evaluate(ctx *Context) ([]Violation, error) {
	hasParent := make(map[string]bool)
	subsumption := ontology.NewPredicateSet(ontology.PredicateIsA, ontology.PredicatePartOf)
	for _, edge := range ctx.Ontology.EdgesByPredicate(subsumption) {
		hasParent[edge.Subject] = true
	}

	orphans := make(map[string]bool)
	for _, term := range ctx.Ontology.Terms() {
		if !hasParent[term.ID] && !aspectRoots[term.ID] && !term.Obsolete {
			orphans[term.ID] = true
		}
	}
	return flagTermMembers(ctx, orphans, r.Code()), nil
}

// IPICatalyticActivityRule flags IPI evidence on catalytic-activity terms.
// Binding an interactor does not demonstrate catalysis, so the check walks
// ANCESTORS of the annotated term: violation iff 'catalytic activity' is
// the term itself or among its is-a/part-of ancestors.
type IPICatalyticActivityRule struct{}

func (r *IPICatalyticActivityRule) Code() string { return "GORULE:0000007" }
func (r *IPICatalyticActivityRule) Title() string {
	return "IPI should not be used with catalytic activity terms"
}
func (r *IPICatalyticActivityRule) Kind() Kind { return KindTermMembership }

func (r *IPICatalyticActivityRule) Evaluate(ctx *Context) ([]Violation, error) {
	relation, err := ctx.Closure(closure.IsAPartOf.Name)
	if err != nil {
		return nil, err
	}

	var out []Violation
	for _, record := range ctx.Store.All() {
		if record.EvidenceCode != "IPI" {
			continue
		}
		if query.IsDescendantOrSelf(relation, record.TermID, ontology.TermCatalyticActivity) {
			out = append(out, Violation{AnnotationID: record.ID, RuleCode: r.Code()})
		}
	}
	return out, nil
}

// flagTermMembers flags every record whose term is in the set. The set is
// precomputed from term metadata once per evaluation, not per record.
func flagTermMembers(ctx *Context, terms map[string]bool, ruleCode string) []Violation {
	if len(terms) == 0 {
		return nil
	}
	var out []Violation
	for termID := range terms {
		for _, record := range ctx.Store.ByTerm(termID) {
			out = append(out, Violation{AnnotationID: record.ID, RuleCode: ruleCode})
		}
	}
	return out
}
