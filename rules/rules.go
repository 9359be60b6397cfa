// Package rules implements the annotation consistency rule engine: a
// registry of coded rules, each a pure predicate over an immutable snapshot
// of the annotation store, the closure relations, and term metadata.
//
// Rules are classified by evaluation shape. Local rules look at one record;
// term-membership rules test the record's term against a precomputed set or
// the closure; cross-record rules self-join the annotation set on the
// object key; externally-dependent rules need tables this core does not own
// and report not-evaluable when those are absent.
package rules

import (
	"time"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/errors"
	"github.com/cmungall/go-db/ontology"
)

// Kind classifies a rule by its evaluation shape.
type Kind string

const (
	KindLocal          Kind = "local"
	KindTermMembership Kind = "term-membership"
	KindCrossRecord    Kind = "cross-record"
	KindExternal       Kind = "externally-dependent"
)

// Violation links one annotation record to one rule it violates.
type Violation struct {
	AnnotationID int    `json:"annotation_id"`
	RuleCode     string `json:"rule_code"`
}

// TaxonConstraint restricts a term (and its descendants) to, or away from,
// a taxon subtree. Supplied externally; never assumed empty.
type TaxonConstraint struct {
	TermID    string
	TaxonID   string
	Exclusion bool // true: never_in_taxon, false: only_in_taxon
}

// Context is the immutable evaluation snapshot shared by all rules. Rules
// must not mutate it; there is no shared scratch state across rules, so
// evaluation order is irrelevant and rules dispatch in parallel.
type Context struct {
	Store    *annot.Store
	Ontology *ontology.Graph
	Closures map[string]*closure.Relation

	// Now anchors date-threshold rules; injected so tests are deterministic.
	Now time.Time

	// Externally-supplied tables. nil means "not provided" and makes the
	// dependent rules not-evaluable; an empty non-nil table means
	// "provided, and empty".
	RetractedReferences map[string]bool
	TaxonConstraints    []TaxonConstraint

	// TaxonClosure resolves taxon-constraint descendancy. Optional; only
	// consulted when TaxonConstraints is supplied.
	TaxonClosure *closure.Relation
}

// Closure returns the named closure relation, or a not-evaluable error when
// it was not built. Rules never reach around this accessor, so every
// failure leaving the engine stays classified.
func (ctx *Context) Closure(name string) (*closure.Relation, error) {
	relation, ok := ctx.Closures[name]
	if !ok || relation == nil {
		return nil, errors.NewNotEvaluableError("closure %s not built", name)
	}
	return relation, nil
}

// Rule is one coded consistency check. Evaluate returns the violating
// records, or a not-evaluable error when a required external dependency is
// absent. Implementations must be pure: same snapshot, same verdicts.
type Rule interface {
	// Code is the stable rule identifier, e.g. "GORULE:0000029".
	Code() string
	// Title says what the rule checks, for reports.
	Title() string
	// Kind is the evaluation-shape classification.
	Kind() Kind
	// Evaluate runs the rule over the full snapshot.
	Evaluate(ctx *Context) ([]Violation, error)
}
