// Package ontology provides the in-memory graph store for ontology terms and
// typed edges. The store is loaded once per session from a semsql-style edge
// and term stream and is immutable afterwards; closure builds and rule
// evaluation read it concurrently without locking.
package ontology

import (
	"github.com/cmungall/go-db/errors"
)

// Edge predicates recognized by the graph store, as semsql CURIEs.
const (
	PredicateIsA                 = "rdfs:subClassOf"
	PredicatePartOf              = "BFO:0000050"
	PredicateRegulates           = "RO:0002211"
	PredicateNegativelyRegulates = "RO:0002212"
	PredicatePositivelyRegulates = "RO:0002213"
	PredicateOccursIn            = "BFO:0000066"
)

// Ontology root terms. Annotations directly to a root carry no information
// beyond the aspect, which several rules care about.
const (
	RootBiologicalProcess = "GO:0008150"
	RootMolecularFunction = "GO:0003674"
	RootCellularComponent = "GO:0005575"
	TermProteinBinding    = "GO:0005515"
	TermCatalyticActivity = "GO:0003824"
)

// SubsetDoNotAnnotate marks terms curators must never annotate to directly.
const SubsetDoNotAnnotate = "gocheck_do_not_annotate"

// knownPredicates is the closed vocabulary accepted by Load.
var knownPredicates = map[string]bool{
	PredicateIsA:                 true,
	PredicatePartOf:              true,
	PredicateRegulates:           true,
	PredicateNegativelyRegulates: true,
	PredicatePositivelyRegulates: true,
	PredicateOccursIn:            true,
}

// KnownPredicate reports whether the predicate is in the recognized vocabulary.
func KnownPredicate(predicate string) bool {
	return knownPredicates[predicate]
}

// Term holds the metadata row for one ontology class.
type Term struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Obsolete bool     `json:"obsolete"`
	Xrefs    []string `json:"xrefs,omitempty"`
	Subsets  []string `json:"subsets,omitempty"`
}

// InSubset reports whether the term carries the named subset tag.
func (t *Term) InSubset(subset string) bool {
	for _, s := range t.Subsets {
		if s == subset {
			return true
		}
	}
	return false
}

// Edge is one directed, labeled relationship between two terms.
type Edge struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// PredicateSet selects a subset of edge predicates for closure traversal.
type PredicateSet map[string]bool

// NewPredicateSet builds a set from the given predicates.
func NewPredicateSet(predicates ...string) PredicateSet {
	set := make(PredicateSet, len(predicates))
	for _, p := range predicates {
		set[p] = true
	}
	return set
}

// Has reports membership.
func (ps PredicateSet) Has(predicate string) bool {
	return ps[predicate]
}

// Graph is the loaded ontology: the typed edge set plus term metadata.
// Immutable after Load.
type Graph struct {
	edges       []Edge
	byPredicate map[string][]Edge
	terms       map[string]*Term
}

// NewGraph returns an empty graph store.
func NewGraph() *Graph {
	return &Graph{
		byPredicate: make(map[string][]Edge),
		terms:       make(map[string]*Term),
	}
}

// Load ingests the edge list and term metadata list. It fails with a
// malformed-graph error if an edge references a predicate outside the
// recognized vocabulary, or if a term id appears twice with conflicting
// metadata. Identical duplicate term rows are tolerated (merged ontology
// sources re-state shared terms).
func (g *Graph) Load(edges []Edge, terms []Term) error {
	for i := range terms {
		term := terms[i]
		if existing, ok := g.terms[term.ID]; ok {
			if !sameTermMetadata(existing, &term) {
				return errors.NewMalformedGraphError(
					"term %s loaded with conflicting metadata (label %q vs %q)",
					term.ID, existing.Label, term.Label)
			}
			continue
		}
		g.terms[term.ID] = &term
	}

	for _, edge := range edges {
		if !KnownPredicate(edge.Predicate) {
			return errors.NewMalformedGraphError(
				"edge %s -> %s uses unrecognized predicate %q",
				edge.Subject, edge.Object, edge.Predicate)
		}
		g.edges = append(g.edges, edge)
		g.byPredicate[edge.Predicate] = append(g.byPredicate[edge.Predicate], edge)
	}
	return nil
}

// EdgesByPredicate returns all edges whose predicate is in the set.
// No ordering guarantee; callers must not assume sort order.
func (g *Graph) EdgesByPredicate(set PredicateSet) []Edge {
	var out []Edge
	for predicate := range set {
		out = append(out, g.byPredicate[predicate]...)
	}
	return out
}

// TermMetadata returns the metadata for the given term id, or a not-found
// error if the id was never loaded.
func (g *Graph) TermMetadata(id string) (*Term, error) {
	term, ok := g.terms[id]
	if !ok {
		return nil, errors.NewNotFoundError("term %s", id)
	}
	return term, nil
}

// Terms returns all loaded terms. No ordering guarantee.
func (g *Graph) Terms() []*Term {
	out := make([]*Term, 0, len(g.terms))
	for _, term := range g.terms {
		out = append(out, term)
	}
	return out
}

// Edges returns the full edge list. No ordering guarantee.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// EdgeCount returns the number of loaded edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// TermCount returns the number of loaded terms.
func (g *Graph) TermCount() int {
	return len(g.terms)
}

func sameTermMetadata(a, b *Term) bool {
	if a.Label != b.Label || a.Obsolete != b.Obsolete {
		return false
	}
	if len(a.Xrefs) != len(b.Xrefs) || len(a.Subsets) != len(b.Subsets) {
		return false
	}
	for i := range a.Xrefs {
		if a.Xrefs[i] != b.Xrefs[i] {
			return false
		}
	}
	for i := range a.Subsets {
		if a.Subsets[i] != b.Subsets[i] {
			return false
		}
	}
	return true
}
