// Package closure computes and indexes transitive closures over
// predicate-restricted subsets of the ontology graph. One relation is built
// per named policy; relations are immutable once built and safe for
// concurrent reads.
package closure

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cmungall/go-db/errors"
	"github.com/cmungall/go-db/ontology"
)

// Policy names one predicate subset to close over. The same generic
// algorithm runs for every policy; only the edge restriction differs.
type Policy struct {
	Name       string
	Predicates ontology.PredicateSet
}

// The standard closure policies. Taxonomic and evidence-hierarchy closures
// run the same is-a restriction against their own graphs (NCBI taxonomy,
// ECO), loaded as separate ontology.Graph instances.
var (
	IsAPartOf = Policy{
		Name: "isa_partof",
		Predicates: ontology.NewPredicateSet(
			ontology.PredicateIsA,
			ontology.PredicatePartOf,
		),
	}

	Regulates = Policy{
		Name: "regulates",
		Predicates: ontology.NewPredicateSet(
			ontology.PredicateRegulates,
			ontology.PredicateNegativelyRegulates,
			ontology.PredicatePositivelyRegulates,
		),
	}

	Taxonomic = Policy{
		Name:       "taxon",
		Predicates: ontology.NewPredicateSet(ontology.PredicateIsA),
	}

	EvidenceHierarchy = Policy{
		Name:       "evidence",
		Predicates: ontology.NewPredicateSet(ontology.PredicateIsA),
	}
)

// PolicyByName resolves a policy from its configured name.
func PolicyByName(name string) (Policy, error) {
	for _, policy := range []Policy{IsAPartOf, Regulates, Taxonomic, EvidenceHierarchy} {
		if policy.Name == name {
			return policy, nil
		}
	}
	return Policy{}, errors.Wrapf(errors.ErrNotFound, "unknown closure policy %q", name)
}

// Pair is one (subject, object) entry of a closure relation: object is
// reachable from subject via one or more restricted edges.
type Pair struct {
	Subject string
	Object  string
}

// Relation is a fully materialized transitive closure, indexed in both
// directions. Reflexive entries are excluded unless a genuine cycle makes a
// term reachable from itself via a nontrivial path.
type Relation struct {
	policy      Policy
	ancestors   map[string]map[string]bool // subject -> reachable objects
	descendants map[string]map[string]bool // object -> subjects reaching it
	size        int
	cyclic      bool
}

// Policy returns the policy this relation was built under.
func (r *Relation) Policy() Policy {
	return r.policy
}

// Contains reports whether (subject, object) is in the relation.
func (r *Relation) Contains(subject, object string) bool {
	return r.ancestors[subject][object]
}

// Ancestors returns all objects reachable from subject. No ordering guarantee.
func (r *Relation) Ancestors(subject string) []string {
	return keys(r.ancestors[subject])
}

// Descendants returns all subjects that reach object. No ordering guarantee.
func (r *Relation) Descendants(object string) []string {
	return keys(r.descendants[object])
}

// Size returns the number of (subject, object) pairs.
func (r *Relation) Size() int {
	return r.size
}

// Cyclic reports whether any term was found reachable from itself. This is
// informational, never an error: part-of and regulates layers can
// legitimately cycle through distinct predicates.
func (r *Relation) Cyclic() bool {
	return r.cyclic
}

// Pairs enumerates the full relation, for materialization into storage.
// No ordering guarantee.
func (r *Relation) Pairs() []Pair {
	out := make([]Pair, 0, r.size)
	for subject, objects := range r.ancestors {
		for object := range objects {
			out = append(out, Pair{Subject: subject, Object: object})
		}
	}
	return out
}

// Build computes the transitive closure of the graph restricted to the
// policy's predicate subset, via breadth-first reachability from each
// subject. Rebuilding from the same edge set yields the same relation.
func Build(graph *ontology.Graph, policy Policy, log *zap.SugaredLogger) (*Relation, error) {
	for predicate := range policy.Predicates {
		if !ontology.KnownPredicate(predicate) {
			return nil, errors.NewMalformedGraphError(
				"closure policy %s references unrecognized predicate %q", policy.Name, predicate)
		}
	}

	adjacency := make(map[string][]string)
	for _, edge := range graph.EdgesByPredicate(policy.Predicates) {
		adjacency[edge.Subject] = append(adjacency[edge.Subject], edge.Object)
	}

	relation := &Relation{
		policy:      policy,
		ancestors:   make(map[string]map[string]bool, len(adjacency)),
		descendants: make(map[string]map[string]bool),
	}

	var queue []string
	for subject := range adjacency {
		reached := make(map[string]bool)
		queue = queue[:0]
		queue = append(queue, adjacency[subject]...)
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if reached[node] {
				continue
			}
			reached[node] = true
			queue = append(queue, adjacency[node]...)
		}

		// A subject in its own reached set means a nontrivial cycle;
		// the pair stays in the relation since the path length is >= 1.
		if reached[subject] {
			relation.cyclic = true
		}

		relation.ancestors[subject] = reached
		relation.size += len(reached)
		for object := range reached {
			if relation.descendants[object] == nil {
				relation.descendants[object] = make(map[string]bool)
			}
			relation.descendants[object][subject] = true
		}
	}

	if log != nil {
		log.Infow("Closure built",
			"policy", policy.Name,
			"pairs", relation.size,
			"subjects", len(relation.ancestors),
		)
		if relation.cyclic {
			log.Warnw("Cycle detected in closure; cycle members share identical ancestor sets",
				"policy", policy.Name,
			)
		}
	}

	return relation, nil
}

// BuildAll builds one relation per policy concurrently. Policies close over
// disjoint state, so each build runs independently; a malformed-graph
// failure aborts only its own policy and the rest still complete.
func BuildAll(graph *ontology.Graph, policies []Policy, log *zap.SugaredLogger) (map[string]*Relation, error) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		relations = make(map[string]*Relation, len(policies))
		errs      []error
	)

	for _, policy := range policies {
		wg.Add(1)
		go func(p Policy) {
			defer wg.Done()
			relation, err := Build(graph, p, log)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, errors.Wrapf(err, "policy %s", p.Name))
				return
			}
			relations[p.Name] = relation
		}(policy)
	}
	wg.Wait()

	if len(errs) > 0 {
		return relations, errors.Join(errs...)
	}
	return relations, nil
}

func keys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
