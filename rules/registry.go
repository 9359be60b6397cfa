package rules

import (
	"sort"

	"github.com/cmungall/go-db/errors"
)

// Registry holds the known rules keyed by code.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule; a duplicate code is a programming error.
func (r *Registry) Register(rule Rule) error {
	if _, exists := r.rules[rule.Code()]; exists {
		return errors.AssertionFailedf("rule %s registered twice", rule.Code())
	}
	r.rules[rule.Code()] = rule
	return nil
}

// MustRegister registers or panics; used for the package-level default set.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Get returns the rule with the given code.
func (r *Registry) Get(code string) (Rule, error) {
	rule, ok := r.rules[code]
	if !ok {
		return nil, errors.NewNotFoundError("rule %s", code)
	}
	return rule, nil
}

// Rules returns all registered rules sorted by code.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// DefaultRegistry returns the standard GO rule set.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(&IPICatalyticActivityRule{})
	r.MustRegister(&DoNotAnnotateRule{})
	r.MustRegister(&NegatedProteinBindingRule{})
	r.MustRegister(&TaxonConstraintRule{})
	r.MustRegister(&ObsoleteTermRule{})
	r.MustRegister(&ICWithFromRule{})
	r.MustRegister(&IPIWithFromRule{})
	r.MustRegister(&RetractedReferenceRule{})
	r.MustRegister(&StaleIEARule{})
	r.MustRegister(&RedundantAnnotationRule{})
	r.MustRegister(&OrphanTermRule{})
	return r
}
