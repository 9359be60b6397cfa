package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/ontology"
)

// evaluationTime anchors the date-threshold tests.
var evaluationTime = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

const (
	termKinaseActivity   = "GO:0016301"
	termVisualPerception = "GO:0007601"
	termSensoryPercept   = "GO:0007600"
	termObsolete         = "GO:0000001"
	termBlocked          = "GO:0000002"
	termOrphan           = "GO:0009999"
)

// fixtureGraph builds a small two-aspect ontology:
//
//	MF root <- binding <- protein binding
//	MF root <- catalytic activity <- kinase activity
//	BP root <- sensory perception <- visual perception
//	obsolete term, do-not-annotate term, orphan term
func fixtureGraph(t *testing.T) *ontology.Graph {
	t.Helper()
	g := ontology.NewGraph()
	err := g.Load(
		[]ontology.Edge{
			{Subject: "GO:0005488", Predicate: ontology.PredicateIsA, Object: ontology.RootMolecularFunction},
			{Subject: ontology.TermProteinBinding, Predicate: ontology.PredicateIsA, Object: "GO:0005488"},
			{Subject: ontology.TermCatalyticActivity, Predicate: ontology.PredicateIsA, Object: ontology.RootMolecularFunction},
			{Subject: termKinaseActivity, Predicate: ontology.PredicateIsA, Object: ontology.TermCatalyticActivity},
			{Subject: termSensoryPercept, Predicate: ontology.PredicateIsA, Object: ontology.RootBiologicalProcess},
			{Subject: termVisualPerception, Predicate: ontology.PredicateIsA, Object: termSensoryPercept},
			{Subject: termBlocked, Predicate: ontology.PredicateIsA, Object: ontology.RootBiologicalProcess},
		},
		[]ontology.Term{
			{ID: ontology.RootMolecularFunction, Label: "molecular_function"},
			{ID: ontology.RootBiologicalProcess, Label: "biological_process"},
			{ID: "GO:0005488", Label: "binding"},
			{ID: ontology.TermProteinBinding, Label: "protein binding"},
			{ID: ontology.TermCatalyticActivity, Label: "catalytic activity"},
			{ID: termKinaseActivity, Label: "kinase activity"},
			{ID: termSensoryPercept, Label: "sensory perception"},
			{ID: termVisualPerception, Label: "visual perception"},
			{ID: termObsolete, Label: "obsolete thing", Obsolete: true},
			{ID: termBlocked, Label: "uninformative", Subsets: []string{ontology.SubsetDoNotAnnotate}},
			{ID: termOrphan, Label: "floating term"},
		},
	)
	require.NoError(t, err)
	return g
}

// fixtureContext wires graph, closure, and the given annotation rows into
// an evaluation snapshot. External tables stay nil unless a test sets them.
func fixtureContext(t *testing.T, rows []annot.Row) *Context {
	t.Helper()
	g := fixtureGraph(t)
	relation, err := closure.Build(g, closure.IsAPartOf, nil)
	require.NoError(t, err)

	store, result := annot.Load(rows, nil)
	require.Zero(t, result.Skipped, "fixture rows must all load")

	return &Context{
		Store:    store,
		Ontology: g,
		Closures: map[string]*closure.Relation{closure.IsAPartOf.Name: relation},
		Now:      evaluationTime,
	}
}

func row(object, term, evidence string) annot.Row {
	return annot.Row{
		DB:           "UniProtKB",
		DBObjectID:   object,
		TermID:       term,
		EvidenceCode: evidence,
		References:   "PMID:100",
		Taxon:        "taxon:9606",
		Aspect:       "P",
		Date:         "20260801",
	}
}

func violationIDs(violations []Violation) []int {
	if len(violations) == 0 {
		return nil
	}
	out := make([]int, len(violations))
	for i, v := range violations {
		out[i] = v.AnnotationID
	}
	return out
}
