package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/ontology"
)

// GO:0007601 (visual perception) is_a GO:0007600 (sensory perception)
// is_a GO:0008150 (biological_process)
func analyzerFixture(t *testing.T, rows []annot.Row) *Analyzer {
	t.Helper()

	graph := ontology.NewGraph()
	err := graph.Load(
		[]ontology.Edge{
			{Subject: "GO:0007601", Predicate: ontology.PredicateIsA, Object: "GO:0007600"},
			{Subject: "GO:0007600", Predicate: ontology.PredicateIsA, Object: "GO:0008150"},
		},
		[]ontology.Term{
			{ID: "GO:0007601"}, {ID: "GO:0007600"}, {ID: "GO:0008150"},
		},
	)
	require.NoError(t, err)

	relation, err := closure.Build(graph, closure.IsAPartOf, nil)
	require.NoError(t, err)

	store, result := annot.Load(rows, nil)
	require.Zero(t, result.Skipped)

	return NewAnalyzer(store, relation, nil)
}

func row(objectID, termID, evidence, refs string) annot.Row {
	return annot.Row{
		DB:           "UniProtKB",
		DBObjectID:   objectID,
		TermID:       termID,
		EvidenceCode: evidence,
		References:   refs,
		Taxon:        "taxon:9606",
	}
}

func TestUniqueContributions(t *testing.T) {
	a := analyzerFixture(t, []annot.Row{
		// IEA at the general term, covered by a finer IDA from another ref
		row("P1", "GO:0007600", "IEA", "GO_REF:0000002"),
		row("P1", "GO:0007601", "IDA", "PMID:123"),
		// IEA with no finer partner anywhere
		row("P2", "GO:0007600", "IEA", "GO_REF:0000002"),
	})

	result := a.UniqueContributions(Config{EvidenceType: "IEA"})
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "P2", result.Records[0].DBObjectID)
}

func TestUniqueContributionsSameReferenceNotRedundant(t *testing.T) {
	// the finer annotation comes from the same reference, so the broad one
	// still counts as a unique contribution
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007600", "IEA", "GO_REF:0000002"),
		row("P1", "GO:0007601", "IEA", "GO_REF:0000002"),
	})

	result := a.UniqueContributions(Config{EvidenceType: "IEA"})
	assert.Equal(t, 2, result.Count)
}

func TestUniqueContributionsSameTermNotRedundant(t *testing.T) {
	// closure has no reflexive rows, so an equal-term partner from a
	// different reference does not shadow the candidate
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007600", "IEA", "GO_REF:0000002"),
		row("P1", "GO:0007600", "IDA", "PMID:123"),
	})

	result := a.UniqueContributions(Config{EvidenceType: "IEA"})
	assert.Equal(t, 1, result.Count)
}

func TestUniqueContributionsComparatorReferences(t *testing.T) {
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007600", "IEA", "GO_REF:0000002"),
		row("P1", "GO:0007601", "IDA", "PMID:123"),
	})

	// partner reference not in the comparator set: candidate stays unique
	result := a.UniqueContributions(Config{
		EvidenceType:         "IEA",
		ComparatorReferences: []string{"PMID:999"},
	})
	assert.Equal(t, 1, result.Count)

	// partner reference in the comparator set: candidate is redundant
	result = a.UniqueContributions(Config{
		EvidenceType:         "IEA",
		ComparatorReferences: []string{"PMID:123"},
	})
	assert.Equal(t, 0, result.Count)
}

func TestFindRedundantReferences(t *testing.T) {
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007600", "IEA", "GO_REF:0000002"),
		row("P1", "GO:0007601", "IDA", "PMID:123"),
		row("P2", "GO:0007600", "IEA", "GO_REF:0000002"),
	})

	result := a.FindRedundantReferences("GO_REF:0000002", "IEA")
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "P1", result.Records[0].DBObjectID)
}

func TestSummaryGroupsByEvidenceAndReference(t *testing.T) {
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007601", "IDA", "PMID:123"),
		row("P2", "GO:0007601", "IDA", "PMID:123"),
		row("P3", "GO:0007600", "IEA", "GO_REF:0000002"),
	})

	summary := a.Summary(Config{})
	require.Equal(t, 3, summary.TotalUnique)
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, SummaryRow{EvidenceType: "IDA", References: "PMID:123", Count: 2}, summary.Rows[0])
	assert.Equal(t, SummaryRow{EvidenceType: "IEA", References: "GO_REF:0000002", Count: 1}, summary.Rows[1])
}

func TestCompareReferenceSets(t *testing.T) {
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007601", "IEA", "GO_REF:0000002"), // both sets cover this pair
		row("P1", "GO:0007601", "IDA", "PMID:123"),
		row("P2", "GO:0007600", "IEA", "GO_REF:0000002"), // set1 only
		row("P3", "GO:0007600", "IDA", "PMID:123"),       // set2 only
	})

	comparison := a.CompareReferenceSets([]string{"GO_REF:0000002"}, []string{"PMID:123"}, "")
	assert.Equal(t, 1, comparison.Overlap)
	assert.Equal(t, 1, comparison.UniqueToSet1)
	assert.Equal(t, 1, comparison.UniqueToSet2)
	assert.Equal(t, 2, comparison.TotalSet1)
	assert.Equal(t, 2, comparison.TotalSet2)
}

func TestCompareReferenceSetsEvidenceFilter(t *testing.T) {
	a := analyzerFixture(t, []annot.Row{
		row("P1", "GO:0007601", "IEA", "GO_REF:0000002"),
		row("P1", "GO:0007601", "IDA", "PMID:123"),
	})

	comparison := a.CompareReferenceSets([]string{"GO_REF:0000002"}, []string{"PMID:123"}, "IEA")
	assert.Equal(t, 1, comparison.UniqueToSet1)
	assert.Equal(t, 0, comparison.Overlap)
	assert.Equal(t, 0, comparison.UniqueToSet2)
}
