package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/annot"
)

func TestRedundantAnnotationRule(t *testing.T) {
	testCases := []struct {
		name       string
		childRef   string
		childGene  string
		childTerm  string
		expectedID []int
	}{
		{
			name:       "different reference on descendant term flags the parent annotation",
			childRef:   "PMID:200",
			childGene:  "G1",
			childTerm:  termVisualPerception,
			expectedID: []int{0},
		},
		{
			name:      "same reference is non-competing",
			childRef:  "PMID:100",
			childGene: "G1",
			childTerm: termVisualPerception,
		},
		{
			name:      "different gene product never competes",
			childRef:  "PMID:200",
			childGene: "G2",
			childTerm: termVisualPerception,
		},
		{
			name:      "equal term is a duplicate, not a refinement",
			childRef:  "PMID:200",
			childGene: "G1",
			childTerm: termSensoryPercept,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parent := row("G1", termSensoryPercept, "IDA")
			parent.References = "PMID:100"

			child := row(tc.childGene, tc.childTerm, "IDA")
			child.References = tc.childRef

			ctx := fixtureContext(t, []annot.Row{parent, child})
			violations, err := (&RedundantAnnotationRule{}).Evaluate(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, violationIDs(violations))
		})
	}
}

func TestRedundantAnnotationIgnoresNegatedPartners(t *testing.T) {
	parent := row("G1", termSensoryPercept, "IDA")
	parent.References = "PMID:100"

	negatedChild := row("G1", termVisualPerception, "IDA")
	negatedChild.References = "PMID:200"
	negatedChild.Qualifier = "NOT"

	ctx := fixtureContext(t, []annot.Row{parent, negatedChild})
	violations, err := (&RedundantAnnotationRule{}).Evaluate(ctx)
	require.NoError(t, err)
	assert.Nil(t, violationIDs(violations), "a NOT annotation does not subsume anything")
}

func TestRedundantAnnotationSetSemantics(t *testing.T) {
	// several distinct refining partners still produce one violation
	parent := row("G1", termSensoryPercept, "IDA")
	parent.References = "PMID:100"

	childA := row("G1", termVisualPerception, "IDA")
	childA.References = "PMID:200"
	childB := row("G1", termVisualPerception, "IMP")
	childB.References = "PMID:300"

	ctx := fixtureContext(t, []annot.Row{parent, childA, childB})
	violations, err := (&RedundantAnnotationRule{}).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, violationIDs(violations))
}
