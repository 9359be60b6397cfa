package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/annot"
)

func TestStaleIEARule(t *testing.T) {
	old := row("P1", termVisualPerception, "IEA")
	old.Date = "20200101"

	yesterday := row("P2", termVisualPerception, "IEA")
	yesterday.Date = "20260830"

	oldButCurated := row("P3", termVisualPerception, "IMP")
	oldButCurated.Date = "20200101"

	undated := row("P4", termVisualPerception, "IEA")
	undated.Date = ""

	ctx := fixtureContext(t, []annot.Row{old, yesterday, oldButCurated, undated})
	violations, err := (&StaleIEARule{}).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, violationIDs(violations), "only the year-old IEA is flagged")
}

func TestNegatedProteinBindingRule(t *testing.T) {
	negatedBinding := row("P1", "GO:0005515", "IPI")
	negatedBinding.Qualifier = "NOT|enables"
	negatedBinding.WithFrom = "UniProtKB:P99"

	plainBinding := row("P2", "GO:0005515", "IPI")
	plainBinding.WithFrom = "UniProtKB:P99"

	negatedElsewhere := row("P3", termVisualPerception, "IMP")
	negatedElsewhere.Qualifier = "NOT"

	ctx := fixtureContext(t, []annot.Row{negatedBinding, plainBinding, negatedElsewhere})
	violations, err := (&NegatedProteinBindingRule{}).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, violationIDs(violations))
}

func TestWithFromRules(t *testing.T) {
	icBare := row("P1", termVisualPerception, "IC")
	icFilled := row("P2", termVisualPerception, "IC")
	icFilled.WithFrom = "GO:0007602"
	ipiBare := row("P3", termVisualPerception, "IPI")

	ctx := fixtureContext(t, []annot.Row{icBare, icFilled, ipiBare})

	icViolations, err := (&ICWithFromRule{}).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, violationIDs(icViolations))

	ipiViolations, err := (&IPIWithFromRule{}).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, violationIDs(ipiViolations))
}
