package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/annot"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()
	assert.Equal(t, 11, registry.Len())

	// sorted by code, unique
	ruleList := registry.Rules()
	for i := 1; i < len(ruleList); i++ {
		assert.Less(t, ruleList[i-1].Code(), ruleList[i].Code())
	}

	rule, err := registry.Get("GORULE:0000029")
	require.NoError(t, err)
	assert.Equal(t, KindLocal, rule.Kind())

	_, err = registry.Get("GORULE:9999999")
	assert.Error(t, err)
}

func TestRegistryRejectsDuplicateCodes(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&StaleIEARule{}))
	assert.Error(t, registry.Register(&StaleIEARule{}))
}

func TestEvaluateAll(t *testing.T) {
	staleIEA := row("P1", termVisualPerception, "IEA")
	staleIEA.Date = "20200101"

	// violates both the obsolete-term rule and the stale-IEA rule
	doubleOffender := row("P2", termObsolete, "IEA")
	doubleOffender.Date = "20190101"

	clean := row("P3", termVisualPerception, "IDA")

	ctx := fixtureContext(t, []annot.Row{staleIEA, doubleOffender, clean})

	report, err := EvaluateAll(DefaultRegistry(), ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, []Violation{
		{AnnotationID: 1, RuleCode: "GORULE:0000014"},
		{AnnotationID: 0, RuleCode: "GORULE:0000029"},
		{AnnotationID: 1, RuleCode: "GORULE:0000029"},
	}, report.Violations)

	// externally-dependent rules surface as markers, never as omissions
	assert.ElementsMatch(t, []string{"GORULE:0000013", "GORULE:0000022"}, report.NotEvaluable())

	// one status per rule that ran or was marked
	assert.Len(t, report.Statuses, DefaultRegistry().Len())
}

func TestEvaluateAllNeverDuplicatesPairs(t *testing.T) {
	rows := []annot.Row{}
	stale := row("P1", termObsolete, "IEA")
	stale.Date = "20200101"
	for i := 0; i < 3; i++ {
		rows = append(rows, stale)
	}
	ctx := fixtureContext(t, rows)

	report, err := EvaluateAll(DefaultRegistry(), ctx, nil)
	require.NoError(t, err)

	seen := make(map[Violation]bool)
	for _, v := range report.Violations {
		assert.False(t, seen[v], "duplicate violation %+v", v)
		seen[v] = true
	}
}

// TestEvaluateAllIsOrderIndependent runs the pass twice and expects
// identical reports: rules share no mutable scratch state.
func TestEvaluateAllIsOrderIndependent(t *testing.T) {
	stale := row("P1", termObsolete, "IEA")
	stale.Date = "20200101"
	ctx := fixtureContext(t, []annot.Row{stale, row("P2", termKinaseActivity, "IPI")})

	first, err := EvaluateAll(DefaultRegistry(), ctx, nil)
	require.NoError(t, err)
	second, err := EvaluateAll(DefaultRegistry(), ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Violations, second.Violations)
	assert.ElementsMatch(t, first.NotEvaluable(), second.NotEvaluable())
}
