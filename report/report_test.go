package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/rules"
)

func TestSummarize(t *testing.T) {
	store, result := annot.Load([]annot.Row{
		{DB: "MGI", DBObjectID: "M1", TermID: "GO:1", EvidenceCode: "IEA", Taxon: "taxon:10090"},
		{DB: "MGI", DBObjectID: "M2", TermID: "GO:2", EvidenceCode: "IDA", Taxon: "taxon:10090"},
		{DB: "UniProtKB", DBObjectID: "P1", TermID: "GO:3", EvidenceCode: "IEA", Taxon: "taxon:9606"},
	}, nil)
	require.Equal(t, 3, result.Loaded)

	evaluation := &rules.Report{
		Violations: []rules.Violation{
			{AnnotationID: 0, RuleCode: "GORULE:0000029"},
			{AnnotationID: 2, RuleCode: "GORULE:0000029"},
			{AnnotationID: 0, RuleCode: "GORULE:0000014"},
		},
		Statuses: []rules.Status{
			{RuleCode: "GORULE:0000014", Title: "no obsolete terms", Kind: rules.KindTermMembership, Violations: 1},
			{RuleCode: "GORULE:0000029", Title: "stale IEA", Kind: rules.KindLocal, Violations: 2},
			{RuleCode: "GORULE:0000022", Title: "retracted refs", Kind: rules.KindExternal, NotEvaluable: true, Reason: "list not supplied"},
		},
	}

	summary := Summarize(evaluation, store)

	assert.Equal(t, 3, summary.TotalAnnotations)
	assert.Equal(t, 3, summary.TotalViolations)
	assert.Equal(t, map[string]int{"GORULE:0000029": 2, "GORULE:0000014": 1}, summary.ViolationsByRule)
	assert.Equal(t, map[string]int{"taxon:10090": 2, "taxon:9606": 1}, summary.ViolationsByTaxon)
	assert.Equal(t, map[string]int{"IEA": 3}, summary.ViolationsByEvidence)
	assert.Equal(t, []string{"GORULE:0000022"}, summary.NotEvaluable)
}

func TestSummaryWriteListsNotEvaluable(t *testing.T) {
	summary := &Summary{
		TotalAnnotations: 1,
		Statuses: []rules.Status{
			{RuleCode: "GORULE:0000022", NotEvaluable: true, Reason: "list not supplied"},
		},
		ViolationsByRule:     map[string]int{},
		ViolationsByTaxon:    map[string]int{},
		ViolationsByEvidence: map[string]int{},
	}

	var buf bytes.Buffer
	require.NoError(t, summary.Write(&buf))
	assert.Contains(t, buf.String(), "NOT EVALUABLE")
	assert.Contains(t, buf.String(), "GORULE:0000022")
}

func TestSummarizeRollup(t *testing.T) {
	records := []*annot.Record{
		{EvidenceCode: "IEA", Taxon: "taxon:9606", Aspect: "P"},
		{EvidenceCode: "IEA", Taxon: "taxon:10090", Aspect: "P"},
		{EvidenceCode: "IDA", Taxon: "taxon:9606", Aspect: "F"},
	}
	counts := SummarizeRollup(records)

	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 2, counts.ByEvidence["IEA"])
	assert.Equal(t, 2, counts.ByTaxon["taxon:9606"])
	assert.Equal(t, 2, counts.ByAspect["P"])
}
