package annot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() Row {
	return Row{
		DB:           "MGI",
		DBObjectID:   "MGI:97490",
		Symbol:       "Pax6",
		Qualifier:    "NOT|involved_in",
		TermID:       "GO:0007601",
		References:   "PMID:12069591|GO_REF:0000024",
		EvidenceCode: "IMP",
		WithFrom:     "MGI:MGI:97490",
		Aspect:       "P",
		Taxon:        "taxon:10090|taxon:9606",
		Date:         "20240115",
		AssignedBy:   "MGI",
		Extensions:   "occurs_in(CL:0000540)",
	}
}

func TestLoadNormalizesRow(t *testing.T) {
	store, result := Load([]Row{validRow()}, nil)

	require.Equal(t, 1, result.Loaded)
	assert.Zero(t, result.Skipped)
	assert.NotEmpty(t, result.SessionID)

	record, err := store.Get(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"NOT", "involved_in"}, record.Qualifiers)
	assert.True(t, record.Negated)
	assert.Equal(t, []string{"PMID:12069591", "GO_REF:0000024"}, record.References)
	assert.Equal(t, "taxon:10090", record.Taxon)
	assert.Equal(t, "taxon:9606", record.InteractingTaxon)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(t, "MGI:MGI:97490", record.ObjectKey())
}

func TestNegationRequiresLeadingMarker(t *testing.T) {
	row := validRow()
	row.Qualifier = "involved_in|NOT"
	store, _ := Load([]Row{row}, nil)
	record, err := store.Get(0)
	require.NoError(t, err)
	assert.False(t, record.Negated, "NOT only negates as the first qualifier token")
}

func TestLoadSkipsRowsMissingMandatoryFields(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Row)
	}{
		{name: "missing term id", mutate: func(r *Row) { r.TermID = "" }},
		{name: "missing object id", mutate: func(r *Row) { r.DBObjectID = "" }},
		{name: "missing evidence code", mutate: func(r *Row) { r.EvidenceCode = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bad := validRow()
			tc.mutate(&bad)
			store, result := Load([]Row{validRow(), bad, validRow()}, nil)

			assert.Equal(t, 2, result.Loaded)
			assert.Equal(t, 1, result.Skipped)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "schema violation")
			assert.Equal(t, 2, store.Count())
		})
	}
}

func TestSurrogateIDsAreDensePerSession(t *testing.T) {
	rows := []Row{validRow(), validRow(), validRow()}
	store, _ := Load(rows, nil)

	for i, record := range store.All() {
		assert.Equal(t, i, record.ID)
	}

	// a reload is a fresh session with its own counter and id
	reloaded, result := Load(rows, nil)
	assert.NotEqual(t, store.SessionID(), result.SessionID)
	assert.Equal(t, 0, reloaded.All()[0].ID)
}

func TestRestoreKeepsStoredSessionAndIDs(t *testing.T) {
	other := validRow()
	other.DBObjectID = "MGI:88276"
	// ids 0 and 7: persistence gaps must survive a restore untouched
	stored := []StoredRow{
		{ID: 0, Row: validRow()},
		{ID: 7, Row: other},
	}

	store, result := Restore("session-42", stored, nil)
	require.Equal(t, 2, result.Loaded)
	assert.Equal(t, "session-42", store.SessionID())
	assert.Equal(t, "session-42", result.SessionID)

	record, err := store.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "MGI:88276", record.DBObjectID)

	_, err = store.Get(1)
	assert.Error(t, err)
}

func TestRestoreSkipsMalformedStoredRows(t *testing.T) {
	bad := validRow()
	bad.EvidenceCode = ""

	store, result := Restore("session-42", []StoredRow{
		{ID: 0, Row: validRow()},
		{ID: 1, Row: bad},
	}, nil)

	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, store.Count())
}

func TestIndexesTolerateDuplicates(t *testing.T) {
	// identical annotations from different pipelines are expected; dedup
	// is explicit in rule logic, never implicit in the store
	store, result := Load([]Row{validRow(), validRow()}, nil)
	require.Equal(t, 2, result.Loaded)

	assert.Len(t, store.ByTerm("GO:0007601"), 2)
	assert.Len(t, store.ByObject("MGI:MGI:97490"), 2)
	assert.Empty(t, store.ByTerm("GO:0000000"))
}

func TestMalformedDateYieldsZeroTime(t *testing.T) {
	row := validRow()
	row.Date = "2024-01-15"
	store, _ := Load([]Row{row}, nil)
	record, err := store.Get(0)
	require.NoError(t, err)
	assert.True(t, record.Date.IsZero())
}

func TestSharesReference(t *testing.T) {
	a := &Record{References: []string{"PMID:1", "PMID:2"}}
	b := &Record{References: []string{"PMID:2"}}
	c := &Record{References: []string{"PMID:3"}}

	assert.True(t, a.SharesReference(b))
	assert.False(t, a.SharesReference(c))
	assert.False(t, c.SharesReference(&Record{}))
}
