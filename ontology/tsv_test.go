package ontology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmungall/go-db/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTermsFile(t *testing.T) {
	path := writeFile(t, "terms.tsv",
		"# id\tlabel\tobsolete\tsubsets\txrefs\n"+
			"GO:0008150\tbiological_process\t0\t\t\n"+
			"GO:0000001\tobsolete mitochondrion inheritance\t1\t\t\n"+
			"GO:0005575\tcellular_component\tfalse\tgoslim_generic|goslim_plant\tWikipedia:Cellular_component\n"+
			"GO:0003674\n")

	terms, err := ReadTermsFile(path)
	require.NoError(t, err)
	require.Len(t, terms, 4)

	assert.Equal(t, "biological_process", terms[0].Label)
	assert.False(t, terms[0].Obsolete)
	assert.True(t, terms[1].Obsolete)
	assert.Equal(t, []string{"goslim_generic", "goslim_plant"}, terms[2].Subsets)
	assert.Equal(t, []string{"Wikipedia:Cellular_component"}, terms[2].Xrefs)
	assert.Equal(t, Term{ID: "GO:0003674"}, terms[3])
}

func TestReadTermsFileEmptyID(t *testing.T) {
	path := writeFile(t, "terms.tsv", "\tno id here\n")
	_, err := ReadTermsFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedGraphError(err))
}

func TestReadEdgesFile(t *testing.T) {
	path := writeFile(t, "edges.tsv",
		"# subject\tpredicate\tobject\n"+
			"GO:0007601\trdfs:subClassOf\tGO:0007600\n"+
			"GO:0031090\tBFO:0000050\tGO:0043227\n")

	edges, err := ReadEdgesFile(path)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, Edge{Subject: "GO:0007601", Predicate: PredicateIsA, Object: "GO:0007600"}, edges[0])
	assert.Equal(t, PredicatePartOf, edges[1].Predicate)
}

func TestReadEdgesFileShortRow(t *testing.T) {
	path := writeFile(t, "edges.tsv", "GO:0007601\trdfs:subClassOf\n")
	_, err := ReadEdgesFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedGraphError(err))
}

func TestReadFilesMissing(t *testing.T) {
	_, err := ReadTermsFile(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.Error(t, err)
	_, err = ReadEdgesFile(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.Error(t, err)
}
