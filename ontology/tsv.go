package ontology

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/cmungall/go-db/errors"
)

// Tab-separated graph ingest, shaped like the statement dumps produced by
// semsql-style ontology builds: one row per term or per asserted edge.

// ReadTermsFile reads term metadata rows from a TSV file with columns
// id, label, obsolete, subsets, xrefs. Columns beyond id are optional;
// subsets and xrefs are pipe-separated. Lines starting with '#' are skipped.
func ReadTermsFile(path string) ([]Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open terms file %s", path)
	}
	defer f.Close()

	reader, closer, err := maybeGzip(f, path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	var terms []Term
	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		columns := strings.Split(line, "\t")
		if columns[0] == "" {
			return nil, errors.NewMalformedGraphError("%s line %d: empty term id", path, lineNo)
		}
		term := Term{ID: columns[0]}
		if len(columns) > 1 {
			term.Label = columns[1]
		}
		if len(columns) > 2 {
			term.Obsolete = columns[2] == "1" || strings.EqualFold(columns[2], "true")
		}
		if len(columns) > 3 && columns[3] != "" {
			term.Subsets = strings.Split(columns[3], "|")
		}
		if len(columns) > 4 && columns[4] != "" {
			term.Xrefs = strings.Split(columns[4], "|")
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read terms file %s", path)
	}
	return terms, nil
}

// ReadEdgesFile reads asserted edges from a TSV file with columns
// subject, predicate, object. Lines starting with '#' are skipped.
func ReadEdgesFile(path string) ([]Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open edges file %s", path)
	}
	defer f.Close()

	reader, closer, err := maybeGzip(f, path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	var edges []Edge
	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		columns := strings.Split(line, "\t")
		if len(columns) < 3 {
			return nil, errors.NewMalformedGraphError("%s line %d: expected 3 columns, got %d", path, lineNo, len(columns))
		}
		edges = append(edges, Edge{
			Subject:   columns[0],
			Predicate: columns[1],
			Object:    columns[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read edges file %s", path)
	}
	return edges, nil
}

func maybeGzip(f *os.File, path string) (io.Reader, io.Closer, error) {
	if !strings.HasSuffix(path, ".gz") {
		return f, nil, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open gzip %s", path)
	}
	return gz, gz, nil
}
