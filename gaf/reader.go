// Package gaf reads and writes GO annotation files in the tab-delimited
// GAF 2.2 layout: 17 columns, of which the last two are optional in older
// files. It is the ingestion collaborator feeding the annotation store;
// parsing stays here so the store only ever sees flat rows.
package gaf

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/errors"
)

// Column layout of one association line.
const (
	minColumns = 15
	maxColumns = 17
)

// ReadResult reports what a parse pass did with malformed lines.
type ReadResult struct {
	Rows    []annot.Row
	Skipped int
	Errors  []string
}

// ReadFile parses a GAF file, transparently decompressing .gz sources.
func ReadFile(path string, log *zap.SugaredLogger) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "decompress %s", path)
		}
		defer gz.Close()
		reader = gz
	}

	result, err := Read(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if log != nil {
		log.Infow("GAF source parsed",
			"path", path,
			"rows", len(result.Rows),
			"skipped", result.Skipped,
		)
	}
	return result, nil
}

// Read parses GAF lines from a reader. Comment lines (leading '!') are
// skipped; lines with a column count outside 15..17 are counted as skipped
// with an error entry, and parsing continues.
func Read(r io.Reader) (*ReadResult, error) {
	result := &ReadResult{}
	scanner := bufio.NewScanner(r)
	// association lines with long extension lists overflow the default buffer
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		columns := strings.Split(line, "\t")
		if len(columns) < minColumns || len(columns) > maxColumns {
			result.Skipped++
			result.Errors = append(result.Errors,
				errors.NewSchemaViolationError("line %d: %d columns", lineNo, len(columns)).Error())
			continue
		}

		result.Rows = append(result.Rows, rowFromColumns(columns))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read GAF stream")
	}
	return result, nil
}

func rowFromColumns(columns []string) annot.Row {
	col := func(i int) string {
		if i < len(columns) {
			return columns[i]
		}
		return ""
	}
	return annot.Row{
		DB:              col(0),
		DBObjectID:      col(1),
		Symbol:          col(2),
		Qualifier:       col(3),
		TermID:          col(4),
		References:      col(5),
		EvidenceCode:    col(6),
		WithFrom:        col(7),
		Aspect:          col(8),
		ObjectName:      col(9),
		Synonyms:        col(10),
		ObjectType:      col(11),
		Taxon:           col(12),
		Date:            col(13),
		AssignedBy:      col(14),
		Extensions:      col(15),
		GeneProductForm: col(16),
	}
}
