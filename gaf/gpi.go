package gaf

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cmungall/go-db/errors"
)

// GPIVersion is the GPI dialect this reader accepts.
const GPIVersion = "1.2"

// Column layout of one GPI 1.2 entity line.
const gpiColumns = 10

// GPIEntry is one flattened GPI 1.2 gene product entity line. Multi-valued
// columns stay pipe-separated, matching the flat association rows.
type GPIEntry struct {
	DB             string // col 1
	DBObjectID     string // col 2
	Symbol         string // col 3
	ObjectName     string // col 4
	Synonyms       string // pipe-separated (col 5)
	ObjectType     string // col 6
	Taxon          string // col 7
	ParentObjectID string // encapsulating entity, e.g. the gene of an isoform (col 8)
	Xrefs          string // pipe-separated (col 9)
	Properties     string // pipe-separated key=value pairs (col 10)
}

// GPIReadResult reports what a GPI parse pass did with malformed lines.
type GPIReadResult struct {
	Entries []GPIEntry
	Skipped int
	Errors  []string
}

// ReadGPIFile parses a GPI file, transparently decompressing .gz sources.
func ReadGPIFile(path string, log *zap.SugaredLogger) (*GPIReadResult, error) {
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

	result, err := ReadGPI(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if log != nil {
		log.Infow("GPI source parsed",
			"path", path,
			"entries", len(result.Entries),
			"skipped", result.Skipped,
		)
	}
	return result, nil
}

// ReadGPI parses GPI 1.2 lines from a reader. Comment lines (leading '!')
// are skipped; lines without the 10-column layout are counted as skipped
// with an error entry, and parsing continues.
func ReadGPI(r io.Reader) (*GPIReadResult, error) {
	result := &GPIReadResult{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		columns := strings.Split(line, "\t")
		if len(columns) != gpiColumns {
			result.Skipped++
			result.Errors = append(result.Errors,
				errors.NewSchemaViolationError("line %d: %d columns", lineNo, len(columns)).Error())
			continue
		}
		if columns[0] == "" || columns[1] == "" {
			result.Skipped++
			result.Errors = append(result.Errors,
				errors.NewSchemaViolationError("line %d: missing object identifier", lineNo).Error())
			continue
		}

		result.Entries = append(result.Entries, GPIEntry{
			DB:             columns[0],
			DBObjectID:     columns[1],
			Symbol:         columns[2],
			ObjectName:     columns[3],
			Synonyms:       columns[4],
			ObjectType:     columns[5],
			Taxon:          columns[6],
			ParentObjectID: columns[7],
			Xrefs:          columns[8],
			Properties:     columns[9],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read GPI stream")
	}
	return result, nil
}

// IsGPISource reports whether a source path names a GPI file, gzipped or not.
func IsGPISource(path string) bool {
	return strings.HasSuffix(path, ".gpi") || strings.HasSuffix(path, ".gpi.gz")
}
