package gaf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cmungall/go-db/annot"
)

// Version is the GAF dialect this writer emits.
const Version = "2.2"

// Writer streams annotation records back out as a GAF file.
type Writer struct {
	w           io.Writer
	wroteHeader bool
	count       int
}

// NewWriter wraps an output stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader emits the GAF comment block. Called implicitly by the first
// WriteRecord if the caller did not.
func (gw *Writer) WriteHeader(generatedAt time.Time) error {
	if gw.wroteHeader {
		return nil
	}
	gw.wroteHeader = true
	_, err := fmt.Fprintf(gw.w,
		"!gaf-version: %s\n!generated-by: go-db\n!date-generated: %s\n!\n",
		Version, generatedAt.Format("2006-01-02"))
	return err
}

// WriteRecord emits one 17-column association line.
func (gw *Writer) WriteRecord(record *annot.Record) error {
	if !gw.wroteHeader {
		if err := gw.WriteHeader(time.Now()); err != nil {
			return err
		}
	}

	date := ""
	if !record.Date.IsZero() {
		date = record.Date.Format("20060102")
	}
	taxon := record.Taxon
	if record.InteractingTaxon != "" {
		taxon = taxon + annot.ListSeparator + record.InteractingTaxon
	}

	columns := []string{
		record.DB,
		record.DBObjectID,
		record.Symbol,
		joinList(record.Qualifiers),
		record.TermID,
		joinList(record.References),
		record.EvidenceCode,
		joinList(record.WithFrom),
		record.Aspect,
		record.ObjectName,
		joinList(record.Synonyms),
		record.ObjectType,
		taxon,
		date,
		record.AssignedBy,
		joinList(record.Extensions),
		record.GeneProductForm,
	}

	if _, err := fmt.Fprintln(gw.w, strings.Join(columns, "\t")); err != nil {
		return err
	}
	gw.count++
	return nil
}

// Count returns the number of association lines written.
func (gw *Writer) Count() int {
	return gw.count
}

func joinList(values []string) string {
	return strings.Join(values, annot.ListSeparator)
}
