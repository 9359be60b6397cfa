// Batch persistence for annotation records with per-row error tracking.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/db"
)

// PersistenceResult reports the outcome of a batch persist: how many records
// landed, how many failed, and the per-row error messages for reporting.
type PersistenceResult struct {
	PersistedCount int
	FailureCount   int
	SuccessRate    float64
	Errors         []string
}

// BatchPersister handles batch annotation persistence with error tracking
// and statistics.
type BatchPersister struct {
	db    *sql.DB
	store *SQLStore
}

// NewBatchPersister creates a new batch annotation persister.
func NewBatchPersister(db *sql.DB) *BatchPersister {
	return &BatchPersister{
		db:    db,
		store: NewSQLStore(db, nil),
	}
}

// PersistRecords writes the session's records to the gaf_association table.
// Each failure is recorded and persistence continues with the next record.
func (bp *BatchPersister) PersistRecords(sessionID string, records []*annot.Record) *PersistenceResult {
	result := &PersistenceResult{
		Errors: make([]string, 0),
	}

	if bp.db == nil {
		result.FailureCount = len(records)
		result.Errors = append(result.Errors, "database connection is nil")
		return result
	}

	for i, record := range records {
		if err := bp.insertRecord(sessionID, record); err != nil {
			result.FailureCount++
			errorMsg := fmt.Sprintf("Failed to persist annotation %s:%s -> %s: %v",
				record.DB, record.DBObjectID, record.TermID, err)
			result.Errors = append(result.Errors, errorMsg)

			// a closed connection fails every remaining record the same
			// way; stop instead of accumulating one error per record
			if db.IsDatabaseClosed(err) {
				result.FailureCount += len(records) - i - 1
				result.Errors = append(result.Errors, "database connection closed, aborting batch")
				break
			}
			continue
		}
		result.PersistedCount++
	}

	totalItems := len(records)
	if totalItems > 0 {
		result.SuccessRate = float64(result.PersistedCount) / float64(totalItems) * 100
	}

	return result
}

func (bp *BatchPersister) insertRecord(sessionID string, record *annot.Record) error {
	date := ""
	if !record.Date.IsZero() {
		date = record.Date.Format("20060102")
	}

	_, err := bp.db.Exec(
		AnnotationInsertQuery,
		record.ID,
		sessionID,
		record.DB,
		record.DBObjectID,
		record.Symbol,
		strings.Join(record.Qualifiers, annot.ListSeparator),
		boolToInt(record.Negated),
		record.TermID,
		strings.Join(record.References, annot.ListSeparator),
		record.EvidenceCode,
		strings.Join(record.WithFrom, annot.ListSeparator),
		record.Aspect,
		record.ObjectName,
		strings.Join(record.Synonyms, annot.ListSeparator),
		record.ObjectType,
		record.Taxon,
		record.InteractingTaxon,
		date,
		record.AssignedBy,
		strings.Join(record.Extensions, annot.ListSeparator),
		record.GeneProductForm,
	)
	return err
}
