package storage

import (
	"database/sql"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/errors"
)

// ExportFilter restricts which stored annotations an export selects. Zero
// values mean no restriction. Term and Taxon are closure-aware: they match
// the named identifier and everything beneath it in the corresponding
// materialized closure.
type ExportFilter struct {
	SessionID     string
	EvidenceCodes []string
	Aspects       []string
	AssignedBy    []string
	ObjectPrefix  string
	Term          string
	Taxon         string
}

const annotationSelectColumns = `
	db, db_object_id, symbol, qualifiers, term_id, refs, evidence_code,
	with_from, aspect, object_name, synonyms, object_type, taxon,
	interacting_taxon, annotation_date, assigned_by, extensions,
	gene_product_form`

// SelectAnnotations retrieves stored annotations matching the filter, as raw
// rows ready for GAF serialization or reloading.
func SelectAnnotations(db *sql.DB, filter ExportFilter) ([]annot.Row, error) {
	qb := &queryBuilder{}
	if filter.SessionID != "" {
		qb.addClause("session_id = ?", filter.SessionID)
	}
	qb.buildEvidenceFilter(filter.EvidenceCodes)
	qb.buildAspectFilter(filter.Aspects)
	qb.buildAssignedByFilter(filter.AssignedBy)
	qb.buildObjectFilter(filter.ObjectPrefix)
	qb.buildTermClosureFilter(closure.IsAPartOf.Name, filter.Term)
	qb.buildTaxonClosureFilter(closure.Taxonomic.Name, filter.Taxon)

	query := "SELECT" + annotationSelectColumns + " FROM gaf_association"
	if len(qb.whereClauses) > 0 {
		query += " WHERE " + qb.build()
	}
	query += " ORDER BY id"

	sqlRows, err := db.Query(query, qb.args...)
	if err != nil {
		return nil, errors.Wrap(err, "query annotations")
	}
	defer sqlRows.Close()

	var rows []annot.Row
	for sqlRows.Next() {
		var row annot.Row
		var interactingTaxon string
		err := sqlRows.Scan(
			&row.DB,
			&row.DBObjectID,
			&row.Symbol,
			&row.Qualifier,
			&row.TermID,
			&row.References,
			&row.EvidenceCode,
			&row.WithFrom,
			&row.Aspect,
			&row.ObjectName,
			&row.Synonyms,
			&row.ObjectType,
			&row.Taxon,
			&interactingTaxon,
			&row.Date,
			&row.AssignedBy,
			&row.Extensions,
			&row.GeneProductForm,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan annotation")
		}
		// taxon column stores only the object taxon; recombine for GAF col 13
		if interactingTaxon != "" {
			row.Taxon = row.Taxon + annot.ListSeparator + interactingTaxon
		}
		rows = append(rows, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate annotations")
	}
	return rows, nil
}

// LatestSessionID returns the session id of the most recently persisted
// annotation load, or errors.ErrNotFound when nothing has been loaded.
func LatestSessionID(db *sql.DB) (string, error) {
	var sessionID string
	err := db.QueryRow(
		"SELECT session_id FROM gaf_association ORDER BY rowid DESC LIMIT 1",
	).Scan(&sessionID)
	if err == sql.ErrNoRows {
		return "", errors.Wrap(errors.ErrNotFound, "no annotation sessions stored")
	}
	if err != nil {
		return "", errors.Wrap(err, "query latest session")
	}
	return sessionID, nil
}

// SelectSessionRows retrieves every annotation of one persisted session with
// its stored surrogate id, so the rebuilt in-memory store keys records the
// way the database does and stored violations join back to them.
func SelectSessionRows(db *sql.DB, sessionID string) ([]annot.StoredRow, error) {
	query := "SELECT id," + annotationSelectColumns +
		" FROM gaf_association WHERE session_id = ? ORDER BY id"

	sqlRows, err := db.Query(query, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "query session annotations")
	}
	defer sqlRows.Close()

	var rows []annot.StoredRow
	for sqlRows.Next() {
		var stored annot.StoredRow
		var interactingTaxon string
		err := sqlRows.Scan(
			&stored.ID,
			&stored.Row.DB,
			&stored.Row.DBObjectID,
			&stored.Row.Symbol,
			&stored.Row.Qualifier,
			&stored.Row.TermID,
			&stored.Row.References,
			&stored.Row.EvidenceCode,
			&stored.Row.WithFrom,
			&stored.Row.Aspect,
			&stored.Row.ObjectName,
			&stored.Row.Synonyms,
			&stored.Row.ObjectType,
			&stored.Row.Taxon,
			&interactingTaxon,
			&stored.Row.Date,
			&stored.Row.AssignedBy,
			&stored.Row.Extensions,
			&stored.Row.GeneProductForm,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan session annotation")
		}
		if interactingTaxon != "" {
			stored.Row.Taxon = stored.Row.Taxon + annot.ListSeparator + interactingTaxon
		}
		rows = append(rows, stored)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate session annotations")
	}
	return rows, nil
}
