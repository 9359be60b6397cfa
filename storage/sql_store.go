// Package storage persists ontology graphs, annotation sessions and
// materialized closures to SQLite, and loads them back into their in-memory
// forms. All multi-valued annotation columns round-trip pipe-separated.
package storage

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/errors"
	"github.com/cmungall/go-db/gaf"
	"github.com/cmungall/go-db/ontology"
	"github.com/cmungall/go-db/rules"
)

// Query constants
const (
	TermInsertQuery = `
		INSERT OR REPLACE INTO terms (id, label, obsolete, subsets, xrefs)
		VALUES (?, ?, ?, ?, ?)`

	EdgeInsertQuery = `
		INSERT OR REPLACE INTO edges (subject, predicate, object)
		VALUES (?, ?, ?)`

	AnnotationInsertQuery = `
		INSERT INTO gaf_association (
			id, session_id, db, db_object_id, symbol, qualifiers, negated,
			term_id, refs, evidence_code, with_from, aspect, object_name,
			synonyms, object_type, taxon, interacting_taxon, annotation_date,
			assigned_by, extensions, gene_product_form
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ClosureInsertQuery = `
		INSERT OR REPLACE INTO term_closure (policy, subject, object)
		VALUES (?, ?, ?)`

	ViolationInsertQuery = `
		INSERT OR REPLACE INTO rule_violation (session_id, annotation_id, rule_code)
		VALUES (?, ?, ?)`

	GPIInsertQuery = `
		INSERT OR REPLACE INTO gpi_entry (
			db, db_object_id, symbol, object_name, synonyms, object_type,
			taxon, parent_object_id, xrefs, properties
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// SQLStore persists and loads the annotation database tables.
type SQLStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLStore creates a new SQL-backed store.
func NewSQLStore(db *sql.DB, logger *zap.SugaredLogger) *SQLStore {
	return &SQLStore{
		db:     db,
		logger: logger,
	}
}

// SaveGraph replaces the stored ontology with the given graph's terms and
// asserted edges in a single transaction.
func (s *SQLStore) SaveGraph(graph *ontology.Graph) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin ontology tx")
	}

	if _, err := tx.Exec("DELETE FROM edges"); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "clear edges")
	}
	if _, err := tx.Exec("DELETE FROM terms"); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "clear terms")
	}

	termStmt, err := tx.Prepare(TermInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare term insert")
	}
	defer termStmt.Close()

	for _, term := range graph.Terms() {
		_, err := termStmt.Exec(
			term.ID,
			term.Label,
			boolToInt(term.Obsolete),
			strings.Join(term.Subsets, annot.ListSeparator),
			strings.Join(term.Xrefs, annot.ListSeparator),
		)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert term %s", term.ID)
		}
	}

	edgeStmt, err := tx.Prepare(EdgeInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare edge insert")
	}
	defer edgeStmt.Close()

	for _, edge := range graph.Edges() {
		if _, err := edgeStmt.Exec(edge.Subject, edge.Predicate, edge.Object); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert edge %s -%s-> %s", edge.Subject, edge.Predicate, edge.Object)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit ontology tx")
	}

	if s.logger != nil {
		s.logger.Infow("Ontology graph saved",
			"terms", graph.TermCount(),
			"edges", graph.EdgeCount(),
		)
	}
	return nil
}

// LoadGraph reads the stored terms and edges back into an ontology graph.
func (s *SQLStore) LoadGraph() (*ontology.Graph, error) {
	termRows, err := s.db.Query("SELECT id, label, obsolete, subsets, xrefs FROM terms")
	if err != nil {
		return nil, errors.Wrap(err, "query terms")
	}
	defer termRows.Close()

	var terms []ontology.Term
	for termRows.Next() {
		var term ontology.Term
		var obsolete int
		var subsets, xrefs string
		if err := termRows.Scan(&term.ID, &term.Label, &obsolete, &subsets, &xrefs); err != nil {
			return nil, errors.Wrap(err, "scan term")
		}
		term.Obsolete = obsolete != 0
		term.Subsets = splitStored(subsets)
		term.Xrefs = splitStored(xrefs)
		terms = append(terms, term)
	}
	if err := termRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate terms")
	}

	edgeRows, err := s.db.Query("SELECT subject, predicate, object FROM edges")
	if err != nil {
		return nil, errors.Wrap(err, "query edges")
	}
	defer edgeRows.Close()

	var edges []ontology.Edge
	for edgeRows.Next() {
		var edge ontology.Edge
		if err := edgeRows.Scan(&edge.Subject, &edge.Predicate, &edge.Object); err != nil {
			return nil, errors.Wrap(err, "scan edge")
		}
		edges = append(edges, edge)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate edges")
	}

	graph := ontology.NewGraph()
	if err := graph.Load(edges, terms); err != nil {
		return nil, err
	}
	return graph, nil
}

// SaveClosure writes one materialized relation's pairs under its policy name.
// Existing rows for the same policy are replaced.
func (s *SQLStore) SaveClosure(relation *closure.Relation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin closure tx")
	}

	policy := relation.Policy().Name
	if _, err := tx.Exec("DELETE FROM term_closure WHERE policy = ?", policy); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "clear closure %s", policy)
	}

	stmt, err := tx.Prepare(ClosureInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare closure insert")
	}
	defer stmt.Close()

	for _, pair := range relation.Pairs() {
		if _, err := stmt.Exec(policy, pair.Subject, pair.Object); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert closure pair %s -> %s", pair.Subject, pair.Object)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit closure tx")
	}

	if s.logger != nil {
		s.logger.Infow("Closure materialized",
			"policy", policy,
			"pairs", relation.Size(),
			"cyclic", relation.Cyclic(),
		)
	}
	return nil
}

// ClosureContains reports whether (subject, object) is in the stored closure
// for the named policy.
func (s *SQLStore) ClosureContains(policy, subject, object string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM term_closure WHERE policy = ? AND subject = ? AND object = ?)",
		policy, subject, object,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "probe closure")
	}
	return exists, nil
}

// SaveViolations replaces the stored violations for a session.
func (s *SQLStore) SaveViolations(sessionID string, violations []rules.Violation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin violation tx")
	}

	if _, err := tx.Exec("DELETE FROM rule_violation WHERE session_id = ?", sessionID); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "clear violations")
	}

	stmt, err := tx.Prepare(ViolationInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare violation insert")
	}
	defer stmt.Close()

	for _, v := range violations {
		if _, err := stmt.Exec(sessionID, v.AnnotationID, v.RuleCode); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert violation %s", v.RuleCode)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit violation tx")
	}
	return nil
}

// SaveGPIEntries upserts gene product metadata rows keyed by
// (db, db_object_id); re-ingesting a source replaces its entries.
func (s *SQLStore) SaveGPIEntries(entries []gaf.GPIEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin gpi tx")
	}

	stmt, err := tx.Prepare(GPIInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare gpi insert")
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.Exec(
			entry.DB,
			entry.DBObjectID,
			entry.Symbol,
			entry.ObjectName,
			entry.Synonyms,
			entry.ObjectType,
			entry.Taxon,
			entry.ParentObjectID,
			entry.Xrefs,
			entry.Properties,
		)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert gpi entry %s:%s", entry.DB, entry.DBObjectID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit gpi tx")
	}

	if s.logger != nil {
		s.logger.Infow("GPI entries saved", "entries", len(entries))
	}
	return nil
}

// Stats reports table row counts for the db stats command.
type Stats struct {
	Terms        int
	Edges        int
	Annotations  int
	GPIEntries   int
	ClosurePairs int
	Violations   int
}

// GetStats counts rows across the core tables.
func (s *SQLStore) GetStats() (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM terms", &stats.Terms},
		{"SELECT COUNT(*) FROM edges", &stats.Edges},
		{"SELECT COUNT(*) FROM gaf_association", &stats.Annotations},
		{"SELECT COUNT(*) FROM gpi_entry", &stats.GPIEntries},
		{"SELECT COUNT(*) FROM term_closure", &stats.ClosurePairs},
		{"SELECT COUNT(*) FROM rule_violation", &stats.Violations},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, errors.Wrapf(err, "count %q", c.query)
		}
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func splitStored(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, annot.ListSeparator)
}
