package storage

import (
	"strings"
)

// queryBuilder accumulates SQL WHERE clauses and parameters for annotation
// export queries.
type queryBuilder struct {
	whereClauses []string
	args         []interface{}
}

// addClause appends a WHERE clause with its arguments
func (qb *queryBuilder) addClause(clause string, args ...interface{}) {
	qb.whereClauses = append(qb.whereClauses, clause)
	qb.args = append(qb.args, args...)
}

// build returns the WHERE clauses joined with AND
func (qb *queryBuilder) build() string {
	return strings.Join(qb.whereClauses, " AND ")
}

// buildFieldFilter creates equality clauses for matching any of the values
// in a column (OR logic).
func (qb *queryBuilder) buildFieldFilter(column string, values []string) {
	if len(values) == 0 {
		return
	}

	clauses := make([]string, len(values))
	for i, v := range values {
		clauses[i] = column + " = ?"
		qb.args = append(qb.args, v)
	}
	qb.whereClauses = append(qb.whereClauses, "("+strings.Join(clauses, " OR ")+")")
}

func (qb *queryBuilder) buildEvidenceFilter(codes []string) {
	qb.buildFieldFilter("evidence_code", codes)
}

func (qb *queryBuilder) buildAspectFilter(aspects []string) {
	qb.buildFieldFilter("aspect", aspects)
}

func (qb *queryBuilder) buildAssignedByFilter(sources []string) {
	qb.buildFieldFilter("assigned_by", sources)
}

// buildObjectFilter matches object identifiers by prefix. Identifiers often
// contain underscores, which LIKE treats as a wildcard, so the prefix is
// escaped before the trailing % is appended.
func (qb *queryBuilder) buildObjectFilter(prefix string) {
	if prefix == "" {
		return
	}
	qb.whereClauses = append(qb.whereClauses, "db_object_id LIKE ? ESCAPE '\\'")
	qb.args = append(qb.args, escapeLikePattern(prefix)+"%")
}

// buildTermClosureFilter restricts to annotations whose term is the given
// term or one of its descendants, using the materialized closure under the
// named policy. The term itself is included via the OR branch since closures
// store reflexive rows only for cyclic terms.
func (qb *queryBuilder) buildTermClosureFilter(policy, termID string) {
	if termID == "" {
		return
	}
	qb.whereClauses = append(qb.whereClauses,
		"(term_id = ? OR term_id IN (SELECT subject FROM term_closure WHERE policy = ? AND object = ?))")
	qb.args = append(qb.args, termID, policy, termID)
}

// buildTaxonClosureFilter restricts to annotations whose object taxon is the
// given taxon or a descendant of it in the stored taxonomic closure.
func (qb *queryBuilder) buildTaxonClosureFilter(policy, taxonID string) {
	if taxonID == "" {
		return
	}
	qb.whereClauses = append(qb.whereClauses,
		"(taxon = ? OR taxon IN (SELECT subject FROM term_closure WHERE policy = ? AND object = ?))")
	qb.args = append(qb.args, taxonID, policy, taxonID)
}

// escapeLikePattern escapes special characters in LIKE patterns for SQL ESCAPE clause
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
