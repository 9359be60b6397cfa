package annot

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cmungall/go-db/errors"
)

// LoadResult reports what a load session did. Skipped counts are surfaced
// so schema violations never become silent drops.
type LoadResult struct {
	SessionID string   `json:"session_id"`
	Loaded    int      `json:"loaded"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// loadSession carries the surrogate-id counter for one bulk load. Threading
// it through the loader (rather than a package-level counter) keeps loads
// composable and testable in isolation.
type loadSession struct {
	id     string
	nextID int
}

func newLoadSession() *loadSession {
	return &loadSession{id: uuid.NewString()}
}

func (s *loadSession) assign() int {
	id := s.nextID
	s.nextID++
	return id
}

// Store is the read-only annotation store for one load session.
type Store struct {
	sessionID string
	records   []*Record
	byID      map[int]*Record
	byTerm    map[string][]*Record
	byObject  map[string][]*Record
}

func newStore(sessionID string) *Store {
	return &Store{
		sessionID: sessionID,
		byID:      make(map[int]*Record),
		byTerm:    make(map[string][]*Record),
		byObject:  make(map[string][]*Record),
	}
}

func (s *Store) add(record *Record) {
	s.records = append(s.records, record)
	s.byID[record.ID] = record
	s.byTerm[record.TermID] = append(s.byTerm[record.TermID], record)
	s.byObject[record.ObjectKey()] = append(s.byObject[record.ObjectKey()], record)
}

// Load normalizes rows into records, assigning dense surrogate ids. Rows
// missing a mandatory field (term id, object identifier, evidence code) are
// skipped with a schema-violation entry in the result; loading continues.
func Load(rows []Row, log *zap.SugaredLogger) (*Store, *LoadResult) {
	session := newLoadSession()
	store := newStore(session.id)
	result := &LoadResult{SessionID: session.id}

	for i, row := range rows {
		record, err := normalize(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, errors.Wrapf(err, "row %d", i).Error())
			if log != nil {
				log.Debugw("Skipping annotation row",
					"row", i,
					"db", row.DB,
					"object", row.DBObjectID,
					"error", err.Error(),
				)
			}
			continue
		}
		record.ID = session.assign()
		store.add(record)
		result.Loaded++
	}

	if log != nil {
		log.Infow("Annotation store loaded",
			"session_id", session.id,
			"loaded", result.Loaded,
			"skipped", result.Skipped,
		)
	}
	return store, result
}

// StoredRow pairs a flat row with the surrogate id it was persisted under,
// for rebuilding a store from a persisted session.
type StoredRow struct {
	ID  int
	Row Row
}

// Restore rebuilds the store for a previously persisted session, keeping the
// session identifier and surrogate ids assigned at original load time so
// derived artifacts (stored rule violations) still join back to the records.
func Restore(sessionID string, rows []StoredRow, log *zap.SugaredLogger) (*Store, *LoadResult) {
	store := newStore(sessionID)
	result := &LoadResult{SessionID: sessionID}

	for _, stored := range rows {
		record, err := normalize(stored.Row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, errors.Wrapf(err, "annotation %d", stored.ID).Error())
			if log != nil {
				log.Warnw("Skipping stored annotation on restore",
					"id", stored.ID,
					"session_id", sessionID,
					"error", err.Error(),
				)
			}
			continue
		}
		record.ID = stored.ID
		store.add(record)
		result.Loaded++
	}

	if log != nil {
		log.Infow("Annotation store restored",
			"session_id", sessionID,
			"loaded", result.Loaded,
			"skipped", result.Skipped,
		)
	}
	return store, result
}

// normalize derives one Record from a flat row, enforcing mandatory fields.
func normalize(row Row) (*Record, error) {
	if row.TermID == "" {
		return nil, errors.NewSchemaViolationError("missing ontology class reference")
	}
	if row.DBObjectID == "" {
		return nil, errors.NewSchemaViolationError("missing object identifier")
	}
	if row.EvidenceCode == "" {
		return nil, errors.NewSchemaViolationError("missing evidence code")
	}

	qualifiers := splitList(row.Qualifier)
	taxa := splitList(row.Taxon)

	record := &Record{
		DB:              strings.TrimSpace(row.DB),
		DBObjectID:      strings.TrimSpace(row.DBObjectID),
		Symbol:          row.Symbol,
		Qualifiers:      qualifiers,
		Negated:         len(qualifiers) > 0 && qualifiers[0] == NegationMarker,
		TermID:          strings.TrimSpace(row.TermID),
		References:      splitList(row.References),
		EvidenceCode:    strings.TrimSpace(row.EvidenceCode),
		WithFrom:        splitList(row.WithFrom),
		Aspect:          row.Aspect,
		ObjectName:      row.ObjectName,
		Synonyms:        splitList(row.Synonyms),
		ObjectType:      row.ObjectType,
		Date:            parseDate(row.Date),
		AssignedBy:      row.AssignedBy,
		Extensions:      splitList(row.Extensions),
		GeneProductForm: row.GeneProductForm,
	}
	if len(taxa) > 0 {
		record.Taxon = taxa[0]
	}
	if len(taxa) > 1 {
		record.InteractingTaxon = taxa[1]
	}
	return record, nil
}

// SessionID returns the load-session identifier for this snapshot.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Count returns the number of loaded records.
func (s *Store) Count() int {
	return len(s.records)
}

// All returns every record in surrogate-id order.
func (s *Store) All() []*Record {
	return s.records
}

// ByTerm returns records annotated directly to the given term.
func (s *Store) ByTerm(termID string) []*Record {
	return s.byTerm[termID]
}

// ByObject returns records for the given (source database, object id) key.
func (s *Store) ByObject(objectKey string) []*Record {
	return s.byObject[objectKey]
}

// Get returns the record with the given surrogate id.
func (s *Store) Get(id int) (*Record, error) {
	record, ok := s.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("annotation %d", id)
	}
	return record, nil
}
