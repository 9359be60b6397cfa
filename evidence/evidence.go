// Package evidence analyzes redundancy between evidence sources. An
// annotation is redundant when the same gene/product already carries an
// equally or more specific annotation from a different reference, judged
// against the isa/part-of closure.
package evidence

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
)

// Config selects which annotations a redundancy analysis considers.
// EvidenceType filters candidates ("" means all); ComparatorReferences, when
// set, restricts which partner references can make a candidate redundant.
// When empty, any partner with a different reference set counts.
type Config struct {
	EvidenceType         string
	ComparatorReferences []string
}

// Contributions holds the annotations that survived (or matched) a
// redundancy query.
type Contributions struct {
	Records              []*annot.Record
	Count                int
	EvidenceType         string
	ComparatorReferences []string
}

// ReferenceComparison summarizes how two reference sets cover the same
// (object, term) annotation pairs.
type ReferenceComparison struct {
	UniqueToSet1  int
	UniqueToSet2  int
	Overlap       int
	TotalSet1     int
	TotalSet2     int
	ReferenceSet1 []string
	ReferenceSet2 []string
	EvidenceType  string
}

// SummaryRow is one group in a contribution summary.
type SummaryRow struct {
	EvidenceType string
	References   string
	Count        int
}

// SummaryResult groups unique contributions by (evidence type, references).
type SummaryResult struct {
	Rows        []SummaryRow
	TotalUnique int
}

// Analyzer runs redundancy queries over a loaded annotation session.
type Analyzer struct {
	store    *annot.Store
	relation *closure.Relation
	logger   *zap.SugaredLogger
}

// NewAnalyzer creates an analyzer over the session's store and the
// materialized isa/part-of relation.
func NewAnalyzer(store *annot.Store, relation *closure.Relation, logger *zap.SugaredLogger) *Analyzer {
	return &Analyzer{
		store:    store,
		relation: relation,
		logger:   logger,
	}
}

// refKey identifies an annotation's reference set as stored: the
// pipe-joined supporting references.
func refKey(record *annot.Record) string {
	return strings.Join(record.References, annot.ListSeparator)
}

// hasMoreSpecificPartner reports whether another annotation of the same
// object, drawn from the comparator references (or any different reference
// set when the comparator list is empty), sits strictly beneath the
// candidate's term in the closure.
func (a *Analyzer) hasMoreSpecificPartner(record *annot.Record, comparators []string) bool {
	key := refKey(record)
	for _, partner := range a.store.ByObject(record.ObjectKey()) {
		if partner.ID == record.ID {
			continue
		}
		if len(comparators) > 0 {
			if !containsString(comparators, refKey(partner)) {
				continue
			}
		} else if refKey(partner) == key {
			continue
		}
		if a.relation.Contains(partner.TermID, record.TermID) {
			return true
		}
	}
	return false
}

// UniqueContributions returns the annotations that no other reference
// already covers at the same or finer granularity.
func (a *Analyzer) UniqueContributions(cfg Config) *Contributions {
	result := &Contributions{
		EvidenceType:         cfg.EvidenceType,
		ComparatorReferences: cfg.ComparatorReferences,
	}

	for _, record := range a.store.All() {
		if cfg.EvidenceType != "" && record.EvidenceCode != cfg.EvidenceType {
			continue
		}
		if !a.hasMoreSpecificPartner(record, cfg.ComparatorReferences) {
			result.Records = append(result.Records, record)
		}
	}
	result.Count = len(result.Records)

	if a.logger != nil {
		a.logger.Debugw("Unique contribution analysis complete",
			"evidence_type", cfg.EvidenceType,
			"unique", result.Count,
		)
	}
	return result
}

// FindRedundantReferences returns the annotations supported by exactly the
// given reference that a different reference already covers.
func (a *Analyzer) FindRedundantReferences(reference, evidenceType string) *Contributions {
	result := &Contributions{EvidenceType: evidenceType}

	for _, record := range a.store.All() {
		if refKey(record) != reference {
			continue
		}
		if evidenceType != "" && record.EvidenceCode != evidenceType {
			continue
		}
		if a.hasMoreSpecificPartner(record, nil) {
			result.Records = append(result.Records, record)
		}
	}
	result.Count = len(result.Records)
	return result
}

// Summary groups unique contributions by evidence type and reference set,
// largest groups first.
func (a *Analyzer) Summary(cfg Config) *SummaryResult {
	unique := a.UniqueContributions(cfg)

	counts := make(map[[2]string]int)
	for _, record := range unique.Records {
		counts[[2]string{record.EvidenceCode, refKey(record)}]++
	}

	result := &SummaryResult{TotalUnique: unique.Count}
	for key, count := range counts {
		result.Rows = append(result.Rows, SummaryRow{
			EvidenceType: key[0],
			References:   key[1],
			Count:        count,
		})
	}
	sort.Slice(result.Rows, func(i, j int) bool {
		if result.Rows[i].Count != result.Rows[j].Count {
			return result.Rows[i].Count > result.Rows[j].Count
		}
		if result.Rows[i].EvidenceType != result.Rows[j].EvidenceType {
			return result.Rows[i].EvidenceType < result.Rows[j].EvidenceType
		}
		return result.Rows[i].References < result.Rows[j].References
	})
	return result
}

// CompareReferenceSets counts how two reference sets cover distinct
// (object, term) pairs: unique to each side and overlapping. Unlike the
// redundancy queries this is an exact-pair comparison with no closure walk.
func (a *Analyzer) CompareReferenceSets(set1, set2 []string, evidenceType string) *ReferenceComparison {
	pairsOf := func(set []string) map[string]bool {
		pairs := make(map[string]bool)
		for _, record := range a.store.All() {
			if evidenceType != "" && record.EvidenceCode != evidenceType {
				continue
			}
			if !containsString(set, refKey(record)) {
				continue
			}
			pairs[record.ObjectKey()+"|"+record.TermID] = true
		}
		return pairs
	}

	pairs1 := pairsOf(set1)
	pairs2 := pairsOf(set2)

	comparison := &ReferenceComparison{
		ReferenceSet1: set1,
		ReferenceSet2: set2,
		EvidenceType:  evidenceType,
	}
	for pair := range pairs1 {
		if pairs2[pair] {
			comparison.Overlap++
		} else {
			comparison.UniqueToSet1++
		}
	}
	for pair := range pairs2 {
		if !pairs1[pair] {
			comparison.UniqueToSet2++
		}
	}
	comparison.TotalSet1 = comparison.UniqueToSet1 + comparison.Overlap
	comparison.TotalSet2 = comparison.UniqueToSet2 + comparison.Overlap
	return comparison
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
