// Package report aggregates rule-engine and containment-query output for
// presentation: violation counts per rule, per taxon, per evidence code,
// with not-evaluable rules always listed rather than omitted.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/rules"
)

// Summary aggregates one evaluation pass.
type Summary struct {
	TotalAnnotations     int              `json:"total_annotations"`
	TotalViolations      int              `json:"total_violations"`
	ViolationsByRule     map[string]int   `json:"violations_by_rule"`
	ViolationsByTaxon    map[string]int   `json:"violations_by_taxon"`
	ViolationsByEvidence map[string]int   `json:"violations_by_evidence"`
	NotEvaluable         []string         `json:"not_evaluable,omitempty"`
	Statuses             []rules.Status   `json:"statuses"`
}

// Summarize rolls an evaluation report up against the store it ran over.
func Summarize(evaluation *rules.Report, store *annot.Store) *Summary {
	summary := &Summary{
		TotalAnnotations:     store.Count(),
		TotalViolations:      len(evaluation.Violations),
		ViolationsByRule:     make(map[string]int),
		ViolationsByTaxon:    make(map[string]int),
		ViolationsByEvidence: make(map[string]int),
		NotEvaluable:         evaluation.NotEvaluable(),
		Statuses:             evaluation.Statuses,
	}

	for _, violation := range evaluation.Violations {
		summary.ViolationsByRule[violation.RuleCode]++
		record, err := store.Get(violation.AnnotationID)
		if err != nil {
			continue
		}
		summary.ViolationsByTaxon[record.Taxon]++
		summary.ViolationsByEvidence[record.EvidenceCode]++
	}
	return summary
}

// Write renders the summary as the validate command's text report.
func (s *Summary) Write(w io.Writer) error {
	fmt.Fprintf(w, "Annotations evaluated: %d\n", s.TotalAnnotations)
	fmt.Fprintf(w, "Violations found:      %d\n\n", s.TotalViolations)

	fmt.Fprintln(w, "By rule:")
	for _, status := range s.Statuses {
		switch {
		case status.NotEvaluable:
			fmt.Fprintf(w, "  %s  NOT EVALUABLE (%s)\n", status.RuleCode, status.Reason)
		default:
			fmt.Fprintf(w, "  %s  %6d  %s\n", status.RuleCode, status.Violations, status.Title)
		}
	}

	writeCountMap(w, "\nBy taxon:", s.ViolationsByTaxon)
	writeCountMap(w, "\nBy evidence:", s.ViolationsByEvidence)
	return nil
}

// RollupCounts summarizes a containment-query result set.
type RollupCounts struct {
	Total      int            `json:"total"`
	ByEvidence map[string]int `json:"by_evidence"`
	ByTaxon    map[string]int `json:"by_taxon"`
	ByAspect   map[string]int `json:"by_aspect"`
}

// SummarizeRollup counts a record sequence along its reporting dimensions.
func SummarizeRollup(records []*annot.Record) *RollupCounts {
	counts := &RollupCounts{
		Total:      len(records),
		ByEvidence: make(map[string]int),
		ByTaxon:    make(map[string]int),
		ByAspect:   make(map[string]int),
	}
	for _, record := range records {
		counts.ByEvidence[record.EvidenceCode]++
		counts.ByTaxon[record.Taxon]++
		counts.ByAspect[record.Aspect]++
	}
	return counts
}

func writeCountMap(w io.Writer, header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	keyList := make([]string, 0, len(counts))
	for k := range counts {
		keyList = append(keyList, k)
	}
	sort.Strings(keyList)
	for _, k := range keyList {
		label := k
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(w, "  %-24s %d\n", label, counts[k])
	}
}
