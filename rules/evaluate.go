package rules

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cmungall/go-db/errors"
)

// Status is the per-rule outcome of an evaluation pass. NotEvaluable is a
// first-class result: a caller can always tell "rule found nothing" apart
// from "rule could not run".
type Status struct {
	RuleCode     string `json:"rule_code"`
	Title        string `json:"title"`
	Kind         Kind   `json:"kind"`
	Violations   int    `json:"violations"`
	NotEvaluable bool   `json:"not_evaluable,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// Report is the merged output of EvaluateAll.
type Report struct {
	Violations []Violation `json:"violations"`
	Statuses   []Status    `json:"statuses"`
}

// NotEvaluable lists the codes of rules that could not run.
func (r *Report) NotEvaluable() []string {
	var out []string
	for _, status := range r.Statuses {
		if status.NotEvaluable {
			out = append(out, status.RuleCode)
		}
	}
	return out
}

// Evaluate runs one rule against the snapshot. A not-evaluable error is a
// status for the caller, not a failure; any other error is real.
func Evaluate(rule Rule, ctx *Context) ([]Violation, error) {
	violations, err := rule.Evaluate(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "rule %s", rule.Code())
	}
	return violations, nil
}

// EvaluateAll dispatches every registered rule in parallel over the shared
// immutable snapshot, then unions the results, de-duplicating by
// (annotation id, rule code). Violations come back sorted by rule code then
// annotation id; the order carries no meaning beyond reproducible reports.
func EvaluateAll(registry *Registry, ctx *Context, log *zap.SugaredLogger) (*Report, error) {
	ruleList := registry.Rules()

	type outcome struct {
		rule       Rule
		violations []Violation
		err        error
	}

	outcomes := make([]outcome, len(ruleList))
	var wg sync.WaitGroup
	for i, rule := range ruleList {
		wg.Add(1)
		go func(i int, rule Rule) {
			defer wg.Done()
			violations, err := Evaluate(rule, ctx)
			outcomes[i] = outcome{rule: rule, violations: violations, err: err}
		}(i, rule)
	}
	wg.Wait()

	report := &Report{}
	seen := make(map[Violation]bool)
	var failures []error

	for _, oc := range outcomes {
		status := Status{
			RuleCode: oc.rule.Code(),
			Title:    oc.rule.Title(),
			Kind:     oc.rule.Kind(),
		}

		switch {
		case oc.err != nil && errors.IsNotEvaluableError(oc.err):
			status.NotEvaluable = true
			status.Reason = oc.err.Error()
			if log != nil {
				log.Warnw("Rule not evaluable",
					"rule", oc.rule.Code(),
					"reason", oc.err.Error(),
				)
			}
		case oc.err != nil:
			failures = append(failures, oc.err)
			continue
		default:
			for _, v := range oc.violations {
				if seen[v] {
					continue
				}
				seen[v] = true
				report.Violations = append(report.Violations, v)
				status.Violations++
			}
		}
		report.Statuses = append(report.Statuses, status)
	}

	sort.Slice(report.Violations, func(i, j int) bool {
		a, b := report.Violations[i], report.Violations[j]
		if a.RuleCode != b.RuleCode {
			return a.RuleCode < b.RuleCode
		}
		return a.AnnotationID < b.AnnotationID
	})

	if len(failures) > 0 {
		return report, errors.Join(failures...)
	}

	if log != nil {
		log.Infow("Rule evaluation complete",
			"rules", len(ruleList),
			"violations", len(report.Violations),
			"not_evaluable", len(report.NotEvaluable()),
		)
	}
	return report, nil
}
