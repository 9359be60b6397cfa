package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/config"
	"github.com/cmungall/go-db/logger"
	"github.com/cmungall/go-db/report"
	"github.com/cmungall/go-db/rules"
	"github.com/cmungall/go-db/storage"
)

// ValidateCmd represents the validate command
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run rule validation over loaded annotations",
	Long: `Evaluate the GO rule set against the annotations in the database.

Rules whose external inputs (retraction lists, taxon constraint tables) are
not supplied report as not evaluable rather than passing silently. Rule
codes listed under validate.skip_rules in configuration are skipped.`,
	RunE: runValidate,
}

var validateDBFlag string

func init() {
	ValidateCmd.Flags().StringVarP(&validateDBFlag, "db", "d", "", "Database path (default: from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := openDatabase(validateDBFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	graph, store, err := loadStoredSession(database)
	if err != nil {
		return err
	}

	relations, err := closure.BuildAll(graph,
		[]closure.Policy{closure.IsAPartOf, closure.Regulates},
		logger.Logger,
	)
	if err != nil {
		return err
	}

	ctx := &rules.Context{
		Store:    store,
		Ontology: graph,
		Closures: relations,
		Now:      time.Now(),
	}
	if refs := cfg.Validate.RetractedReferences; len(refs) > 0 {
		ctx.RetractedReferences = make(map[string]bool, len(refs))
		for _, ref := range refs {
			ctx.RetractedReferences[ref] = true
		}
	}

	registry := rules.NewRegistry()
	for _, rule := range rules.DefaultRegistry().Rules() {
		if cfg.SkipsRule(rule.Code()) {
			logger.Infow("Skipping rule", "code", rule.Code())
			continue
		}
		registry.MustRegister(rule)
	}

	evaluation, err := rules.EvaluateAll(registry, ctx, logger.Logger)
	if err != nil {
		return err
	}

	sqlStore := storage.NewSQLStore(database, logger.Logger)
	if err := sqlStore.SaveViolations(store.SessionID(), evaluation.Violations); err != nil {
		return err
	}

	summary := report.Summarize(evaluation, store)
	return summary.Write(os.Stdout)
}
