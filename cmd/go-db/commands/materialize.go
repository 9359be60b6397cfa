package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/config"
	"github.com/cmungall/go-db/logger"
	"github.com/cmungall/go-db/storage"
)

// MaterializeCmd represents the materialize command
var MaterializeCmd = &cobra.Command{
	Use:   "materialize [policy...]",
	Short: "Materialize transitive closures under named policies",
	Long: `Build the transitive closure of the stored ontology graph under one or
more named policies and persist it into the term_closure table.

Known policies: isa_partof, regulates, taxon, evidence.
With no arguments, the policies from configuration are materialized
(default: isa_partof). Cycles are reported as warnings, not errors.`,
	RunE: runMaterialize,
}

var materializeDBFlag string

func init() {
	MaterializeCmd.Flags().StringVarP(&materializeDBFlag, "db", "d", "", "Database path (default: from config)")
}

func runMaterialize(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		names = cfg.GetClosurePolicies()
	}

	policies := make([]closure.Policy, 0, len(names))
	for _, name := range names {
		policy, err := closure.PolicyByName(name)
		if err != nil {
			return err
		}
		policies = append(policies, policy)
	}

	database, err := openDatabase(materializeDBFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	sqlStore := storage.NewSQLStore(database, logger.Logger)
	graph, err := sqlStore.LoadGraph()
	if err != nil {
		return err
	}

	relations, err := closure.BuildAll(graph, policies, logger.Logger)
	if err != nil {
		return err
	}

	for _, policy := range policies {
		relation := relations[policy.Name]
		if err := sqlStore.SaveClosure(relation); err != nil {
			return err
		}
		cyclic := ""
		if relation.Cyclic() {
			cyclic = " (cycles detected)"
		}
		fmt.Printf("Materialized %s: %d pairs%s\n", policy.Name, relation.Size(), cyclic)
	}
	return nil
}
