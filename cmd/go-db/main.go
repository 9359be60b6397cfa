package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/cmd/go-db/commands"
	"github.com/cmungall/go-db/logger"
)

var rootCmd = &cobra.Command{
	Use:   "go-db",
	Short: "go-db - GO annotation database and consistency engine",
	Long: `go-db - Gene Ontology annotation loading, closure materialization and validation.

Load GAF association files against an ontology graph, materialize transitive
closures, validate annotations against the GO rule set, and analyze evidence
redundancy.

Available commands:
  load        - Load ontology and GAF annotation files into the database
  materialize - Materialize a transitive closure under a named policy
  validate    - Run rule validation over loaded annotations
  export      - Export annotations as GAF 2.2, with closure-aware filters
  evidence    - Evidence redundancy analysis
  db          - Manage database operations
  version     - Show version information

Examples:
  go-db load --terms terms.tsv --edges edges.tsv goa_human.gaf.gz
  go-db materialize isa_partof
  go-db validate
  go-db export --taxon NCBITaxon:9606 -o out.gaf
  go-db evidence unique-contributions -e IEA`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeFromVerbosity(false, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.LoadCmd)
	rootCmd.AddCommand(commands.MaterializeCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.EvidenceCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
