package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/config"
	"github.com/cmungall/go-db/logger"
	"github.com/cmungall/go-db/storage"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage go-db database",
	Long: `Manage database operations including statistics and diagnostics.

Examples:
  go-db db stats    # Show table row counts`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  "Display row counts for terms, edges, annotations, GPI entries, closure pairs and recorded violations",
	RunE:  runDbStats,
}

var dbStatsDBFlag string

func init() {
	DbCmd.AddCommand(dbStatsCmd)
	dbStatsCmd.Flags().StringVarP(&dbStatsDBFlag, "db", "d", "", "Database path (default: from config)")
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := openDatabase(dbStatsDBFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	stats, err := storage.NewSQLStore(database, logger.Logger).GetStats()
	if err != nil {
		return err
	}

	path := dbStatsDBFlag
	if path == "" {
		path = cfg.GetDatabasePath()
	}

	fmt.Printf("Database Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path:  %s\n", path)
	fmt.Printf("Terms:          %d\n", stats.Terms)
	fmt.Printf("Edges:          %d\n", stats.Edges)
	fmt.Printf("Annotations:    %d\n", stats.Annotations)
	fmt.Printf("GPI Entries:    %d\n", stats.GPIEntries)
	fmt.Printf("Closure Pairs:  %d\n", stats.ClosurePairs)
	fmt.Printf("Violations:     %d\n", stats.Violations)
	return nil
}
