package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/gaf"
	"github.com/cmungall/go-db/logger"
	"github.com/cmungall/go-db/ontology"
	"github.com/cmungall/go-db/storage"
)

// LoadCmd represents the load command
var LoadCmd = &cobra.Command{
	Use:   "load [sources...]",
	Short: "Load ontology, GAF and GPI files into the database",
	Long: `Load an ontology graph (terms and edges TSVs), GAF 2.2 association
files and GPI 1.2 gene product files into the database. Sources ending in
.gpi or .gpi.gz take the GPI path; everything else is read as GAF. Gzipped
inputs are detected by extension.

Rows missing a mandatory field are skipped and counted, never fatal.

Examples:
  go-db load --terms terms.tsv --edges edges.tsv goa_human.gaf
  go-db load goa_human.gaf.gz goa_human.gpi.gz`,
	RunE: runLoad,
}

var (
	loadDBFlag    string
	loadTermsFlag string
	loadEdgesFlag string
)

func init() {
	LoadCmd.Flags().StringVarP(&loadDBFlag, "db", "d", "", "Database path (default: from config)")
	LoadCmd.Flags().StringVar(&loadTermsFlag, "terms", "", "Ontology terms TSV (id, label, obsolete, subsets, xrefs)")
	LoadCmd.Flags().StringVar(&loadEdgesFlag, "edges", "", "Ontology edges TSV (subject, predicate, object)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(loadDBFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	sqlStore := storage.NewSQLStore(database, logger.Logger)

	if loadTermsFlag != "" || loadEdgesFlag != "" {
		var terms []ontology.Term
		var edges []ontology.Edge
		if loadTermsFlag != "" {
			if terms, err = ontology.ReadTermsFile(loadTermsFlag); err != nil {
				return err
			}
		}
		if loadEdgesFlag != "" {
			if edges, err = ontology.ReadEdgesFile(loadEdgesFlag); err != nil {
				return err
			}
		}

		graph := ontology.NewGraph()
		if err := graph.Load(edges, terms); err != nil {
			return err
		}
		if err := sqlStore.SaveGraph(graph); err != nil {
			return err
		}
		fmt.Printf("Loaded ontology: %d terms, %d edges\n", graph.TermCount(), graph.EdgeCount())
	}

	if len(args) == 0 {
		return nil
	}

	var rows []annot.Row
	parseSkipped := 0
	for _, path := range args {
		if gaf.IsGPISource(path) {
			if err := loadGPISource(sqlStore, path); err != nil {
				return err
			}
			continue
		}

		result, err := gaf.ReadFile(path, logger.Logger)
		if err != nil {
			return err
		}
		if result.Skipped > 0 {
			fmt.Printf("%s: skipped %d malformed lines\n", path, result.Skipped)
			parseSkipped += result.Skipped
			logParseErrors(path, result.Errors)
		}
		rows = append(rows, result.Rows...)
	}

	if len(rows) == 0 {
		return nil
	}

	store, loadResult := annot.Load(rows, logger.Logger)

	persister := storage.NewBatchPersister(database)
	persistResult := persister.PersistRecords(store.SessionID(), store.All())

	fmt.Printf("Session %s: %d annotations loaded, %d persisted (%.1f%%)\n",
		loadResult.SessionID,
		loadResult.Loaded,
		persistResult.PersistedCount,
		persistResult.SuccessRate,
	)
	// three distinct failure modes; a summed count would hide which one hit
	if parseSkipped > 0 {
		fmt.Printf("  %d malformed lines skipped at parse\n", parseSkipped)
	}
	if loadResult.Skipped > 0 {
		fmt.Printf("  %d rows skipped for missing mandatory fields\n", loadResult.Skipped)
	}
	if persistResult.FailureCount > 0 {
		fmt.Printf("  %d records failed to persist\n", persistResult.FailureCount)
	}
	for _, msg := range persistResult.Errors {
		logger.Errorw("Persist failure", "error", msg)
	}
	return nil
}

// logParseErrors emits the per-line skip reasons at -vvv; at lower
// verbosity only the counts are reported.
func logParseErrors(path string, parseErrors []string) {
	if !logger.TraceEnabled() {
		return
	}
	for _, msg := range parseErrors {
		logger.Debugw("Skipped line", "path", path, "reason", msg)
	}
}

func loadGPISource(sqlStore *storage.SQLStore, path string) error {
	result, err := gaf.ReadGPIFile(path, logger.Logger)
	if err != nil {
		return err
	}
	if result.Skipped > 0 {
		fmt.Printf("%s: skipped %d malformed lines\n", path, result.Skipped)
		logParseErrors(path, result.Errors)
	}
	if err := sqlStore.SaveGPIEntries(result.Entries); err != nil {
		return err
	}
	fmt.Printf("%s: %d gene products loaded\n", path, len(result.Entries))
	return nil
}
