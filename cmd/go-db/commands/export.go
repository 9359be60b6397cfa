package commands

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/gaf"
	"github.com/cmungall/go-db/logger"
	"github.com/cmungall/go-db/storage"
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export annotations as GAF 2.2, with closure-aware filters",
	Long: `Write stored annotations back out as a GAF 2.2 file.

The --term and --taxon filters are closure-aware: they match annotations to
the named identifier and everything beneath it in the materialized closures
(run 'go-db materialize' first for those filters to see descendants).

Examples:
  go-db export -o all.gaf
  go-db export --taxon NCBITaxon:9606 --evidence-type IEA -o human_iea.gaf
  go-db export --term GO:0007601 -o visual_perception.gaf`,
	RunE: runExport,
}

var (
	exportDBFlag         string
	exportOutputFlag     string
	exportTermFlag       string
	exportTaxonFlag      string
	exportEvidenceFlag   []string
	exportAspectFlag     []string
	exportAssignedByFlag []string
	exportObjectFlag     string
)

func init() {
	ExportCmd.Flags().StringVarP(&exportDBFlag, "db", "d", "", "Database path (default: from config)")
	ExportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "-", "Output file (default: stdout)")
	ExportCmd.Flags().StringVar(&exportTermFlag, "term", "", "Filter by term and its descendants (e.g., GO:0007601)")
	ExportCmd.Flags().StringVar(&exportTaxonFlag, "taxon", "", "Filter by taxon and its descendants (e.g., NCBITaxon:9606)")
	ExportCmd.Flags().StringSliceVar(&exportEvidenceFlag, "evidence-type", nil, "Filter by evidence type (e.g., IEA)")
	ExportCmd.Flags().StringSliceVar(&exportAspectFlag, "aspect", nil, "Filter by aspect (F, P or C)")
	ExportCmd.Flags().StringSliceVar(&exportAssignedByFlag, "assigned-by", nil, "Filter by assigned_by")
	ExportCmd.Flags().StringVar(&exportObjectFlag, "object-prefix", "", "Filter by object identifier prefix")
}

func runExport(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(exportDBFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	rows, err := storage.SelectAnnotations(database, storage.ExportFilter{
		EvidenceCodes: exportEvidenceFlag,
		Aspects:       exportAspectFlag,
		AssignedBy:    exportAssignedByFlag,
		ObjectPrefix:  exportObjectFlag,
		Term:          exportTermFlag,
		Taxon:         exportTaxonFlag,
	})
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if exportOutputFlag != "" && exportOutputFlag != "-" {
		f, err := os.Create(exportOutputFlag)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	store, loadResult := annot.Load(rows, logger.Logger)
	if loadResult.Skipped > 0 {
		logger.Warnw("Skipped stored annotations on export",
			"skipped", loadResult.Skipped,
		)
	}
	writer := gaf.NewWriter(out)
	if err := writer.WriteHeader(time.Now()); err != nil {
		return err
	}
	for _, record := range store.All() {
		if err := writer.WriteRecord(record); err != nil {
			return err
		}
	}
	return nil
}
