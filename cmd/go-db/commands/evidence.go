package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/closure"
	"github.com/cmungall/go-db/errors"
	"github.com/cmungall/go-db/evidence"
	"github.com/cmungall/go-db/logger"
)

// EvidenceCmd represents the evidence command group
var EvidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Evidence redundancy analysis",
	Long: `Analyze redundancy between evidence sources over the loaded annotations.

An annotation is redundant when the same gene/product already carries an
equally or more specific annotation from a different reference, judged
against the is-a/part-of closure.

Examples:
  go-db evidence unique-contributions -e IEA
  go-db evidence unique-contributions -e IEA --summary
  go-db evidence find-redundant -r GO_REF:0000002
  go-db evidence compare-references -1 GO_REF:0000002 -2 PMID:123`,
}

var (
	evidenceDBFlag     string
	evidenceOutputFlag string
	evidenceFormatFlag string

	uniqueEvidenceTypeFlag string
	uniqueComparatorFlag   []string
	uniqueSummaryFlag      bool

	redundantReferenceFlag string
	redundantEvidenceFlag  string

	compareSet1Flag     []string
	compareSet2Flag     []string
	compareEvidenceFlag string
)

var evidenceUniqueCmd = &cobra.Command{
	Use:   "unique-contributions",
	Short: "Annotations no other reference already covers",
	RunE:  runEvidenceUnique,
}

var evidenceFindRedundantCmd = &cobra.Command{
	Use:   "find-redundant",
	Short: "Annotations of a reference that another reference covers",
	RunE:  runEvidenceFindRedundant,
}

var evidenceCompareCmd = &cobra.Command{
	Use:   "compare-references",
	Short: "Compare coverage of two reference sets",
	RunE:  runEvidenceCompare,
}

func init() {
	EvidenceCmd.PersistentFlags().StringVarP(&evidenceDBFlag, "db", "d", "", "Database path (default: from config)")
	EvidenceCmd.PersistentFlags().StringVarP(&evidenceOutputFlag, "output", "o", "-", "Output file (default: stdout)")
	EvidenceCmd.PersistentFlags().StringVarP(&evidenceFormatFlag, "format", "f", "tsv", "Output format (tsv or json)")

	evidenceUniqueCmd.Flags().StringVarP(&uniqueEvidenceTypeFlag, "evidence-type", "e", "", "Filter by evidence type (e.g., IEA)")
	evidenceUniqueCmd.Flags().StringSliceVar(&uniqueComparatorFlag, "comparator", nil, "Comparator references (repeatable)")
	evidenceUniqueCmd.Flags().BoolVar(&uniqueSummaryFlag, "summary", false, "Show grouped summary instead of full results")

	evidenceFindRedundantCmd.Flags().StringVarP(&redundantReferenceFlag, "reference", "r", "", "Reference to check for redundancy")
	evidenceFindRedundantCmd.MarkFlagRequired("reference")
	evidenceFindRedundantCmd.Flags().StringVarP(&redundantEvidenceFlag, "evidence-type", "e", "IEA", "Evidence type")

	evidenceCompareCmd.Flags().StringSliceVarP(&compareSet1Flag, "set1", "1", nil, "References in first set (repeatable)")
	evidenceCompareCmd.Flags().StringSliceVarP(&compareSet2Flag, "set2", "2", nil, "References in second set (repeatable)")
	evidenceCompareCmd.MarkFlagRequired("set1")
	evidenceCompareCmd.MarkFlagRequired("set2")
	evidenceCompareCmd.Flags().StringVarP(&compareEvidenceFlag, "evidence-type", "e", "", "Filter by evidence type")

	EvidenceCmd.AddCommand(evidenceUniqueCmd)
	EvidenceCmd.AddCommand(evidenceFindRedundantCmd)
	EvidenceCmd.AddCommand(evidenceCompareCmd)
}

// newAnalyzer loads the stored session and builds the is-a/part-of relation
// the redundancy queries join against.
func newAnalyzer(dbPath string) (*evidence.Analyzer, func(), error) {
	database, err := openDatabase(dbPath)
	if err != nil {
		return nil, nil, err
	}

	graph, store, err := loadStoredSession(database)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	relation, err := closure.Build(graph, closure.IsAPartOf, logger.Logger)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	return evidence.NewAnalyzer(store, relation, logger.Logger), func() { database.Close() }, nil
}

func evidenceOutput() (io.Writer, func(), error) {
	if evidenceOutputFlag == "" || evidenceOutputFlag == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(evidenceOutputFlag)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func runEvidenceUnique(cmd *cobra.Command, args []string) error {
	analyzer, cleanup, err := newAnalyzer(evidenceDBFlag)
	if err != nil {
		return err
	}
	defer cleanup()

	out, closeOut, err := evidenceOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	cfg := evidence.Config{
		EvidenceType:         uniqueEvidenceTypeFlag,
		ComparatorReferences: uniqueComparatorFlag,
	}

	if uniqueSummaryFlag {
		summary := analyzer.Summary(cfg)
		if evidenceFormatFlag == "json" {
			return writeJSON(out, summary)
		}
		fmt.Fprintf(out, "evidence_type\treferences\tcount\n")
		for _, row := range summary.Rows {
			fmt.Fprintf(out, "%s\t%s\t%d\n", row.EvidenceType, row.References, row.Count)
		}
		fmt.Fprintf(out, "# total unique: %d\n", summary.TotalUnique)
		return nil
	}

	result := analyzer.UniqueContributions(cfg)
	return writeContributions(out, result)
}

func runEvidenceFindRedundant(cmd *cobra.Command, args []string) error {
	analyzer, cleanup, err := newAnalyzer(evidenceDBFlag)
	if err != nil {
		return err
	}
	defer cleanup()

	out, closeOut, err := evidenceOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	result := analyzer.FindRedundantReferences(redundantReferenceFlag, redundantEvidenceFlag)
	return writeContributions(out, result)
}

func runEvidenceCompare(cmd *cobra.Command, args []string) error {
	analyzer, cleanup, err := newAnalyzer(evidenceDBFlag)
	if err != nil {
		return err
	}
	defer cleanup()

	out, closeOut, err := evidenceOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	comparison := analyzer.CompareReferenceSets(compareSet1Flag, compareSet2Flag, compareEvidenceFlag)
	if evidenceFormatFlag == "json" {
		return writeJSON(out, comparison)
	}

	fmt.Fprintf(out, "Reference set 1: %v\n", comparison.ReferenceSet1)
	fmt.Fprintf(out, "Reference set 2: %v\n", comparison.ReferenceSet2)
	fmt.Fprintf(out, "Unique to set 1: %d\n", comparison.UniqueToSet1)
	fmt.Fprintf(out, "Unique to set 2: %d\n", comparison.UniqueToSet2)
	fmt.Fprintf(out, "Overlap:         %d\n", comparison.Overlap)
	fmt.Fprintf(out, "Total set 1:     %d\n", comparison.TotalSet1)
	fmt.Fprintf(out, "Total set 2:     %d\n", comparison.TotalSet2)
	return nil
}

func writeContributions(out io.Writer, result *evidence.Contributions) error {
	switch evidenceFormatFlag {
	case "json":
		return writeJSON(out, result)
	case "tsv":
		fmt.Fprintf(out, "db\tdb_object_id\tterm\tevidence\treferences\n")
		for _, record := range result.Records {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
				record.DB,
				record.DBObjectID,
				record.TermID,
				record.EvidenceCode,
				joinRefs(record),
			)
		}
		fmt.Fprintf(out, "# count: %d\n", result.Count)
		return nil
	default:
		return errors.Newf("unknown output format %q", evidenceFormatFlag)
	}
}

func joinRefs(record *annot.Record) string {
	out := ""
	for i, ref := range record.References {
		if i > 0 {
			out += annot.ListSeparator
		}
		out += ref
	}
	return out
}

func writeJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
