// Package batch handles directory-level conversion commands.
package batch

import (
	"github.com/spf13/cobra"

	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/internal/camtparser"
	"atamur/ynab-csv/internal/mt940parser"
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert a directory of statements",
	Long: `Convert every recognized statement file in a directory. Files that
validate as CAMT.053 or MT940 are converted; everything else is skipped.`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputDir, "input-dir", "d", "", "Directory with statement files")
	Cmd.Flags().StringVarP(&root.OutputDir, "output-dir", "t", "", "Directory for converted CSV files")
	_ = Cmd.MarkFlagRequired("input-dir")
	_ = Cmd.MarkFlagRequired("output-dir")
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Batch converting %s into %s", root.InputDir, root.OutputDir)

	camtCount, err := camtparser.BatchConvert(root.InputDir, root.OutputDir)
	if err != nil {
		root.Log.Fatalf("Error batch converting CAMT.053 files: %v", err)
	}

	mt940Count, err := mt940parser.BatchConvert(root.InputDir, root.OutputDir)
	if err != nil {
		root.Log.Fatalf("Error batch converting MT940 files: %v", err)
	}

	root.Log.Infof("Converted %d CAMT.053 and %d MT940 files", camtCount, mt940Count)
}
