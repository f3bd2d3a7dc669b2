// Package revolut handles Revolut statement processing commands.
package revolut

import (
	"github.com/spf13/cobra"

	"atamur/ynab-csv/cmd/common"
	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/internal/logging"
	"atamur/ynab-csv/internal/parser"
	"atamur/ynab-csv/internal/revolutparser"
)

// Cmd represents the revolut command.
var Cmd = &cobra.Command{
	Use:   "revolut",
	Short: "Convert Revolut CSV statements",
	Long: `Convert Revolut account-statement CSV exports to the YNAB CSV layout,
converting foreign-currency rows with historical exchange rates.`,
	Run: revolutFunc,
}

func revolutFunc(cmd *cobra.Command, args []string) {
	output := root.SharedFlags.Output
	if output == "" {
		output = revolutparser.TrimOutputName(root.SharedFlags.Input)
	}

	root.Log.Infof("Input Revolut file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output CSV file: %s", output)

	p, err := parser.Get(parser.TypeRevolut)
	if err != nil {
		root.Log.Fatalf("Error getting Revolut parser: %v", err)
	}
	common.ProcessFile(p, root.SharedFlags.Input, output, root.SharedFlags.Validate, logging.NewLogrusAdapterFromLogger(root.Log))
}
