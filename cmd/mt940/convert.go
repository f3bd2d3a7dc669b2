// Package mt940 handles MT940 file processing commands.
package mt940

import (
	"github.com/spf13/cobra"

	"atamur/ynab-csv/cmd/common"
	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/internal/logging"
	"atamur/ynab-csv/internal/parser"
)

// Cmd represents the mt940 command.
var Cmd = &cobra.Command{
	Use:   "mt940",
	Short: "Convert MT940 SWIFT statements",
	Long:  `Convert SWIFT MT940 plain-text bank statements to the YNAB CSV layout.`,
	Run:   mt940Func,
}

func mt940Func(cmd *cobra.Command, args []string) {
	root.Log.Infof("Input MT940 file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output CSV file: %s", root.SharedFlags.Output)

	p, err := parser.Get(parser.TypeMT940)
	if err != nil {
		root.Log.Fatalf("Error getting MT940 parser: %v", err)
	}
	common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logging.NewLogrusAdapterFromLogger(root.Log))
}
