// Package viseca handles Viseca card-export processing commands.
package viseca

import (
	"github.com/spf13/cobra"

	"atamur/ynab-csv/cmd/common"
	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/internal/logging"
	"atamur/ynab-csv/internal/parser"
)

// Cmd represents the viseca command.
var Cmd = &cobra.Command{
	Use:   "viseca",
	Short: "Convert Viseca card JSON exports",
	Long:  `Convert Viseca card-transaction JSON exports to the YNAB CSV layout.`,
	Run:   visecaFunc,
}

func visecaFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Input Viseca file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output CSV file: %s", root.SharedFlags.Output)

	p, err := parser.Get(parser.TypeViseca)
	if err != nil {
		root.Log.Fatalf("Error getting Viseca parser: %v", err)
	}
	common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logging.NewLogrusAdapterFromLogger(root.Log))
}
