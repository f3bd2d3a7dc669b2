// Package camt handles CAMT.053 file processing commands.
package camt

import (
	"github.com/spf13/cobra"

	"atamur/ynab-csv/cmd/common"
	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/internal/logging"
	"atamur/ynab-csv/internal/parser"
)

// Cmd represents the camt command.
var Cmd = &cobra.Command{
	Use:   "camt",
	Short: "Convert CAMT.053 XML statements",
	Long:  `Convert ISO 20022 CAMT.053 XML bank statements to the YNAB CSV layout.`,
	Run:   camtFunc,
}

func camtFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Input CAMT.053 file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output CSV file: %s", root.SharedFlags.Output)

	p, err := parser.Get(parser.TypeCAMT)
	if err != nil {
		root.Log.Fatalf("Error getting CAMT.053 parser: %v", err)
	}
	common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logging.NewLogrusAdapterFromLogger(root.Log))
}
