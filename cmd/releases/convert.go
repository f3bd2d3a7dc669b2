// Package releases handles broker release-report processing commands.
package releases

import (
	"github.com/spf13/cobra"

	"atamur/ynab-csv/cmd/common"
	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/internal/logging"
	"atamur/ynab-csv/internal/parser"
)

// Cmd represents the releases command.
var Cmd = &cobra.Command{
	Use:   "releases",
	Short: "Convert broker release reports",
	Long: `Convert broker "Releases Report" CSV exports to the YNAB CSV layout,
aggregating all share releases of one vest date into a single inflow row.`,
	Run: releasesFunc,
}

func releasesFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Input releases report: %s", root.SharedFlags.Input)
	root.Log.Infof("Output CSV file: %s", root.SharedFlags.Output)

	p, err := parser.Get(parser.TypeReleases)
	if err != nil {
		root.Log.Fatalf("Error getting releases parser: %v", err)
	}
	common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logging.NewLogrusAdapterFromLogger(root.Log))
}
