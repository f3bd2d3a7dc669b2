// Package root contains the root command for the application.
package root

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"atamur/ynab-csv/internal/camtparser"
	"atamur/ynab-csv/internal/common"
	"atamur/ynab-csv/internal/config"
	"atamur/ynab-csv/internal/fxrate"
	"atamur/ynab-csv/internal/mt940parser"
	"atamur/ynab-csv/internal/releasesparser"
	"atamur/ynab-csv/internal/revolutparser"
	"atamur/ynab-csv/internal/store"
	"atamur/ynab-csv/internal/visecaparser"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to all commands.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ynab-csv",
		Short: "Convert bank and broker statement exports to YNAB-compatible CSV.",
		Long: `ynab-csv converts bank statement exports (CAMT.053 XML, MT940 SWIFT text)
and card/broker exports (Viseca JSON, Revolut CSV, broker release reports)
into the 6-column CSV layout YNAB imports.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg
			applyConfig(cfg)

			camtparser.SetLogger(Log)
			mt940parser.SetLogger(Log)
			visecaparser.SetLogger(Log)
			revolutparser.SetLogger(Log)
			releasesparser.SetLogger(Log)
			common.SetLogger(Log)
			store.SetLogger(Log)
		},
	}

	// SharedFlags are the common flags accessible to all commands.
	SharedFlags = CommonFlags{}

	// Batch command flags.
	InputDir  string
	OutputDir string
)

// applyConfig wires the loaded configuration into the parser packages and
// the shared infrastructure.
func applyConfig(cfg *config.Config) {
	common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])

	mt940parser.SetScoreConfig(mt940parser.ScoreConfig{
		AllCapsMinWords: cfg.MT940.AllCapsMinWords,
		PersonMaxWords:  cfg.MT940.PersonMaxWords,
	})

	client := fxrate.NewClient(cfg.FX.BaseURL, time.Duration(cfg.FX.TimeoutSeconds)*time.Second)
	client.SetLogger(Log)
	revolutparser.SetRateLookup(client)
	revolutparser.SetTargetCurrency(cfg.FX.TargetCurrency)
	releasesparser.SetRateLookup(client)
	releasesparser.SetTargetCurrency(cfg.FX.TargetCurrency)
	releasesparser.SetPayee(cfg.Releases.Payee)

	overrides, err := store.NewPayeeStore(cfg.Payees.OverridesFile).Load()
	if err != nil {
		Log.Warnf("Failed to load payee overrides: %v", err)
		return
	}
	common.SetPayeeOverrides(overrides)
}

// Init initializes the root command and all flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
}
