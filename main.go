package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/cmd/batch"
	"atamur/ynab-csv/cmd/camt"
	"atamur/ynab-csv/cmd/mt940"
	"atamur/ynab-csv/cmd/releases"
	"atamur/ynab-csv/cmd/revolut"
	"atamur/ynab-csv/cmd/root"
	"atamur/ynab-csv/cmd/viseca"
)

func init() {
	// Load environment variables before any logging so LOG_LEVEL applies to
	// every logger created afterwards.
	loadEnvSilently()
	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(camt.Cmd)
	root.Cmd.AddCommand(mt940.Cmd)
	root.Cmd.AddCommand(viseca.Cmd)
	root.Cmd.AddCommand(revolut.Cmd)
	root.Cmd.AddCommand(releases.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevel sets the global logrus level before any logging happens.
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
