// Package common contains shared functionality for command handlers.
package common

import (
	"atamur/ynab-csv/internal/logging"
	"atamur/ynab-csv/internal/models"
)

// ProcessFile processes a single file using the given parser.
func ProcessFile(parser models.Parser, inputFile, outputFile string, validate bool, log logging.Logger) {
	scoped := log.
		WithField(logging.FieldInputFile, inputFile).
		WithField(logging.FieldOutputFile, outputFile)

	if validate {
		scoped.Info("Validating format...")
		valid, err := parser.ValidateFormat(inputFile)
		if err != nil {
			log.Fatalf("Error validating file: %v", err)
		}
		if !valid {
			log.Fatal("The file is not in a valid format")
		}
		scoped.Info("Validation successful.")
	}

	if err := parser.ConvertToCSV(inputFile, outputFile); err != nil {
		log.Fatalf("Error converting to CSV: %v", err)
	}
	scoped.Info("Conversion completed successfully!")
}
