package models

import "github.com/sirupsen/logrus"

// Parser is the common interface implemented by all statement parsers.
type Parser interface {
	// ParseFile parses the input file and returns the extracted records.
	ParseFile(filePath string) ([]Record, error)

	// ValidateFormat checks whether the file matches the parser's format.
	ValidateFormat(filePath string) (bool, error)

	// ConvertToCSV parses the input file and writes the records as CSV.
	ConvertToCSV(inputFile, outputFile string) error

	// SetLogger redirects the parser's logging to the given logger.
	SetLogger(logger *logrus.Logger)
}
