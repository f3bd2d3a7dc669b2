// Package common provides shared functionality across different parsers.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/internal/models"
	"atamur/ynab-csv/internal/parsererror"
)

var log = logrus.New()

// Delimiter is the global CSV output delimiter, configured at startup.
var Delimiter rune = ','

// payeeOverrides maps extracted payee names to user-preferred replacements,
// loaded from the payee store at startup.
var payeeOverrides map[string]string

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetPayeeOverrides installs the payee rename map applied when writing.
func SetPayeeOverrides(overrides map[string]string) {
	payeeOverrides = overrides
}

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteRecordsToCSV writes records to a CSV file in the YNAB import layout.
// All parsers use this function to ensure consistent output: one header row,
// the configured delimiter, and payee overrides applied last so they win over
// whatever the parsers extracted.
func WriteRecordsToCSV(records []models.Record, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Writing records to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	for i := range records {
		if replacement, ok := payeeOverrides[records[i].Payee]; ok {
			records[i].Payee = replacement
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Successfully wrote records to CSV file")

	return nil
}

// GeneralizedConvertToCSV combines validation, parsing and writing to CSV.
// It is used by parsers implementing the standard interface.
func GeneralizedConvertToCSV(
	inputFile string,
	outputFile string,
	parseFunc func(string) ([]models.Record, error),
	validateFunc func(string) (bool, error),
) error {
	log.WithFields(logrus.Fields{
		"input":  inputFile,
		"output": outputFile,
	}).Info("Converting file to CSV")

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return parsererror.FileNotFound(inputFile)
	}

	if validateFunc != nil {
		isValid, err := validateFunc(inputFile)
		if err != nil {
			return fmt.Errorf("error validating file format: %w", err)
		}
		if !isValid {
			return fmt.Errorf("invalid file format: %s", inputFile)
		}
	}

	records, err := parseFunc(inputFile)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}

	if err := WriteRecordsToCSV(records, outputFile); err != nil {
		return fmt.Errorf("error writing records to CSV: %w", err)
	}

	log.WithFields(logrus.Fields{
		"input":  inputFile,
		"output": outputFile,
		"count":  len(records),
	}).Info("Successfully converted file to CSV")

	return nil
}
