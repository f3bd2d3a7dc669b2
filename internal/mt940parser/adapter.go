package mt940parser

import (
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/internal/models"
)

// Adapter exposes the package's functions through the models.Parser
// interface for use by the parser factory.
type Adapter struct{}

// NewAdapter creates a new MT940 parser adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// ParseFile implements models.Parser.
func (a *Adapter) ParseFile(filePath string) ([]models.Record, error) {
	return ParseFile(filePath)
}

// ValidateFormat implements models.Parser.
func (a *Adapter) ValidateFormat(filePath string) (bool, error) {
	return ValidateFormat(filePath)
}

// ConvertToCSV implements models.Parser.
func (a *Adapter) ConvertToCSV(inputFile, outputFile string) error {
	return ConvertToCSV(inputFile, outputFile)
}

// SetLogger implements models.Parser.
func (a *Adapter) SetLogger(logger *logrus.Logger) {
	SetLogger(logger)
}
