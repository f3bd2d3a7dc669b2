// Package camtparser converts ISO 20022 camt.053 bank statements into YNAB
// import records. An entry with nested transaction details fans out into one
// record per detail; an entry without details yields a single record built
// from the entry-level fields.
package camtparser

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"

	"atamur/ynab-csv/internal/common"
	"atamur/ynab-csv/internal/fileutils"
	"atamur/ynab-csv/internal/models"
	"atamur/ynab-csv/internal/parsererror"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseFile parses a camt.053 XML file and returns the extracted records.
func ParseFile(filePath string) ([]models.Record, error) {
	log.WithField("file", filePath).Info("Parsing CAMT.053 file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CAMT.053 file")
		return nil, fmt.Errorf("error opening CAMT.053 file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	records, err := Parse(file)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "CAMT.053",
			Msg:            err.Error(),
		}
	}

	log.WithField("count", len(records)).Info("Successfully parsed CAMT.053 file")
	return records, nil
}

// Parse decodes a camt.053 document from r and extracts its records in
// document order. Non-UTF-8 encodings declared in the XML prolog are handled
// transparently.
func Parse(r io.Reader) ([]models.Record, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var doc models.CAMT053Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding XML: %w", err)
	}

	var records []models.Record
	for _, stmt := range doc.BkToCstmrStmt.Stmts {
		owner := stmt.Acct.Owner.Name
		for _, entry := range stmt.Entries {
			records = append(records, extractEntry(entry, owner)...)
		}
	}

	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// ValidateFormat checks whether the file looks like a camt.053 statement.
func ValidateFormat(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		log.WithField("file", filePath).Info("File is not valid XML")
		return false, nil
	}

	path := xmlpath.MustCompile("//BkToCstmrStmt/Stmt")
	if iter := path.Iter(root); !iter.Next() {
		log.WithField("file", filePath).Info("File is not a CAMT.053 statement (no Stmt elements)")
		return false, nil
	}

	return true, nil
}

// ConvertToCSV converts a camt.053 XML file to the YNAB CSV layout.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}

// BatchConvert converts every .xml file in sourceDir that validates as
// camt.053, writing one .csv per input into targetDir. Returns the number of
// files converted.
func BatchConvert(sourceDir, targetDir string) (int, error) {
	if !fileutils.DirectoryExists(sourceDir) {
		return 0, fmt.Errorf("source directory does not exist: %s", sourceDir)
	}
	if err := fileutils.EnsureDirectoryExists(targetDir); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return 0, fmt.Errorf("error reading source directory: %w", err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		inputFile := filepath.Join(sourceDir, e.Name())
		ok, err := ValidateFormat(inputFile)
		if err != nil || !ok {
			log.WithField("file", inputFile).Debug("Skipping non-CAMT.053 file")
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		outputFile := filepath.Join(targetDir, base+".csv")
		if err := ConvertToCSV(inputFile, outputFile); err != nil {
			return count, fmt.Errorf("error converting %s: %w", inputFile, err)
		}
		count++
	}

	log.WithField("count", count).Info("Batch conversion complete")
	return count, nil
}
