// Package mt940parser converts SWIFT MT940 plain-text bank statements into
// YNAB import records. A :61: tag opens a transaction; :86: tags and
// untagged continuation lines feed its remittance text until the next :61:
// or end of input finalizes it.
package mt940parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"atamur/ynab-csv/internal/common"
	"atamur/ynab-csv/internal/currencyutils"
	"atamur/ynab-csv/internal/dateutils"
	"atamur/ynab-csv/internal/fileutils"
	"atamur/ynab-csv/internal/models"
	"atamur/ynab-csv/internal/textutils"
)

const (
	debitMark  = "D"
	creditMark = "C"

	memoSeparator    = " | "
	payeeFromMemoLen = 64
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	txnLineRe      = regexp.MustCompile(`^(\d{6})(\d{4})?([DC])(.*)$`)
	currencyLineRe = regexp.MustCompile(`:60F:.*?[DC]\s*(\d{6})?([A-Z]{3})`)
)

// pending is the single transaction-in-progress of the state machine.
type pending struct {
	date       time.Time
	direction  string
	amount     decimal.Decimal
	remittance string
	fragments  []string
}

func (p *pending) finalize() models.Record {
	set := textutils.NewOrderedSet()
	for _, f := range p.fragments {
		set.Add(strings.TrimSpace(f))
	}
	set.Add(strings.Join(strings.Fields(p.remittance), " "))
	memo := textutils.Truncate(set.Join(memoSeparator), models.MemoMaxLen)

	payee := ExtractPayee(p.remittance, p.direction)
	if payee == "" {
		// Never leave the payee empty; a memo slice beats a blank column.
		payee = truncate(memo, payeeFromMemoLen)
	}

	creditDebit := models.Debit
	if p.direction == creditMark {
		creditDebit = models.Credit
	}
	return models.NewRecord(p.date, payee, memo, p.amount, creditDebit)
}

// Parse runs the tag state machine over the statement lines and returns one
// record per :61: occurrence, in document order.
func Parse(lines []string) []models.Record {
	var records []models.Record
	var current *pending
	inRemittance := false
	currency := ""

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")

		switch {
		case strings.HasPrefix(line, ":60F:"):
			if m := currencyLineRe.FindStringSubmatch(line); m != nil {
				currency = m[2]
				log.WithField("currency", currency).Debug("Statement currency")
			}
			inRemittance = false

		case strings.HasPrefix(line, ":61:"):
			if current != nil {
				records = append(records, current.finalize())
			}
			inRemittance = false
			current = parseTransactionLine(strings.TrimSpace(line[len(":61:"):]))

		case strings.HasPrefix(line, ":86:"):
			inRemittance = true
			if current != nil {
				body := strings.TrimSpace(line[len(":86:"):])
				if current.remittance == "" {
					current.remittance = body
				} else {
					current.remittance += " " + body
				}
			}

		case strings.HasPrefix(line, ":"):
			// Another tag ends remittance accumulation; the transaction
			// itself stays open until the next :61: or end of input.
			inRemittance = false

		default:
			if current == nil {
				continue
			}
			if inRemittance {
				if line != "" {
					current.remittance += " " + strings.TrimSpace(line)
				}
			} else if strings.TrimSpace(line) != "" {
				current.fragments = append(current.fragments, strings.TrimSpace(line))
			}
		}
	}

	if current != nil {
		records = append(records, current.finalize())
	}
	if records == nil {
		records = []models.Record{}
	}
	return records
}

// parseTransactionLine parses a :61: body into a fresh transaction. A body
// that does not match the tag grammar still opens a placeholder transaction
// carrying the raw text, so no input line is silently dropped.
func parseTransactionLine(body string) *pending {
	m := txnLineRe.FindStringSubmatch(body)
	if m == nil {
		log.WithField("line", body).Warn("Unrecognized :61: line, emitting placeholder transaction")
		return &pending{
			date:      dateutils.Placeholder(),
			direction: debitMark,
			amount:    decimal.Zero,
			fragments: []string{body},
		}
	}

	date, err := dateutils.ParseYYMMDD(m[1])
	if err != nil {
		log.WithField("date", m[1]).Warn("Unparseable value date, using placeholder")
		date = dateutils.Placeholder()
	}

	amount := decimal.Zero
	if token := currencyutils.FirstAmountToken(m[4]); token != "" {
		amount = currencyutils.ParseAmount(token)
	}

	return &pending{
		date:      date,
		direction: m[3],
		amount:    amount,
	}
}

// ParseFile reads and parses an MT940 statement file. Files that are not
// valid UTF-8 are decoded as Windows-1252, the usual encoding of older Swiss
// bank exports.
func ParseFile(filePath string) ([]models.Record, error) {
	log.WithField("file", filePath).Info("Parsing MT940 file")

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to read MT940 file")
		return nil, fmt.Errorf("error reading MT940 file: %w", err)
	}

	text := string(data)
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding MT940 file: %w", err)
		}
		text = string(decoded)
		log.WithField("file", filePath).Debug("Decoded file as Windows-1252")
	}

	records := Parse(strings.Split(text, "\n"))
	log.WithField("count", len(records)).Info("Successfully parsed MT940 file")
	return records, nil
}

// ValidateFormat checks whether the file looks like an MT940 statement by
// scanning for a :61: transaction tag or a :60F: opening-balance tag.
func ValidateFormat(filePath string) (bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("error reading file: %w", err)
	}
	text := string(data)
	if strings.Contains(text, ":61:") || strings.Contains(text, ":60F:") {
		return true, nil
	}
	log.WithField("file", filePath).Info("File is not an MT940 statement (no :61:/:60F: tags)")
	return false, nil
}

// ConvertToCSV converts an MT940 statement file to the YNAB CSV layout.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile,
		ParseFile, ValidateFormat)
}

// BatchConvert converts every file in sourceDir that validates as MT940,
// writing one .csv per input into targetDir. Returns the number of files
// converted.
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
		if e.IsDir() {
			continue
		}
		inputFile := filepath.Join(sourceDir, e.Name())
		ok, err := ValidateFormat(inputFile)
		if err != nil || !ok {
			log.WithField("file", inputFile).Debug("Skipping non-MT940 file")
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
