// Package visecaparser converts Viseca card-transaction JSON exports into
// YNAB import records. Only booked, non-fee movements are kept; card amounts
// are positive for charges, so the sign is inverted relative to the bank
// statement parsers.
package visecaparser

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/internal/common"
	"atamur/ynab-csv/internal/dateutils"
	"atamur/ynab-csv/internal/models"
	"atamur/ynab-csv/internal/textutils"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// genericPrefixes are payment-processor prefixes that hide the actual
// merchant; the remainder after the prefix names the real counterparty.
var genericPrefixes = []string{"google", "wp*"}

type export struct {
	List []transaction `json:"list"`
}

type transaction struct {
	Date          string          `json:"date"`
	StateType     string          `json:"stateType"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PrettyName    string          `json:"prettyName"`
	MerchantName  string          `json:"merchantName"`
	MerchantPlace string          `json:"merchantPlace"`
	IsOnline      *bool           `json:"isOnline"`
}

// ParseFile parses a Viseca JSON export and returns the extracted records.
func ParseFile(filePath string) ([]models.Record, error) {
	log.WithField("file", filePath).Info("Parsing Viseca JSON file")

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to read Viseca file")
		return nil, fmt.Errorf("error reading Viseca file: %w", err)
	}

	var doc export
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding Viseca JSON: %w", err)
	}

	records := make([]models.Record, 0, len(doc.List))
	for _, tx := range doc.List {
		if tx.StateType != "booked" || tx.Type == "fee" {
			continue
		}

		date, err := dateutils.ParseISODate(tx.Date)
		if err != nil {
			log.WithField("date", tx.Date).Warn("Unparseable transaction date, using placeholder")
			date = dateutils.Placeholder()
		}

		// Card exports book charges as positive amounts.
		creditDebit := models.Debit
		if tx.Amount.IsNegative() {
			creditDebit = models.Credit
		}

		records = append(records, models.NewRecord(
			date, payee(tx), memo(tx), tx.Amount, creditDebit))
	}

	log.WithField("count", len(records)).Info("Successfully parsed Viseca JSON file")
	return records, nil
}

// payee prefers the processor's pretty name over the raw merchant name, and
// unwraps generic payment-gateway prefixes to surface the real merchant.
func payee(tx transaction) string {
	name := tx.PrettyName
	if name == "" {
		name = tx.MerchantName
	}

	lower := strings.ToLower(strings.TrimSpace(tx.MerchantName))
	for _, prefix := range genericPrefixes {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		remainder := strings.TrimSpace(strings.TrimLeft(tx.MerchantName[len(prefix):], " .:-_*#"))
		if remainder != "" {
			name = remainder
		}
		break
	}
	return name
}

// memo renders the merchant fields as key=value fragments.
func memo(tx transaction) string {
	set := textutils.NewOrderedSet()
	if tx.MerchantName != "" {
		set.Add("merchantName=" + tx.MerchantName)
	}
	if tx.MerchantPlace != "" {
		set.Add("merchantPlace=" + tx.MerchantPlace)
	}
	if tx.IsOnline != nil {
		set.Add(fmt.Sprintf("isOnline=%t", *tx.IsOnline))
	}
	return set.Join(" | ")
}

// ValidateFormat checks whether the file is a Viseca JSON export by probing
// for the top-level transaction list.
func ValidateFormat(filePath string) (bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("error reading file: %w", err)
	}

	var doc export
	if err := json.Unmarshal(data, &doc); err != nil {
		log.WithField("file", filePath).Info("File is not valid JSON")
		return false, nil
	}
	if doc.List == nil {
		log.WithField("file", filePath).Info("File is not a Viseca export (no transaction list)")
		return false, nil
	}
	return true, nil
}

// ConvertToCSV converts a Viseca JSON export to the YNAB CSV layout.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}
