// Package revolutparser converts Revolut account-statement CSV exports into
// YNAB import records, converting foreign-currency rows into the configured
// target currency via historical exchange rates.
package revolutparser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/internal/common"
	"atamur/ynab-csv/internal/dateutils"
	"atamur/ynab-csv/internal/fxrate"
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

var (
	rateLookup     fxrate.Lookup
	targetCurrency = "CHF"
)

// SetRateLookup installs the exchange-rate source used for non-target
// currency rows. Without one, foreign-currency rows are skipped.
func SetRateLookup(lookup fxrate.Lookup) {
	rateLookup = lookup
}

// SetTargetCurrency sets the currency all amounts are converted into.
func SetTargetCurrency(currency string) {
	if currency != "" {
		targetCurrency = currency
	}
}

// Row mirrors the columns of a Revolut account-statement export.
type Row struct {
	Type        string          `csv:"Type"`
	Product     string          `csv:"Product"`
	StartedDate string          `csv:"Started Date"`
	Description string          `csv:"Description"`
	Amount      decimal.Decimal `csv:"Amount"`
	Fee         decimal.Decimal `csv:"Fee"`
	Currency    string          `csv:"Currency"`
	State       string          `csv:"State"`
}

const startedDateLayout = "2006-01-02 15:04:05"

// ParseFile parses a Revolut CSV export and returns the extracted records.
// Rows that are not COMPLETED, net to zero after fees, or merely move money
// into the target currency are dropped; a failed rate lookup skips the
// affected row with a diagnostic rather than aborting the run.
func ParseFile(filePath string) ([]models.Record, error) {
	rows, err := common.ReadCSVFile[Row](filePath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		if row.State != "COMPLETED" {
			continue
		}

		date, err := time.Parse(startedDateLayout, row.StartedDate)
		if err != nil {
			log.WithError(&parsererror.ParseError{
				Parser: "revolut",
				Field:  "Started Date",
				Value:  row.StartedDate,
				Err:    err,
			}).Warn("Skipping row with invalid started date")
			continue
		}

		net := row.Amount.Sub(row.Fee)
		if net.IsZero() {
			continue
		}
		// Internal exchanges into the target currency would double-count
		// against the foreign-side row.
		if row.Description == "To "+targetCurrency {
			continue
		}

		amount := net
		memo := ""
		if row.Currency != targetCurrency {
			memo = fmt.Sprintf("Original: %s %s", net.StringFixed(2), row.Currency)
			converted, err := convert(ctx, date, row.Currency, net)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"payee": row.Description,
					"date":  date.Format(dateutils.LayoutISO),
				}).Warn("Skipping row, currency conversion failed")
				continue
			}
			amount = converted
			memo += fmt.Sprintf(" | Converted: %s %s", amount.StringFixed(2), targetCurrency)
		}

		// Account statement convention: positive amounts are money in.
		creditDebit := models.Debit
		if amount.IsPositive() {
			creditDebit = models.Credit
		}

		records = append(records, models.NewRecord(
			date, row.Description, memo, amount.Round(2), creditDebit))
	}

	log.WithField("count", len(records)).Info("Successfully parsed Revolut CSV file")
	return records, nil
}

func convert(ctx context.Context, date time.Time, from string, amount decimal.Decimal) (decimal.Decimal, error) {
	if rateLookup == nil {
		return decimal.Zero, fmt.Errorf("no rate lookup configured for %s conversion", from)
	}
	rate, err := rateLookup.Rate(ctx, date, from, targetCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

// ValidateFormat checks whether the file header matches a Revolut export.
func ValidateFormat(filePath string) (bool, error) {
	rows, err := common.ReadCSVFile[Row](filePath)
	if err != nil {
		return false, nil
	}
	for _, row := range rows {
		if row.StartedDate == "" || row.State == "" {
			return false, nil
		}
		break
	}
	return true, nil
}

// ConvertToCSV converts a Revolut CSV export to the YNAB CSV layout.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}

// TrimOutputName derives the conventional output name for an input export,
// replacing the .csv suffix with _ynab.csv.
func TrimOutputName(inputFile string) string {
	if strings.HasSuffix(inputFile, ".csv") {
		return strings.TrimSuffix(inputFile, ".csv") + "_ynab.csv"
	}
	return inputFile + "_ynab.csv"
}
