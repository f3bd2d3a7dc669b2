// Package releasesparser converts broker "Releases Report" CSV exports into
// YNAB import records. All share releases of one vest date are aggregated
// into a single inflow row, converted once with that date's USD exchange
// rate, with a volume-weighted average price in the memo.
package releasesparser

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/internal/common"
	"atamur/ynab-csv/internal/currencyutils"
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
	payee          = "Google stocks"
)

// SetRateLookup installs the exchange-rate source for USD conversion.
func SetRateLookup(lookup fxrate.Lookup) {
	rateLookup = lookup
}

// SetTargetCurrency sets the currency release proceeds are converted into.
func SetTargetCurrency(currency string) {
	if currency != "" {
		targetCurrency = currency
	}
}

// SetPayee sets the fixed payee label used for all release rows.
func SetPayee(label string) {
	if label != "" {
		payee = label
	}
}

// baseCurrency is the currency share releases are reported in.
const baseCurrency = "USD"

// Row mirrors the columns of a broker releases report.
type Row struct {
	Type             string `csv:"Type"`
	Status           string `csv:"Status"`
	VestDate         string `csv:"Vest Date"`
	Price            string `csv:"Price"`
	NetShareProceeds string `csv:"Net Share Proceeds"`
}

const vestDateLayout = "02-Jan-2006"

// group accumulates one vest date's releases.
type group struct {
	date   time.Time
	shares decimal.Decimal
	usd    decimal.Decimal
}

// ParseFile parses a releases report and returns one aggregated record per
// vest date, sorted by date. A failed rate lookup skips the affected date
// with a diagnostic rather than aborting the run.
func ParseFile(filePath string) ([]models.Record, error) {
	log.WithField("file", filePath).Info("Parsing releases report")

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to read releases report")
		return nil, fmt.Errorf("error reading releases report: %w", err)
	}
	// Broker exports carry a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("error parsing releases report: %w", err)
	}

	groups := make(map[string]*group)
	for _, row := range rows {
		if !strings.EqualFold(strings.TrimSpace(row.Type), "Release") ||
			!strings.EqualFold(strings.TrimSpace(row.Status), "Complete") {
			continue
		}
		vestDate, err := time.Parse(vestDateLayout, strings.TrimSpace(row.VestDate))
		if err != nil {
			log.WithError(&parsererror.ParseError{
				Parser: "releases",
				Field:  "Vest Date",
				Value:  row.VestDate,
				Err:    err,
			}).Warn("Skipping row with invalid vest date")
			continue
		}

		price := currencyutils.ParseAmount(row.Price)
		shares := currencyutils.ParseAmount(row.NetShareProceeds)

		key := vestDate.Format(dateutils.LayoutISO)
		g, ok := groups[key]
		if !ok {
			g = &group{date: vestDate}
			groups[key] = g
		}
		g.shares = g.shares.Add(shares)
		g.usd = g.usd.Add(price.Mul(shares))
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx := context.Background()
	records := make([]models.Record, 0, len(groups))
	for _, key := range keys {
		g := groups[key]

		rate, err := lookupRate(ctx, g.date)
		if err != nil {
			log.WithError(err).WithField("date", key).Warn("Skipping vest date, rate lookup failed")
			continue
		}

		vwap := decimal.Zero
		if !g.shares.IsZero() {
			vwap = g.usd.Div(g.shares)
		}
		memo := fmt.Sprintf("%s x %s @ %s",
			g.shares.String(), vwap.StringFixed(2), rate.StringFixed(3))

		records = append(records, models.NewRecord(
			g.date, payee, memo, g.usd.Mul(rate).Round(2), models.Credit))
	}

	log.WithField("count", len(records)).Info("Successfully parsed releases report")
	return records, nil
}

func lookupRate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	if rateLookup == nil {
		return decimal.Zero, fmt.Errorf("no rate lookup configured for %s conversion", baseCurrency)
	}
	return rateLookup.Rate(ctx, date, baseCurrency, targetCurrency)
}

// ValidateFormat checks whether the file header matches a releases report.
func ValidateFormat(filePath string) (bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("error reading file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return false, nil
	}
	for _, row := range rows {
		if row.VestDate == "" || row.Type == "" {
			return false, nil
		}
		break
	}
	return true, nil
}

// ConvertToCSV converts a releases report to the YNAB CSV layout.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}
