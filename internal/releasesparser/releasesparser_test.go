package releasesparser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log = logrus.New()
	log.SetLevel(logrus.DebugLevel)
}

type fakeLookup struct {
	rate string
	fail bool
}

func (f *fakeLookup) Rate(_ context.Context, _ time.Time, _, _ string) (decimal.Decimal, error) {
	if f.fail {
		return decimal.Zero, fmt.Errorf("rate service down")
	}
	return decimal.RequireFromString(f.rate), nil
}

const sampleCSV = "\xef\xbb\xbf" + `Type,Status,Vest Date,Price,Net Share Proceeds
Release,Complete,25-Jul-2025,$120.00,10
Release,Complete,25-Jul-2025,$130.00,20
Release,Complete,28-Jul-2025,$125.00,5
Release,Pending,29-Jul-2025,$125.00,5
Sale,Complete,30-Jul-2025,$125.00,5
`

func writeSample(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "Releases Report.csv")
	require.NoError(t, os.WriteFile(file, []byte(sampleCSV), 0600))
	return file
}

func TestParseFileAggregatesPerVestDate(t *testing.T) {
	defer SetRateLookup(nil)
	SetRateLookup(&fakeLookup{rate: "0.800"})

	records, err := ParseFile(writeSample(t))
	require.NoError(t, err)

	// Two complete release dates; pending and sale rows are dropped.
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "25/07/2025", first.Date)
	assert.Equal(t, "Google stocks", first.Payee)
	// 10*120 + 20*130 = 3800 USD, VWAP 3800/30 = 126.67, CHF = 3800*0.8.
	assert.Equal(t, "30 x 126.67 @ 0.800", first.Memo)
	assert.Equal(t, "3040.00", first.Inflow)
	assert.Empty(t, first.Outflow)

	second := records[1]
	assert.Equal(t, "28/07/2025", second.Date)
	assert.Equal(t, "5 x 125.00 @ 0.800", second.Memo)
	assert.Equal(t, "500.00", second.Inflow)
}

func TestParseFileSkipsDatesOnRateFailure(t *testing.T) {
	defer SetRateLookup(nil)
	SetRateLookup(&fakeLookup{fail: true})

	records, err := ParseFile(writeSample(t))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSetPayee(t *testing.T) {
	defer SetPayee("Google stocks")
	SetPayee("Stock vest")

	defer SetRateLookup(nil)
	SetRateLookup(&fakeLookup{rate: "1"})

	records, err := ParseFile(writeSample(t))
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, "Stock vest", records[0].Payee)
}

func TestValidateFormat(t *testing.T) {
	ok, err := ValidateFormat(writeSample(t))
	assert.NoError(t, err)
	assert.True(t, ok)

	other := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("Name,Value\na,1\n"), 0600))
	ok, err = ValidateFormat(other)
	assert.NoError(t, err)
	assert.False(t, ok)
}
