package visecaparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log = logrus.New()
	log.SetLevel(logrus.DebugLevel)
}

const sampleJSON = `{
  "list": [
    {
      "date": "2025-06-01T10:15:00",
      "stateType": "booked",
      "type": "purchase",
      "amount": 12.50,
      "prettyName": "Corner Bakery",
      "merchantName": "CORNER BAKERY ZRH",
      "merchantPlace": "Zurich",
      "isOnline": false
    },
    {
      "date": "2025-06-02T09:00:00",
      "stateType": "booked",
      "type": "purchase",
      "amount": 9.99,
      "merchantName": "GOOGLE *YouTubePremium",
      "isOnline": true
    },
    {
      "date": "2025-06-03T12:00:00",
      "stateType": "booked",
      "type": "fee",
      "amount": 2.00,
      "merchantName": "Monthly fee"
    },
    {
      "date": "2025-06-04T12:00:00",
      "stateType": "reserved",
      "type": "purchase",
      "amount": 5.00,
      "merchantName": "Pending Shop"
    },
    {
      "date": "2025-06-05T12:00:00",
      "stateType": "booked",
      "type": "refund",
      "amount": -20.00,
      "merchantName": "Refunding Store"
    }
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(file, []byte(sampleJSON), 0600))
	return file
}

func TestParseFileFiltersAndDirections(t *testing.T) {
	records, err := ParseFile(writeSample(t))
	require.NoError(t, err)

	// Fee and reserved rows are dropped.
	require.Len(t, records, 3)

	bakery := records[0]
	assert.Equal(t, "01/06/2025", bakery.Date)
	assert.Equal(t, "Corner Bakery", bakery.Payee)
	assert.Equal(t, "12.50", bakery.Outflow)
	assert.Empty(t, bakery.Inflow)
	assert.Contains(t, bakery.Memo, "merchantName=CORNER BAKERY ZRH")
	assert.Contains(t, bakery.Memo, "merchantPlace=Zurich")
	assert.Contains(t, bakery.Memo, "isOnline=false")

	refund := records[2]
	assert.Equal(t, "20.00", refund.Inflow)
	assert.Empty(t, refund.Outflow)
}

func TestGenericPrefixUnwrapping(t *testing.T) {
	records, err := ParseFile(writeSample(t))
	require.NoError(t, err)
	require.Len(t, records, 3)

	// "GOOGLE *YouTubePremium" surfaces the real merchant.
	assert.Equal(t, "YouTubePremium", records[1].Payee)
}

func TestValidateFormat(t *testing.T) {
	ok, err := ValidateFormat(writeSample(t))
	assert.NoError(t, err)
	assert.True(t, ok)

	dir := t.TempDir()
	notJSON := filepath.Join(dir, "x.json")
	require.NoError(t, os.WriteFile(notJSON, []byte("plain text"), 0600))
	ok, err = ValidateFormat(notJSON)
	assert.NoError(t, err)
	assert.False(t, ok)

	otherJSON := filepath.Join(dir, "y.json")
	require.NoError(t, os.WriteFile(otherJSON, []byte(`{"foo": 1}`), 0600))
	ok, err = ValidateFormat(otherJSON)
	assert.NoError(t, err)
	assert.False(t, ok)
}
