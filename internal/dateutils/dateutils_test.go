package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2023-05-17")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseISODate("2023-05-17T14:30:00")
	assert.NoError(t, err)
	assert.Equal(t, 17, d.Day())

	_, err = ParseISODate("")
	assert.Error(t, err)

	_, err = ParseISODate("17.05.2023")
	assert.Error(t, err)
}

func TestParseYYMMDD(t *testing.T) {
	d, err := ParseYYMMDD("250115")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseYYMMDD("25011")
	assert.Error(t, err)

	_, err = ParseYYMMDD("2501AB")
	assert.Error(t, err)
}

func TestToYNAB(t *testing.T) {
	assert.Equal(t, "05/01/2025", ToYNAB(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeISO(t *testing.T) {
	assert.Equal(t, "17/05/2023", NormalizeISO("2023-05-17"))
	assert.Equal(t, "01/01/2000", NormalizeISO("garbage"))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "01/01/2000", ToYNAB(Placeholder()))
}
