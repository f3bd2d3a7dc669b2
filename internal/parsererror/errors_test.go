package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorWrapping(t *testing.T) {
	cause := errors.New("bad digit")
	err := &ParseError{Parser: "mt940", Field: "amount", Value: "1x0", Err: cause}

	assert.Contains(t, err.Error(), "mt940")
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "1x0")
	assert.ErrorIs(t, err, cause)
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		FilePath:       "stmt.xml",
		ExpectedFormat: "CAMT.053",
		Msg:            "no statements found",
	}
	assert.Contains(t, err.Error(), "stmt.xml")
	assert.Contains(t, err.Error(), "CAMT.053")
}

func TestRateLookupErrorWrapping(t *testing.T) {
	cause := errors.New("timeout")
	err := &RateLookupError{Date: "2025-07-25", From: "USD", To: "CHF", Err: cause}

	assert.Contains(t, err.Error(), "USD->CHF")
	assert.Contains(t, err.Error(), "2025-07-25")
	assert.ErrorIs(t, err, cause)
}
