// Package dateutils centralizes date parsing and formatting for the
// statement parsers. All output rows use the DD/MM/YYYY layout YNAB's
// importer accepts.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutISO is the ISO-8601 date layout used by CAMT.053 documents.
	LayoutISO = "2006-01-02"
	// LayoutYNAB is the output layout for the Date column.
	LayoutYNAB = "02/01/2006"
)

// Placeholder returns the sentinel date substituted when a statement line
// carries no parseable date. It is deliberately far in the past so bad rows
// are obvious during import review.
func Placeholder() time.Time {
	return time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// ParseISODate parses an ISO date, tolerating a trailing time component as
// emitted by some banks in <DtTm> elements.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(value) > len(LayoutISO) {
		value = value[:len(LayoutISO)]
	}
	t, err := time.Parse(LayoutISO, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", value, err)
	}
	return t, nil
}

// ParseYYMMDD parses the 6-digit value date of an MT940 :61: line. Years are
// pivoted into 2000-2099, which covers every statement this tool will ever
// see.
func ParseYYMMDD(value string) (time.Time, error) {
	if len(value) != 6 {
		return time.Time{}, fmt.Errorf("invalid YYMMDD date %q", value)
	}
	t, err := time.Parse("060102", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid YYMMDD date %q: %w", value, err)
	}
	return t, nil
}

// ToYNAB formats t in the output layout.
func ToYNAB(t time.Time) string {
	return t.Format(LayoutYNAB)
}

// NormalizeISO converts an ISO date string to the output layout, returning
// the placeholder date when the value cannot be parsed.
func NormalizeISO(value string) string {
	t, err := ParseISODate(value)
	if err != nil {
		return ToYNAB(Placeholder())
	}
	return ToYNAB(t)
}
