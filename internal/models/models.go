// Package models defines the shared data structures exchanged between the
// statement parsers and the CSV writer.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"atamur/ynab-csv/internal/dateutils"
	"atamur/ynab-csv/internal/textutils"
)

// Credit/debit indicators as used by ISO 20022. Every parser normalizes its
// source's direction signal into one of these.
const (
	Credit = "CRDT"
	Debit  = "DBIT"
)

// Column limits applied to every output row.
const (
	PayeeMaxLen = 100
	MemoMaxLen  = 512
)

// Record is a single row of the YNAB import CSV. Exactly one of Outflow and
// Inflow is non-empty; amounts are absolute values with two decimal places
// and no currency symbol.
type Record struct {
	Date     string `csv:"Date"`
	Payee    string `csv:"Payee"`
	Category string `csv:"Category"`
	Memo     string `csv:"Memo"`
	Outflow  string `csv:"Outflow"`
	Inflow   string `csv:"Inflow"`
}

// NewRecord builds a Record, enforcing the column invariants: payee and memo
// are cleaned and capped, the amount lands in Outflow for debits and Inflow
// for credits, and Category stays empty for the user to assign in YNAB.
func NewRecord(date time.Time, payee, memo string, amount decimal.Decimal, creditDebit string) Record {
	r := Record{
		Date:  dateutils.ToYNAB(date),
		Payee: textutils.Truncate(textutils.Clean(payee), PayeeMaxLen),
		Memo:  textutils.Truncate(textutils.Clean(memo), MemoMaxLen),
	}
	value := amount.Abs().StringFixed(2)
	if creditDebit == Credit {
		r.Inflow = value
	} else {
		r.Outflow = value
	}
	return r
}
