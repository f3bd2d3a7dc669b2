// Package textutils provides small text normalization helpers shared by the
// statement parsers.
package textutils

import "strings"

// Clean collapses internal whitespace runs into single spaces and trims
// leading/trailing whitespace plus stray separator punctuation left over by
// field extraction.
func Clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " /-,")
}

// placeholders are party names some banks emit when the counterparty is
// unknown. They carry no information and must never become a payee.
var placeholders = map[string]struct{}{
	"notprovided":  {},
	"not provided": {},
}

// IsPlaceholderOrSelf reports whether name is empty, a known bank
// placeholder, or the account owner's own name. Comparison is
// case-insensitive on the cleaned value.
func IsPlaceholderOrSelf(name, owner string) bool {
	cleaned := Clean(name)
	if cleaned == "" {
		return true
	}
	lower := strings.ToLower(cleaned)
	if _, ok := placeholders[lower]; ok {
		return true
	}
	if owner != "" && strings.EqualFold(cleaned, Clean(owner)) {
		return true
	}
	return false
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// OrderedSet accumulates strings, preserving first-insertion order and
// dropping duplicates and empty values.
type OrderedSet struct {
	seen   map[string]struct{}
	values []string
}

// NewOrderedSet returns an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add appends value if it is non-empty and not already present.
func (s *OrderedSet) Add(value string) {
	if value == "" {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.values = append(s.values, value)
}

// Values returns the accumulated values in insertion order.
func (s *OrderedSet) Values() []string {
	return s.values
}

// Join concatenates the accumulated values with sep.
func (s *OrderedSet) Join(sep string) string {
	return strings.Join(s.values, sep)
}
