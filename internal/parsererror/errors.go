package parsererror

import "fmt"

// ParseError represents an error while extracting a field during parsing.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// RateLookupError represents a failed currency-rate lookup for one record.
// Callers skip the affected record; the error never aborts a whole run.
type RateLookupError struct {
	Date string
	From string
	To   string
	Err  error
}

func (e *RateLookupError) Error() string {
	return fmt.Sprintf("rate lookup %s->%s on %s failed: %v",
		e.From, e.To, e.Date, e.Err)
}

func (e *RateLookupError) Unwrap() error {
	return e.Err
}

// FileNotFound builds the standard error for a missing input file.
func FileNotFound(path string) error {
	return fmt.Errorf("input file does not exist: %s", path)
}
