package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below unwrap to these so callers can use
// errors.Is without caring about the detail carried.
var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("application not found")
	ErrAmbiguousMatch = errors.New("multiple applications found")
	ErrTooManyMatches = errors.New("too many applications found")
	ErrTableNotFound  = errors.New("table not found")
)

// MissingColumnError reports a criteria key or expected header that is not
// present in a table's header row.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("missing required column %q in table %s", e.Column, e.Table)
	}
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// NotFoundError reports that no application matched the criteria.
type NotFoundError struct {
	Criteria Criteria
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no application found for criteria: %s", e.Criteria)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AmbiguousMatchError reports between two and MaxAmbiguousMatches candidate
// applications. Matches holds one summary line per candidate.
type AmbiguousMatchError struct {
	Company string
	Matches []MatchSummary
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple applications (%d) found for company %s: refine your search criteria",
		len(e.Matches), e.Company)
}

func (e *AmbiguousMatchError) Unwrap() error { return ErrAmbiguousMatch }

// Listing renders the candidates as the disambiguation prompt shown to users.
func (e *AmbiguousMatchError) Listing() string {
	lines := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		lines[i] = m.String()
	}
	return fmt.Sprintf("Multiple applications found for company %s:\n\n%s\n\nTry using a uniquely identifying sub-field.",
		e.Company, strings.Join(lines, "\n"))
}

// TooManyMatchesError reports more candidates than a listing may show.
type TooManyMatchesError struct {
	Company string
	Count   int
}

func (e *TooManyMatchesError) Error() string {
	return fmt.Sprintf("too many applications (%d) found for company %s: try using a uniquely identifying sub-field",
		e.Count, e.Company)
}

func (e *TooManyMatchesError) Unwrap() error { return ErrTooManyMatches }

// invalidInput wraps ErrInvalidInput with a message.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
