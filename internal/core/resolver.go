package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/jobtracker/internal/logging"
)

// MaxAmbiguousMatches is the largest candidate count that is still listed
// back to the user. More matches than this fail with TooManyMatchesError.
const MaxAmbiguousMatches = 10

// MatchSummary is one line of the disambiguation listing.
type MatchSummary struct {
	Index           int    `json:"index"`
	AppliedDate     string `json:"appliedDate"` // yyyyMMdd
	Location        string `json:"location"`
	ListingJobTitle string `json:"listingJobTitle"`
	Notes           string `json:"notes"`
}

func (m MatchSummary) String() string {
	return fmt.Sprintf("%d. Date: %s, Location: %s, Listing Job Title: %s, Notes: %s",
		m.Index, m.AppliedDate, m.Location, m.ListingJobTitle, m.Notes)
}

// Summarize builds the listing for a set of candidate applications.
func Summarize(records []Record) []MatchSummary {
	out := make([]MatchSummary, len(records))
	for i, r := range records {
		out[i] = MatchSummary{
			Index:           i + 1,
			AppliedDate:     CompactDate(r.Get(ColAppliedDate)),
			Location:        r.Text(ColLocation),
			ListingJobTitle: r.Text(ColListingJobTitle),
			Notes:           r.Text(ColNotes),
		}
	}
	return out
}

// AppSearch identifies an application by company plus an optional sub-field.
type AppSearch struct {
	Company string `json:"company"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Criteria converts the search into filter criteria. The sub-field is only
// included when both its name and value are non-blank.
func (s AppSearch) Criteria() Criteria {
	c := Criteria{ColCompany: s.Company}
	field, value := strings.TrimSpace(s.Field), strings.TrimSpace(s.Value)
	if field != "" && value != "" {
		c[field] = value
	}
	return c
}

// Resolver finds exactly one application from partial search criteria.
type Resolver struct {
	store    TableReader
	prompter Prompter
}

// NewResolver creates a Resolver over the Applications table of store.
// prompter may be nil.
func NewResolver(store TableReader, prompter Prompter) *Resolver {
	return &Resolver{store: store, prompter: prompter}
}

// FindApplication returns the single application whose Company contains
// company and, when field and value are both given, whose field contains
// value. Matching is a case-insensitive substring test.
//
// Zero matches yield a NotFoundError. Two to MaxAmbiguousMatches yield an
// AmbiguousMatchError carrying a listing, which is also sent to the
// prompter. More than that yield a TooManyMatchesError.
func (r *Resolver) FindApplication(ctx context.Context, company, field, value string) (Record, error) {
	return r.Find(ctx, AppSearch{Company: company, Field: field, Value: value})
}

// Find is FindApplication taking an AppSearch.
func (r *Resolver) Find(ctx context.Context, search AppSearch) (Record, error) {
	if strings.TrimSpace(search.Company) == "" {
		resolverOutcomes.WithLabelValues("error").Inc()
		return nil, invalidInput("company is required")
	}

	criteria := search.Criteria()

	t, err := LoadTable(ctx, r.store, TableApplications)
	if err != nil {
		resolverOutcomes.WithLabelValues("error").Inc()
		return nil, err
	}

	matches, err := FindRecords(t, criteria)
	if err != nil {
		resolverOutcomes.WithLabelValues("error").Inc()
		var mce *MissingColumnError
		if errors.As(err, &mce) && mce.Table == "" {
			mce.Table = TableApplications
		}
		return nil, err
	}

	log := logging.WithFields(ctx, "company", search.Company, "criteria", criteria.String(), "matches", len(matches))

	switch n := len(matches); {
	case n == 0:
		resolverOutcomes.WithLabelValues("not_found").Inc()
		log.Debug("no application matched")
		return nil, &NotFoundError{Criteria: criteria}
	case n == 1:
		resolverOutcomes.WithLabelValues("found").Inc()
		log.Debug("application resolved", "id", matches[0].Text(ColID))
		return matches[0], nil
	case n <= MaxAmbiguousMatches:
		resolverOutcomes.WithLabelValues("ambiguous").Inc()
		log.Debug("ambiguous application search")
		amb := &AmbiguousMatchError{Company: search.Company, Matches: Summarize(matches)}
		if r.prompter != nil {
			r.prompter.Prompt(ctx, amb.Listing())
		}
		return nil, amb
	default:
		resolverOutcomes.WithLabelValues("too_many").Inc()
		log.Debug("too many applications matched")
		return nil, &TooManyMatchesError{Company: search.Company, Count: n}
	}
}
