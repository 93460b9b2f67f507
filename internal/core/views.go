package core

import (
	"context"
	"strings"
)

// StatusAll disables the status filter of LatestApplications.
const StatusAll = "All"

// ApplicationDetail is a resolved application with its status and, when the
// application is Considered, its consideration record.
type ApplicationDetail struct {
	Application   Application `json:"application"`
	Consideration Record      `json:"consideration,omitempty"`
}

// CompanyView lists every application to a company, newest first.
type CompanyView struct {
	Company        string        `json:"company"`
	AppliedCount   int           `json:"appliedCount"`
	RejectionCount int           `json:"rejectionCount"`
	Applications   []Application `json:"applications"`
}

// LatestQuery selects the latest applications view.
type LatestQuery struct {
	Status     string `json:"status"`     // a Status, or "All"
	SortField  string `json:"sortField"`  // column to order the page by
	Descending bool   `json:"descending"` // order of SortField
	Count      int    `json:"count"`      // page size, 0 for all
}

// ApplicationView resolves an application and gathers its details.
func (s *Service) ApplicationView(ctx context.Context, search AppSearch) (ApplicationDetail, error) {
	app, err := s.FindApplication(ctx, search)
	if err != nil {
		return ApplicationDetail{}, err
	}

	detail := ApplicationDetail{Application: app}
	if app.Status != StatusConsidered {
		return detail, nil
	}

	t, err := LoadTable(ctx, s.store, TableConsiderations)
	if err != nil {
		return ApplicationDetail{}, err
	}
	matches, err := FindRecords(t, Criteria{ColApplicationID: app.ID()})
	if err != nil {
		return ApplicationDetail{}, err
	}
	// The filter matches substrings; IDs must match exactly.
	for _, m := range matches {
		if m.Text(ColApplicationID) == app.ID() {
			detail.Consideration = m
			break
		}
	}
	return detail, nil
}

// CompanyView lists the applications whose Company contains company.
// A company with no applications yields an empty view.
func (s *Service) CompanyView(ctx context.Context, company string) (CompanyView, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return CompanyView{}, invalidInput("company name required")
	}

	t, err := LoadTable(ctx, s.store, TableApplications)
	if err != nil {
		return CompanyView{}, err
	}
	records, err := FindRecords(t, Criteria{ColCompany: company})
	if err != nil {
		return CompanyView{}, err
	}

	apps, err := s.join.Enrich(ctx, records)
	if err != nil {
		return CompanyView{}, err
	}
	sortByAppliedDesc(apps)

	view := CompanyView{
		Company:      company,
		AppliedCount: len(apps),
		Applications: apps,
	}
	for _, a := range apps {
		if a.Status == StatusRejected {
			view.RejectionCount++
		}
	}
	return view, nil
}

// LatestApplications returns the newest applications, optionally limited to
// one status, then ordered by q.SortField.
func (s *Service) LatestApplications(ctx context.Context, q LatestQuery) ([]Application, error) {
	status := strings.TrimSpace(q.Status)
	if status != "" && status != StatusAll && !validStatus(status) {
		return nil, invalidInput("unknown status %q", status)
	}
	if q.Count < 0 {
		return nil, invalidInput("count must not be negative")
	}

	t, err := LoadTable(ctx, s.store, TableApplications)
	if err != nil {
		return nil, err
	}
	if t.IsEmpty() {
		return []Application{}, nil
	}

	apps, err := s.join.Enrich(ctx, ToRecords(t.Header, t.Rows))
	if err != nil {
		return nil, err
	}

	if status != "" && status != StatusAll {
		filtered := apps[:0]
		for _, a := range apps {
			if string(a.Status) == status {
				filtered = append(filtered, a)
			}
		}
		apps = filtered
	}

	sortByAppliedDesc(apps)
	if q.Count > 0 && len(apps) > q.Count {
		apps = apps[:q.Count]
	}
	SortApplications(apps, q.SortField, q.Descending)
	return apps, nil
}

func validStatus(s string) bool {
	for _, st := range Statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}
