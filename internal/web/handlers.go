package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/jobtracker/internal/core"
	"github.com/JonMunkholm/jobtracker/internal/web/templates"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// relatedKinds maps POST /api/{kind} path segments to form kinds.
var relatedKinds = map[string]string{
	"rejections":     core.FormRejection,
	"closures":       core.FormClosure,
	"considerations": core.FormConsideration,
	"interviews":     core.FormInterview,
}

// logRequest is the body of the logging endpoints.
type logRequest struct {
	Search core.AppSearch    `json:"search"`
	Inputs map[string]string `json:"inputs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ListTables())
}

// searchFromQuery reads company, field and value query parameters.
func searchFromQuery(r *http.Request) core.AppSearch {
	q := r.URL.Query()
	return core.AppSearch{
		Company: q.Get("company"),
		Field:   q.Get("field"),
		Value:   q.Get("value"),
	}
}

func (s *Server) handleFindApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.service.FindApplication(r.Context(), searchFromQuery(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, app)
}

func (s *Server) handleApplicationView(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.ApplicationView(r.Context(), searchFromQuery(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: bad application id", core.ErrInvalidInput))
		return
	}

	st, err := s.service.Status(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.StatusBadge(id, st).Render(r.Context(), w)
		return
	}
	writeJSON(w, map[string]any{"id": id, "status": st})
}

func (s *Server) handleLatestApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := core.LatestQuery{
		Status:    q.Get("status"),
		SortField: q.Get("sort"),
	}
	if v := q.Get("desc"); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("%w: desc must be true or false", core.ErrInvalidInput))
			return
		}
		query.Descending = desc
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("%w: count must be a number", core.ErrInvalidInput))
			return
		}
		query.Count = n
	}

	apps, err := s.service.LatestApplications(r.Context(), query)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.ApplicationRows(apps, []string{core.ColAppliedDate, core.ColCompany, core.ColListingJobTitle, core.ColLocation}).Render(r.Context(), w)
		return
	}
	writeJSON(w, apps)
}

func (s *Server) handleCompanyView(w http.ResponseWriter, r *http.Request) {
	company, err := url.PathUnescape(chi.URLParam(r, "company"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: bad company name", core.ErrInvalidInput))
		return
	}

	view, err := s.service.CompanyView(r.Context(), company)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleLogApplication(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLogRequest(w, r)
	if !ok {
		return
	}
	rec, err := s.service.LogApplication(r.Context(), req.Inputs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, rec)
}

func (s *Server) handleLogResume(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLogRequest(w, r)
	if !ok {
		return
	}
	rec, err := s.service.LogResume(r.Context(), req.Inputs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, rec)
}

func (s *Server) handleLogRelated(w http.ResponseWriter, r *http.Request) {
	kind, ok := relatedKinds[strings.ToLower(chi.URLParam(r, "kind"))]
	if !ok {
		http.NotFound(w, r)
		return
	}

	req, ok := s.decodeLogRequest(w, r)
	if !ok {
		return
	}
	rec, err := s.service.LogRelated(r.Context(), kind, req.Search, req.Inputs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, rec)
}

// decodeLogRequest reads a logRequest body, writing the error response
// itself when the body is unusable.
func (s *Server) decodeLogRequest(w http.ResponseWriter, r *http.Request) (logRequest, bool) {
	var req logRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: decode request body: %v", core.ErrInvalidInput, err))
		return logRequest{}, false
	}
	if req.Inputs == nil {
		req.Inputs = map[string]string{}
	}
	return req, true
}
