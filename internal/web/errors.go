package web

// errors.go maps core errors to HTTP responses.
//
// Every error is:
//   - logged with its technical detail and the request ID
//   - mapped through core.MapError to a user message with an action
//   - rendered as JSON, or as an HTML fragment for HTMX requests
//
// Ambiguous searches carry their candidate listing in both forms.

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/jobtracker/internal/core"
	"github.com/JonMunkholm/jobtracker/internal/logging"
	"github.com/JonMunkholm/jobtracker/internal/web/templates"
)

// ErrorResponse is the JSON body of an error response.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Action  string              `json:"action,omitempty"`
	Code    string              `json:"code"`
	Matches []core.MatchSummary `json:"matches,omitempty"`
	Count   int                 `json:"count,omitempty"`
}

// statusFor returns the HTTP status for err.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrAmbiguousMatch):
		return http.StatusConflict
	case errors.Is(err, core.ErrTooManyMatches), errors.Is(err, core.ErrMissingColumn):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	log := logging.WithFields(r.Context(),
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request error")
	} else {
		log.Debug("request rejected")
	}

	var amb *core.AmbiguousMatchError
	isAmbiguous := errors.As(err, &amb)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if isAmbiguous {
			templates.MatchList(amb.Company, amb.Matches).Render(r.Context(), w)
			return
		}
		templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
		return
	}

	body := ErrorResponse{
		Error:   err.Error(),
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	if status >= http.StatusInternalServerError {
		// Internal detail stays in the log.
		body.Error = msg.Message
	}
	if isAmbiguous {
		body.Matches = amb.Matches
		body.Count = len(amb.Matches)
	}
	var tm *core.TooManyMatchesError
	if errors.As(err, &tm) {
		body.Count = tm.Count
	}
	writeJSONStatus(w, status, body)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
