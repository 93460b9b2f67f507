package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/jobtracker/internal/config"
	"github.com/JonMunkholm/jobtracker/internal/core"
	"github.com/JonMunkholm/jobtracker/internal/forms"
	"github.com/JonMunkholm/jobtracker/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, RequestTimeout: 5 * time.Second, ShutdownTimeout: time.Second},
		Store:  config.StoreConfig{Driver: "memory"},
	}
}

// newTestServer returns a server over an in-memory store seeded with the
// given companies, one application each.
func newTestServer(t *testing.T, cfg *config.Config, companies ...string) (*Server, *store.Memory) {
	t.Helper()

	fs, err := forms.Default()
	require.NoError(t, err)

	mem := store.NewMemory()
	n := 0
	svc := core.NewService(mem, fs, core.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("app-%d", n)
	}))
	require.NoError(t, svc.Init(context.Background()))

	for _, c := range companies {
		_, err := svc.LogApplication(context.Background(), map[string]string{
			"Job Source":        "LinkedIn",
			"Location":          "Remote",
			"Role":              "SWE",
			"Listing Job Title": "Engineer",
			"Company":           c,
			"Resume Version":    "v1",
			"Link":              "https://example.com",
			"Applied Date":      "2024-01-01",
		})
		require.NoError(t, err)
	}

	s := NewServer(svc, cfg)
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s, mem
}

func do(t *testing.T, s *Server, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobtracker_")
}

func TestListTables(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/api/tables", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tables []core.TableInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
	assert.GreaterOrEqual(t, len(tables), 6)
}

func TestFindApplication(t *testing.T) {
	s, _ := newTestServer(t, testConfig(), "Acme", "Acme", "Globex")

	t.Run("single", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find?company=globex", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var app map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
		assert.Equal(t, "app-3", app["ID"])
		assert.Equal(t, "No Response", app["Status"])
	})

	t.Run("ambiguous", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find?company=Acme", "")
		require.Equal(t, http.StatusConflict, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, "APP002", body.Code)
		assert.Len(t, body.Matches, 2)
		assert.Equal(t, "20240101", body.Matches[0].AppliedDate)
	})

	t.Run("ambiguous htmx", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find?company=Acme", "", "HX-Request", "true")
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, 2, strings.Count(rec.Body.String(), "<li>"))
	})

	t.Run("sub-field narrows", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find?company=Acme&field=ID&value=app-2", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find?company=Initech", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "APP001", decodeError(t, rec).Code)
	})

	t.Run("blank company", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown sub-field", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/applications/find?company=Acme&field=Salary&value=1", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "VAL004", decodeError(t, rec).Code)
	})
}

func TestFindApplication_TooMany(t *testing.T) {
	companies := make([]string, 11)
	for i := range companies {
		companies[i] = "Acme"
	}
	s, _ := newTestServer(t, testConfig(), companies...)

	rec := do(t, s, http.MethodGet, "/api/applications/find?company=Acme", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "APP003", body.Code)
	assert.Equal(t, 11, body.Count)
	assert.Empty(t, body.Matches)
}

func TestLogRelatedAndStatus(t *testing.T) {
	s, _ := newTestServer(t, testConfig(), "Acme")

	rec := do(t, s, http.MethodGet, "/api/applications/app-1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"app-1","status":"No Response"}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/rejections", `{"search":{"company":"acme"},"inputs":{}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var row map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "app-1", row["Application ID"])
	assert.Equal(t, "Email", row["Rejection Source"])

	rec = do(t, s, http.MethodGet, "/api/applications/app-1/status", "", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rejected")
	assert.Contains(t, rec.Body.String(), "#ea4335")
}

func TestLogRelated_Errors(t *testing.T) {
	s, _ := newTestServer(t, testConfig(), "Acme")

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown kind", "/api/offers", `{"search":{"company":"Acme"}}`, http.StatusNotFound},
		{"bad json", "/api/closures", `{"search":`, http.StatusBadRequest},
		{"unknown body field", "/api/closures", `{"search":{"company":"Acme"},"extra":1}`, http.StatusBadRequest},
		{"missing required input", "/api/closures", `{"search":{"company":"Acme"},"inputs":{}}`, http.StatusBadRequest},
		{"no such application", "/api/closures", `{"search":{"company":"Initech"},"inputs":{"Reason":"x"}}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLogApplicationAndResume(t *testing.T) {
	s, mem := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/api/applications", `{"inputs":{
		"Job Source":"Referral","Location":"Denver, colorado","Role":"SWE",
		"Listing Job Title":"Platform Engineer","Company":"Initech",
		"Resume Version":"v2","Link":"https://example.com/j","Salary Min (K)":"140"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var row map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "app-1", row["ID"])
	assert.Equal(t, "Denver, CO", row["Location"])
	assert.EqualValues(t, 140000, row["Salary Min (K)"])

	tbl, err := mem.ReadTable(context.Background(), core.TableApplications)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	rec = do(t, s, http.MethodPost, "/api/resumes", `{"inputs":{"Link":"https://example.com/r","Role":"Data","Date":"2024-05-06"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "Data 20240506", row["Version"])
}

func TestViews(t *testing.T) {
	s, _ := newTestServer(t, testConfig(), "Acme", "Acme Labs", "Globex")

	rec := do(t, s, http.MethodGet, "/api/companies/Globex", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view core.CompanyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 1, view.AppliedCount)

	rec = do(t, s, http.MethodGet, "/api/applications/view?company=Globex", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/applications/latest?status=All&count=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var apps []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	assert.Len(t, apps, 2)

	rec = do(t, s, http.MethodGet, "/api/applications/latest?sort=Company&desc=true", "", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<tr>"))

	for _, target := range []string{
		"/api/applications/latest?status=Ghosted",
		"/api/applications/latest?count=-1",
		"/api/applications/latest?count=many",
		"/api/applications/latest?desc=maybe",
	} {
		rec = do(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"secret"}}
	s, _ := newTestServer(t, cfg)

	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/api/tables", "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, s, http.MethodGet, "/api/tables", "", "X-API-Key", "nope").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/tables", "", "X-API-Key", "secret").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateConfig{Enabled: true, Requests: 2, Window: time.Minute}
	s, _ := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/tables", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/tables", "").Code)

	rec := do(t, s, http.MethodGet, "/api/tables", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&core.NotFoundError{}, http.StatusNotFound},
		{&core.AmbiguousMatchError{}, http.StatusConflict},
		{&core.TooManyMatchesError{}, http.StatusUnprocessableEntity},
		{&core.MissingColumnError{}, http.StatusUnprocessableEntity},
		{core.ValidationErrors{{Field: "x"}}, http.StatusBadRequest},
		{fmt.Errorf("read: %w", core.ErrTableNotFound), http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
