package lib_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/pkg/lib"
)

// fakeBackend is a minimal in-process due-diligence backend for tests.
type fakeBackend struct {
	mux      *http.ServeMux
	pdfReady bool
	pdfCalls int
	gotToken string
	gotReqID string
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{mux: http.NewServeMux()}

	b.mux.HandleFunc("POST /api/v1/analysis/analyze", func(w http.ResponseWriter, r *http.Request) {
		b.gotToken = r.Header.Get("X-Auth-Token")
		b.gotReqID = r.Header.Get("X-Request-ID")

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, map[string]interface{}{
			"status":     "success",
			"session_id": "s-1",
			"report_id":  "r-1",
			"summary":    "Analyzed " + body["company_name"],
		})
	})

	b.mux.HandleFunc("GET /api/v1/reports", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"reports": []map[string]interface{}{
				{"id": "r-1", "company_name": "ACME", "status": "completed", "created_at": "2026-08-01T10:00:00Z"},
			},
		})
	})

	b.mux.HandleFunc("GET /api/v1/reports/r-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"id": "r-1", "company_name": "ACME"})
	})

	b.mux.HandleFunc("POST /api/v1/reports/r-1/pdf", func(w http.ResponseWriter, r *http.Request) {
		b.pdfCalls++
		if !b.pdfReady {
			writeJSON(w, map[string]interface{}{"status": "success"})
			return
		}
		writeJSON(w, map[string]interface{}{"status": "success", "download_url": "/files/r-1.pdf"})
	})

	b.mux.HandleFunc("GET /api/v1/utility/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"status": "healthy"})
	})
	b.mux.HandleFunc("GET /api/v1/utility/circuit-breakers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"breakers": []map[string]interface{}{}})
	})
	b.mux.HandleFunc("GET /api/v1/utility/cache/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"entries": 0})
	})
	b.mux.HandleFunc("DELETE /api/v1/utility/cache", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"message": "cache flushed"})
	})

	return b
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, b *fakeBackend, cfg lib.Config) *lib.Client {
	t.Helper()

	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)

	cfg.BackendURL = srv.URL + "/api/v1"
	client, err := lib.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestClientAnalyze(t *testing.T) {
	b := newFakeBackend()
	client := newTestClient(t, b, lib.Config{AuthToken: "s3cr3t"})

	var last lib.Progress
	result, err := client.Analyze(context.Background(), "ACME", &lib.AnalyzeOpts{
		OnProgress: func(p lib.Progress) { last = p },
	})

	require.NoError(t, err)
	assert.Equal(t, "ACME", result.CompanyName)
	assert.Equal(t, "r-1", result.ReportID)
	assert.Equal(t, "Analyzed ACME", result.Summary)
	assert.Equal(t, 1.0, last.Fraction)

	assert.Equal(t, "s3cr3t", b.gotToken)
	assert.NotEmpty(t, b.gotReqID)
}

func TestClientAnalyzeValidation(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), lib.Config{})

	_, err := client.Analyze(context.Background(), "", nil)
	assert.ErrorIs(t, err, lib.ErrNotValid)
}

func TestClientListReports(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), lib.Config{})

	reports, err := client.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "r-1", reports[0].ID)
	assert.Equal(t, "ACME", reports[0].CompanyName)
}

func TestClientGetReportNotFound(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), lib.Config{})

	_, err := client.GetReport(context.Background(), "missing")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestClientGeneratePDFRetry(t *testing.T) {
	b := newFakeBackend()
	client := newTestClient(t, b, lib.Config{})

	// First attempt: backend replies without a download reference.
	res, err := client.GeneratePDF(context.Background(), "r-1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, lib.ErrSoftFailure)
	require.NotNil(t, res)
	assert.Equal(t, "ACME", res.Fallback["company_name"])

	// Second attempt succeeds and reuses the fetched report data.
	b.pdfReady = true
	res, err = client.GeneratePDF(context.Background(), "r-1", nil)
	require.NoError(t, err)
	assert.Contains(t, res.DownloadURL, "/files/r-1.pdf")
	assert.Equal(t, 2, b.pdfCalls)
}

func TestClientStatusAndCache(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), lib.Config{})

	s, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", s.Health["status"])

	msg, err := client.ClearCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cache flushed", msg)
}

func TestClientHistory(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), lib.Config{})

	_, err := client.Analyze(context.Background(), "ACME", nil)
	require.NoError(t, err)

	ops, err := client.History(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "analysis", ops[0].Kind)
	assert.Equal(t, "ACME", ops[0].Subject)
	assert.Equal(t, "completed", ops[0].Status)
}

func TestClientWarningNotification(t *testing.T) {
	var warnings []string
	client := newTestClient(t, newFakeBackend(), lib.Config{
		OnWarning: func(message string) { warnings = append(warnings, message) },
	})

	_, err := client.GetReport(context.Background(), "missing")
	require.Error(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "rejected the request (status 404)")
}
