package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/test/integration/testutils"
)

const (
	envActivation = "DDX_INTEGRATION"
	envBinary     = "DDX_INTEGRATION_BINARY"
)

// testBinary returns the path of the ddx binary to test, skipping the test
// when integration testing is not activated.
func testBinary(t *testing.T) string {
	t.Helper()

	if os.Getenv(envActivation) == "" {
		t.Skipf("integration tests disabled, set %s to enable", envActivation)
	}

	binary := os.Getenv(envBinary)
	if binary == "" {
		binary = "ddx"
	}
	return binary
}

// newFakeBackend starts an in-process due-diligence backend and returns its
// API base URL.
func newFakeBackend(t *testing.T) string {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analysis/analyze", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, map[string]interface{}{
			"status":     "success",
			"session_id": "s-1",
			"report_id":  "r-1",
			"summary":    "Analyzed " + body["company_name"],
		})
	})
	mux.HandleFunc("GET /api/v1/reports", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"reports": []map[string]interface{}{
				{"id": "r-1", "company_name": "ACME", "status": "completed", "created_at": "2026-08-01T10:00:00Z"},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/reports/r-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"id": "r-1", "company_name": "ACME"})
	})
	mux.HandleFunc("GET /api/v1/utility/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"status": "healthy", "version": "1.0.0"})
	})
	mux.HandleFunc("GET /api/v1/utility/circuit-breakers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"breakers": []map[string]interface{}{}})
	})
	mux.HandleFunc("GET /api/v1/utility/cache/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"entries": 0, "hits": 0, "misses": 0})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv.URL + "/api/v1"
}

// testEnv returns the environment for a ddx run isolated from the user's
// real configuration and history database.
func testEnv(t *testing.T, backendURL string) []string {
	t.Helper()

	dir := t.TempDir()
	return []string{
		"DDX_BACKEND_URL=" + backendURL,
		"DDX_DB_PATH=" + filepath.Join(dir, "ddx.db"),
		"DDX_CONFIG=" + filepath.Join(dir, "config.yaml"),
	}
}

func TestConsoleAnalyze(t *testing.T) {
	binary := testBinary(t)
	env := testEnv(t, newFakeBackend(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stdout, stderr, err := testutils.RunDDXArgs(ctx, env, binary, []string{"analyze", "ACME Corp"}, true)
	require.NoError(t, err, "stderr: %s", stderr)

	out := string(stdout)
	assert.Contains(t, out, "Company:    ACME Corp")
	assert.Contains(t, out, "Report:     r-1")
}

func TestConsoleReportList(t *testing.T) {
	binary := testBinary(t)
	env := testEnv(t, newFakeBackend(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stdout, stderr, err := testutils.RunDDX(ctx, env, binary, "report list", true)
	require.NoError(t, err, "stderr: %s", stderr)

	out := string(stdout)
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "completed")
}

func TestConsoleStatus(t *testing.T) {
	binary := testBinary(t)
	env := testEnv(t, newFakeBackend(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stdout, stderr, err := testutils.RunDDX(ctx, env, binary, "status", true)
	require.NoError(t, err, "stderr: %s", stderr)

	assert.Contains(t, string(stdout), "healthy (version 1.0.0)")
}

func TestConsoleHistory(t *testing.T) {
	binary := testBinary(t)
	env := testEnv(t, newFakeBackend(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Run an analysis first so the history has an entry.
	_, stderr, err := testutils.RunDDXArgs(ctx, env, binary, []string{"analyze", "ACME Corp"}, true)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := testutils.RunDDX(ctx, env, binary, "history", true)
	require.NoError(t, err, "stderr: %s", stderr)

	out := string(stdout)
	assert.Contains(t, out, "analysis")
	assert.Contains(t, out, "ACME Corp")
	assert.Contains(t, out, "completed")
}

func TestConsoleUnreachableBackend(t *testing.T) {
	binary := testBinary(t)
	env := testEnv(t, "http://127.0.0.1:1/api/v1")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, stderr, err := testutils.RunDDX(ctx, env, binary, "report list", true)
	require.Error(t, err)
	assert.Contains(t, string(stderr), "Could not reach the backend")
}
