package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/printer"
)

func reportsFixture() []model.ReportSummary {
	createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []model.ReportSummary{
		{ID: "r1", CompanyName: "ACME", Status: "completed", CreatedAt: createdAt},
		{ID: "r2", CompanyName: "Globex", Status: "running", CreatedAt: createdAt},
	}
}

func analysisFixture() model.AnalysisResult {
	return model.AnalysisResult{
		CompanyName: "ACME",
		Status:      "success",
		SessionID:   "s-42",
		ReportID:    "r-7",
		Summary:     "No material risks found.",
		Raw:         model.Document{"status": "success"},
	}
}

func TestTablePrinterPrintReportList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintReportList(reportsFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "COMPANY")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "Globex")
}

func TestTablePrinterPrintReportListEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintReportList(nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestJSONPrinterPrintReportList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintReportList(reportsFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "r1"`)
	assert.Contains(t, out, `"company_name": "ACME"`)
	assert.Contains(t, out, `"status": "completed"`)
}

func TestTablePrinterPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintAnalysis(analysisFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Company:    ACME")
	assert.Contains(t, out, "Status:     success")
	assert.Contains(t, out, "Session:    s-42")
	assert.Contains(t, out, "Report:     r-7")
	assert.Contains(t, out, "Summary:    No material risks found.")
}

func TestJSONPrinterPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintAnalysis(analysisFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"company_name": "ACME"`)
	assert.Contains(t, out, `"session_id": "s-42"`)
	assert.Contains(t, out, `"report_id": "r-7"`)
}

func TestTablePrinterPrintPDFArtifact(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintPDFArtifact(model.PDFArtifact{
		ReportID:    "r-7",
		DownloadURL: "http://localhost:8000/files/r-7.pdf",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Report:     r-7")
	assert.Contains(t, out, "Download:   http://localhost:8000/files/r-7.pdf")
}

func TestTablePrinterPrintBackendStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintBackendStatus(model.BackendStatus{
		Health: model.Document{"status": "healthy", "version": "1.4.0"},
		CircuitBreakers: model.Document{
			"breakers": []interface{}{
				map[string]interface{}{"name": "analysis", "state": "closed", "failures": float64(0)},
			},
		},
		CacheStats: model.Document{"entries": float64(12), "hits": float64(40), "misses": float64(3)},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Health:     healthy (version 1.4.0)")
	assert.Contains(t, out, "analysis")
	assert.Contains(t, out, "closed")
	assert.Contains(t, out, "Cache:      12 entries, 40 hits, 3 misses")
}

func TestTablePrinterPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	started := time.Now().Add(-time.Minute)
	err := p.PrintHistory([]model.OperationRecord{
		{
			ID:         "op-1",
			Kind:       model.OperationKindAnalysis,
			Subject:    "ACME",
			Status:     model.OperationStatusCompleted,
			StartedAt:  started,
			FinishedAt: started.Add(45 * time.Second),
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "op-1")
	assert.Contains(t, out, "analysis")
	assert.Contains(t, out, "45s")
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}

func TestJSONPrinterPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintReport(model.Document{"id": "r1", "company_name": "ACME"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "r1"`)
	assert.Contains(t, out, `"company_name": "ACME"`)
}
