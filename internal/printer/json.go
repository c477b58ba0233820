package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/opsdd/ddx/internal/model"
)

// JSONPrinter prints console information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// reportItem represents a report in the list output.
type reportItem struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// analysisOutput represents an analysis result output.
type analysisOutput struct {
	CompanyName string         `json:"company_name"`
	Status      string         `json:"status"`
	SessionID   string         `json:"session_id,omitempty"`
	ReportID    string         `json:"report_id,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Raw         model.Document `json:"raw,omitempty"`
}

// artifactOutput represents a generated PDF output.
type artifactOutput struct {
	ReportID    string `json:"report_id"`
	DownloadURL string `json:"download_url"`
}

// statusOutput represents the aggregated backend status output.
type statusOutput struct {
	Health          model.Document `json:"health"`
	CircuitBreakers model.Document `json:"circuit_breakers"`
	CacheStats      model.Document `json:"cache_stats"`
}

// historyItem represents a recorded operation in the history output.
type historyItem struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintReportList prints report summaries in JSON format.
func (j *JSONPrinter) PrintReportList(reports []model.ReportSummary) error {
	items := make([]reportItem, len(reports))
	for i, r := range reports {
		items[i] = reportItem{
			ID:          r.ID,
			CompanyName: r.CompanyName,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintReport prints a report's raw JSON payload.
func (j *JSONPrinter) PrintReport(report model.Document) error {
	return j.encode(report)
}

// PrintAnalysis prints an analysis result in JSON format.
func (j *JSONPrinter) PrintAnalysis(result model.AnalysisResult) error {
	return j.encode(analysisOutput{
		CompanyName: result.CompanyName,
		Status:      result.Status,
		SessionID:   result.SessionID,
		ReportID:    result.ReportID,
		Summary:     result.Summary,
		Raw:         result.Raw,
	})
}

// PrintPDFArtifact prints a generated PDF reference in JSON format.
func (j *JSONPrinter) PrintPDFArtifact(artifact model.PDFArtifact) error {
	return j.encode(artifactOutput{
		ReportID:    artifact.ReportID,
		DownloadURL: artifact.DownloadURL,
	})
}

// PrintBackendStatus prints the aggregated backend status in JSON format.
func (j *JSONPrinter) PrintBackendStatus(status model.BackendStatus) error {
	return j.encode(statusOutput{
		Health:          status.Health,
		CircuitBreakers: status.CircuitBreakers,
		CacheStats:      status.CacheStats,
	})
}

// PrintHistory prints recorded operations in JSON format.
func (j *JSONPrinter) PrintHistory(ops []model.OperationRecord) error {
	items := make([]historyItem, len(ops))
	for i, op := range ops {
		items[i] = historyItem{
			ID:         op.ID,
			Kind:       string(op.Kind),
			Subject:    op.Subject,
			Status:     string(op.Status),
			Error:      op.Error,
			StartedAt:  op.StartedAt.UTC(),
			FinishedAt: op.FinishedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v interface{}) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
