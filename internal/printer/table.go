package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/opsdd/ddx/internal/model"
)

// TablePrinter prints console information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintReportList prints report summaries in a table format.
func (t *TablePrinter) PrintReportList(reports []model.ReportSummary) error {
	if len(reports) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCOMPANY\tSTATUS\tCREATED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.CompanyName, r.Status, TimeAgo(r.CreatedAt))
	}

	return nil
}

// PrintReport prints a report's raw JSON payload, indented.
func (t *TablePrinter) PrintReport(report model.Document) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}

	fmt.Fprintln(t.writer, string(raw))
	return nil
}

// PrintAnalysis prints an analysis result.
func (t *TablePrinter) PrintAnalysis(result model.AnalysisResult) error {
	fmt.Fprintf(t.writer, "Company:    %s\n", result.CompanyName)
	fmt.Fprintf(t.writer, "Status:     %s\n", result.Status)
	if result.SessionID != "" {
		fmt.Fprintf(t.writer, "Session:    %s\n", result.SessionID)
	}
	if result.ReportID != "" {
		fmt.Fprintf(t.writer, "Report:     %s\n", result.ReportID)
	}
	if result.Summary != "" {
		fmt.Fprintf(t.writer, "Summary:    %s\n", result.Summary)
	}

	return nil
}

// PrintPDFArtifact prints the download reference of a generated PDF.
func (t *TablePrinter) PrintPDFArtifact(artifact model.PDFArtifact) error {
	fmt.Fprintf(t.writer, "Report:     %s\n", artifact.ReportID)
	fmt.Fprintf(t.writer, "Download:   %s\n", artifact.DownloadURL)
	return nil
}

// PrintBackendStatus prints the aggregated backend status.
func (t *TablePrinter) PrintBackendStatus(status model.BackendStatus) error {
	fmt.Fprintf(t.writer, "Health:     %s\n", statusLine(status.Health))

	breakers := status.CircuitBreakers.Docs("breakers")
	if len(breakers) > 0 {
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BREAKER\tSTATE\tFAILURES")
		for _, b := range breakers {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", b.Str("name"), b.Str("state"), b.Int("failures"))
		}
		tw.Flush()
	}

	if status.CacheStats.Has("entries") {
		fmt.Fprintf(t.writer, "Cache:      %d entries, %d hits, %d misses\n",
			status.CacheStats.Int("entries"), status.CacheStats.Int("hits"), status.CacheStats.Int("misses"))
	}

	return nil
}

// PrintHistory prints recorded operations in a table format.
func (t *TablePrinter) PrintHistory(ops []model.OperationRecord) error {
	if len(ops) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tKIND\tSUBJECT\tSTATUS\tDURATION\tSTARTED")
	for _, op := range ops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			op.ID, op.Kind, op.Subject, op.Status, op.Duration().Round(timeRounding), TimeAgo(op.StartedAt))
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func statusLine(health model.Document) string {
	s := health.Str("status")
	if s == "" {
		s = "unknown"
	}
	if v := health.Str("version"); v != "" {
		return fmt.Sprintf("%s (version %s)", s, v)
	}
	return s
}
