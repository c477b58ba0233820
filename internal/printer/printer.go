package printer

import "github.com/opsdd/ddx/internal/model"

// Printer knows how to print console information in different formats.
type Printer interface {
	PrintReportList(reports []model.ReportSummary) error
	PrintReport(report model.Document) error
	PrintAnalysis(result model.AnalysisResult) error
	PrintPDFArtifact(artifact model.PDFArtifact) error
	PrintBackendStatus(status model.BackendStatus) error
	PrintHistory(ops []model.OperationRecord) error
	PrintMessage(msg string) error
}
