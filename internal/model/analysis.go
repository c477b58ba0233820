package model

// AnalysisResult is the outcome of a company analysis run.
type AnalysisResult struct {
	CompanyName string
	Status      string
	SessionID   string
	ReportID    string
	Summary     string
	// Raw keeps the full backend payload for inspection and JSON output.
	Raw Document
}

// AnalysisResultFromDocument builds an analysis result from the backend
// analyze reply, fail-soft on every field.
func AnalysisResultFromDocument(company string, doc Document) *AnalysisResult {
	return &AnalysisResult{
		CompanyName: company,
		Status:      doc.Str("status"),
		SessionID:   doc.Str("session_id"),
		ReportID:    doc.Str("report_id"),
		Summary:     doc.Str("summary"),
		Raw:         doc,
	}
}

// BackendStatus aggregates the admin status endpoints of the backend.
type BackendStatus struct {
	Health          Document
	CircuitBreakers Document
	CacheStats      Document
}
