package model

import "time"

// ReportSummary is a single entry of the backend report listing.
type ReportSummary struct {
	ID          string
	CompanyName string
	Status      string
	CreatedAt   time.Time
}

// ReportSummaryFromDocument builds a summary from a backend report entry.
// Missing fields default to zero values, the backend schema is fail-soft.
func ReportSummaryFromDocument(doc Document) ReportSummary {
	s := ReportSummary{
		ID:          doc.Str("id"),
		CompanyName: doc.Str("company_name"),
		Status:      doc.Str("status"),
	}

	if raw := doc.Str("created_at"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			s.CreatedAt = t
		}
	}

	return s
}

// PDFArtifact is the result of a successful PDF generation: the absolute
// download URL handed back by the backend, resolved against the bare origin.
type PDFArtifact struct {
	ReportID    string
	DownloadURL string
}
