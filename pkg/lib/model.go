package lib

import (
	"errors"
	"time"

	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/tracker"
)

// Sentinel errors returned by the SDK. Use [errors.Is] to inspect them.
var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrNotValid is returned on invalid input.
	ErrNotValid = errors.New("not valid")
	// ErrSoftFailure is returned when the backend replied but the payload
	// was unusable for the requested operation.
	ErrSoftFailure = errors.New("soft failure")
)

// Document is a schemaless JSON object returned by the backend.
type Document = map[string]interface{}

// Progress is one simulated progress update of a long-running operation.
type Progress struct {
	// StepLabel is the human readable label of the current milestone.
	StepLabel string
	// Fraction is the completed fraction in [0, 1]. It stays below 1.0
	// until the backend actually replies.
	Fraction float64
	// Remaining is a human readable estimate of the remaining time.
	Remaining string
}

// ProgressFunc receives progress updates during long-running operations.
type ProgressFunc func(Progress)

// AnalysisResult is the outcome of a company analysis.
type AnalysisResult struct {
	// CompanyName is the analyzed company.
	CompanyName string
	// Status is the backend reported status.
	Status string
	// SessionID identifies the analysis session on the backend.
	SessionID string
	// ReportID identifies the produced report, when one was created.
	ReportID string
	// Summary is a short text summary, when the backend provides one.
	Summary string
	// Raw is the full backend reply.
	Raw Document
}

// ReportSummary is one entry of the report listing.
type ReportSummary struct {
	ID          string
	CompanyName string
	Status      string
	CreatedAt   time.Time
}

// PDFResult is the outcome of a PDF generation attempt. Fallback carries
// the report's raw JSON when the PDF could not be produced but the report
// data was already fetched.
type PDFResult struct {
	// ReportID is the report the PDF belongs to.
	ReportID string
	// DownloadURL is the absolute URL of the generated PDF. Empty on failure.
	DownloadURL string
	// Fallback is the report's raw JSON, set only when generation failed.
	Fallback Document
}

// BackendStatus aggregates the backend admin endpoints.
type BackendStatus struct {
	Health          Document
	CircuitBreakers Document
	CacheStats      Document
}

// Operation is one locally recorded long-running operation.
type Operation struct {
	ID         string
	Kind       string
	Subject    string
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

func fromInternalAnalysis(r *model.AnalysisResult) *AnalysisResult {
	return &AnalysisResult{
		CompanyName: r.CompanyName,
		Status:      r.Status,
		SessionID:   r.SessionID,
		ReportID:    r.ReportID,
		Summary:     r.Summary,
		Raw:         Document(r.Raw),
	}
}

func fromInternalReports(reports []model.ReportSummary) []ReportSummary {
	out := make([]ReportSummary, len(reports))
	for i, r := range reports {
		out[i] = ReportSummary{
			ID:          r.ID,
			CompanyName: r.CompanyName,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}

func fromInternalStatus(s *model.BackendStatus) *BackendStatus {
	return &BackendStatus{
		Health:          Document(s.Health),
		CircuitBreakers: Document(s.CircuitBreakers),
		CacheStats:      Document(s.CacheStats),
	}
}

func fromInternalOperations(ops []model.OperationRecord) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = Operation{
			ID:         op.ID,
			Kind:       string(op.Kind),
			Subject:    op.Subject,
			Status:     string(op.Status),
			Error:      op.Error,
			StartedAt:  op.StartedAt,
			FinishedAt: op.FinishedAt,
		}
	}
	return out
}

func progressFunc(f ProgressFunc) tracker.ReportFunc {
	if f == nil {
		return nil
	}
	return func(p tracker.Progress) {
		f(Progress{
			StepLabel: p.StepLabel,
			Fraction:  p.Fraction,
			Remaining: p.Remaining,
		})
	}
}

// mapError converts internal sentinel errors to the SDK's public ones,
// keeping the original message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinSentinel(err, ErrNotFound)
	case errors.Is(err, model.ErrNotValid):
		return joinSentinel(err, ErrNotValid)
	case errors.Is(err, model.ErrSoftFailure):
		return joinSentinel(err, ErrSoftFailure)
	}

	return err
}

type sentinelError struct {
	err      error
	sentinel error
}

func (e sentinelError) Error() string { return e.err.Error() }

func (e sentinelError) Is(target error) bool {
	return target == e.sentinel || errors.Is(e.err, target)
}

func joinSentinel(err, sentinel error) error {
	return sentinelError{err: err, sentinel: sentinel}
}
