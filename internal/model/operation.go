package model

import "time"

// OperationKind identifies the type of a tracked long-running operation.
type OperationKind string

const (
	OperationKindAnalysis OperationKind = "analysis"
	OperationKindPDF      OperationKind = "pdf"
)

// OperationStatus represents the terminal state of a tracked operation.
type OperationStatus string

const (
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
)

// OperationRecord is a locally persisted record of one long-running
// operation, used by the history listing.
type OperationRecord struct {
	ID         string
	Kind       OperationKind
	Subject    string
	Status     OperationStatus
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall-clock duration of the operation.
func (r OperationRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
