package model

// RecoveryContext is the retained state of a failed recoverable action,
// keyed by a stable identifier (e.g. a report ID). It lets a later retry
// reuse already fetched input data instead of re-fetching it.
type RecoveryContext struct {
	Key             string
	LastErrorDetail string
	Retryable       bool
	// Fallback is the raw payload captured before the failing step, offered
	// to the operator when the derived artifact cannot be produced.
	Fallback Document
}
