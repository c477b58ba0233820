package backend

import (
	"fmt"

	"github.com/opsdd/ddx/internal/model"
)

// FailureKind classifies a failed backend call.
type FailureKind string

const (
	// FailureTimeout means the call exceeded the configured timeout.
	FailureTimeout FailureKind = "timeout"
	// FailureConnection means the backend could not be reached at all
	// (refused connection, DNS, TLS).
	FailureConnection FailureKind = "connection"
	// FailureHTTP means the backend replied with a non 2xx status.
	FailureHTTP FailureKind = "http"
	// FailureDecode means a payload could not be decoded where a decodable
	// one was required.
	FailureDecode FailureKind = "decode"
	// FailureUnexpected is anything not otherwise classified.
	FailureUnexpected FailureKind = "unexpected"
)

// Failure describes why a backend call did not produce a usable payload.
type Failure struct {
	Kind   FailureKind
	Status int // HTTP status, only set for FailureHTTP.
	Detail string
	// CorrelationID is the backend's X-Request-ID header when present, used
	// for support escalation.
	CorrelationID string
}

func (f *Failure) Error() string {
	switch {
	case f.Kind == FailureHTTP && f.CorrelationID != "":
		return fmt.Sprintf("backend call failed: %s (status %d, request id %s): %s", f.Kind, f.Status, f.CorrelationID, f.Detail)
	case f.Kind == FailureHTTP:
		return fmt.Sprintf("backend call failed: %s (status %d): %s", f.Kind, f.Status, f.Detail)
	default:
		return fmt.Sprintf("backend call failed: %s: %s", f.Kind, f.Detail)
	}
}

// Outcome is the result of a single backend call: either a payload or a
// classified failure, never both and never a panic. 2xx responses that are
// not JSON objects keep their raw text and an empty document.
type Outcome struct {
	failure *Failure
	doc     model.Document
	text    string
}

// SuccessOutcome creates a successful outcome with a decoded document.
func SuccessOutcome(doc model.Document, rawText string) Outcome {
	if doc == nil {
		doc = model.Document{}
	}
	return Outcome{doc: doc, text: rawText}
}

// FailureOutcome creates a failed outcome.
func FailureOutcome(f *Failure) Outcome {
	return Outcome{failure: f, doc: model.Document{}}
}

// OK returns true when the call produced a usable payload.
func (o Outcome) OK() bool { return o.failure == nil }

// Failure returns the classified failure, nil on success.
func (o Outcome) Failure() *Failure { return o.failure }

// Doc returns the decoded JSON object of the response. Empty for failures
// and for non JSON bodies.
func (o Outcome) Doc() model.Document { return o.doc }

// Text returns the raw response body as text.
func (o Outcome) Text() string { return o.text }
