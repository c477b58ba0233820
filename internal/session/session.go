package session

import (
	"strings"

	"github.com/opsdd/ddx/internal/model"
)

// Store holds the session scoped mutable state of the console: the admin
// credential, the cached report listing and the last analysis result.
//
// It is written only by the foreground goroutine. Background operation
// goroutines never touch it, they hand their results back through the
// tracker and the foreground stores them.
type Store struct {
	token        string
	reports      []model.ReportSummary
	lastAnalysis *model.AnalysisResult
}

// New creates an empty session store.
func New() *Store {
	return &Store{}
}

// SetToken stores the admin credential. Whitespace-only credentials are
// treated as no credential at all.
func (s *Store) SetToken(token string) {
	s.token = strings.TrimSpace(token)
}

// Token returns the stored admin credential, empty when unset. Implements
// backend.TokenSource.
func (s *Store) Token() string { return s.token }

// SetReports caches the latest report listing.
func (s *Store) SetReports(reports []model.ReportSummary) {
	s.reports = make([]model.ReportSummary, len(reports))
	copy(s.reports, reports)
}

// Reports returns a copy of the cached report listing.
func (s *Store) Reports() []model.ReportSummary {
	reports := make([]model.ReportSummary, len(s.reports))
	copy(reports, s.reports)
	return reports
}

// SetLastAnalysis stores the most recent analysis result.
func (s *Store) SetLastAnalysis(result *model.AnalysisResult) {
	s.lastAnalysis = result
}

// LastAnalysis returns the most recent analysis result, nil when none ran
// this session.
func (s *Store) LastAnalysis() *model.AnalysisResult {
	return s.lastAnalysis
}
