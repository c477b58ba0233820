package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/session"
	"github.com/opsdd/ddx/internal/storage"
	"github.com/opsdd/ddx/internal/tracker"
)

// analyzeEstimate is the fixed duration estimate used to simulate progress
// for an analysis run. The backend emits no incremental progress events.
const analyzeEstimate = 45 * time.Second

var milestones = []tracker.Milestone{
	{Label: "Contacting backend", Threshold: 0},
	{Label: "Gathering company data", Threshold: 0.15},
	{Label: "Agents analyzing findings", Threshold: 0.45},
	{Label: "Compiling report", Threshold: 0.75},
}

// ServiceConfig is the configuration for the analyze service.
type ServiceConfig struct {
	Gateway    backend.API
	Tracker    *tracker.Tracker
	Session    *session.Store
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}
	if c.Tracker == nil {
		return fmt.Errorf("tracker is required")
	}
	if c.Session == nil {
		return fmt.Errorf("session store is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Analyze"})
	return nil
}

// Service runs company analyses on the backend as tracked long-running
// operations.
type Service struct {
	gateway backend.API
	tracker *tracker.Tracker
	session *session.Store
	repo    storage.Repository
	logger  log.Logger
}

// NewService creates a new analyze service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		gateway: cfg.Gateway,
		tracker: cfg.Tracker,
		session: cfg.Session,
		repo:    cfg.Repository,
		logger:  cfg.Logger,
	}, nil
}

// Request contains the parameters for an analysis run.
type Request struct {
	CompanyName string
	OnProgress  tracker.ReportFunc
}

// Run triggers a company analysis and tracks it to completion.
func (s *Service) Run(ctx context.Context, req Request) (*model.AnalysisResult, error) {
	if req.CompanyName == "" {
		return nil, fmt.Errorf("company name cannot be empty: %w", model.ErrNotValid)
	}

	action := func(ctx context.Context) (interface{}, error) {
		out := s.gateway.Post(ctx, "/analysis/analyze", map[string]string{"company_name": req.CompanyName})
		if !out.OK() {
			return nil, out.Failure()
		}
		return out.Doc(), nil
	}

	startedAt := time.Now()
	value, err := s.tracker.Run(ctx, action, analyzeEstimate, milestones, req.OnProgress)
	s.record(ctx, req.CompanyName, startedAt, err)
	if err != nil {
		return nil, fmt.Errorf("analysis of %q failed: %w", req.CompanyName, err)
	}

	result := model.AnalysisResultFromDocument(req.CompanyName, value.(model.Document))
	s.session.SetLastAnalysis(result)

	s.logger.Debugf("analysis of %q finished with status %q (session %s)", req.CompanyName, result.Status, result.SessionID)

	return result, nil
}

// record persists the operation in the local history. Failing to record
// never fails the operation itself.
func (s *Service) record(ctx context.Context, company string, startedAt time.Time, runErr error) {
	op := model.OperationRecord{
		ID:         ulid.Make().String(),
		Kind:       model.OperationKindAnalysis,
		Subject:    company,
		Status:     model.OperationStatusCompleted,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	if runErr != nil {
		op.Status = model.OperationStatusFailed
		op.Error = runErr.Error()
	}

	if err := s.repo.RecordOperation(ctx, op); err != nil {
		s.logger.Warningf("could not record analysis in history: %s", err)
	}
}
