package reportlist

import (
	"context"
	"fmt"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/session"
)

// ServiceConfig is the configuration for the report list service.
type ServiceConfig struct {
	Gateway backend.API
	Session *session.Store
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}
	if c.Session == nil {
		return fmt.Errorf("session store is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ReportList"})
	return nil
}

// Service lists prior due-diligence reports.
type Service struct {
	gateway backend.API
	session *session.Store
	logger  log.Logger
}

// NewService creates a new report list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		gateway: cfg.Gateway,
		session: cfg.Session,
		logger:  cfg.Logger,
	}, nil
}

// Run fetches the report listing and caches it in the session store.
func (s *Service) Run(ctx context.Context) ([]model.ReportSummary, error) {
	out := s.gateway.Get(ctx, "/reports", nil)
	if !out.OK() {
		return nil, fmt.Errorf("could not list reports: %w", out.Failure())
	}

	docs := out.Doc().Docs("reports")
	summaries := make([]model.ReportSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, model.ReportSummaryFromDocument(doc))
	}

	s.session.SetReports(summaries)
	s.logger.Debugf("listed %d reports", len(summaries))

	return summaries, nil
}
