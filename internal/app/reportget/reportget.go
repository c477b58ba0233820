package reportget

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
)

// ServiceConfig is the configuration for the report get service.
type ServiceConfig struct {
	Gateway backend.API
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ReportGet"})
	return nil
}

// Service fetches a single report's raw JSON payload.
type Service struct {
	gateway backend.API
	logger  log.Logger
}

// NewService creates a new report get service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{gateway: cfg.Gateway, logger: cfg.Logger}, nil
}

// Run fetches the report identified by reportID.
func (s *Service) Run(ctx context.Context, reportID string) (model.Document, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report ID cannot be empty: %w", model.ErrNotValid)
	}

	out := s.gateway.Get(ctx, "/reports/"+reportID, nil)
	if !out.OK() {
		f := out.Failure()
		if f.Kind == backend.FailureHTTP && f.Status == http.StatusNotFound {
			return nil, fmt.Errorf("report %s: %w", reportID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not fetch report %s: %w", reportID, f)
	}

	return out.Doc(), nil
}
