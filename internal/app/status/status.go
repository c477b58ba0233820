package status

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
)

// ServiceConfig is the configuration for the status service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Status"})
	return nil
}

// Service aggregates the backend admin status endpoints.
type Service struct {
	gateway backend.API
	logger  log.Logger
}

// NewService creates a new status service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{gateway: cfg.Gateway, logger: cfg.Logger}, nil
}

// Run fetches health, circuit breaker and cache information concurrently.
func (s *Service) Run(ctx context.Context) (*model.BackendStatus, error) {
	var status model.BackendStatus

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out := s.gateway.Get(ctx, "/utility/health", nil)
		if !out.OK() {
			return fmt.Errorf("health: %w", out.Failure())
		}
		status.Health = out.Doc()
		return nil
	})

	g.Go(func() error {
		out := s.gateway.Get(ctx, "/utility/circuit-breakers", nil)
		if !out.OK() {
			return fmt.Errorf("circuit breakers: %w", out.Failure())
		}
		status.CircuitBreakers = out.Doc()
		return nil
	})

	g.Go(func() error {
		out := s.gateway.Get(ctx, "/utility/cache/stats", nil)
		if !out.OK() {
			return fmt.Errorf("cache stats: %w", out.Failure())
		}
		status.CacheStats = out.Doc()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("could not fetch backend status: %w", err)
	}

	return &status, nil
}
