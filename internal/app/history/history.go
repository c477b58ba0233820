package history

import (
	"context"
	"fmt"

	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/storage"
)

// ServiceConfig is the configuration for the history service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.History"})
	return nil
}

// Service lists the locally recorded long-running operations.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{repo: cfg.Repository, logger: cfg.Logger}, nil
}

// Run returns all recorded operations, newest first.
func (s *Service) Run(ctx context.Context) ([]model.OperationRecord, error) {
	ops, err := s.repo.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list operations: %w", err)
	}
	return ops, nil
}
