package cacheclear

import (
	"context"
	"fmt"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
)

// ServiceConfig is the configuration for the cache clear service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.CacheClear"})
	return nil
}

// Service clears the backend response cache. Requires the admin credential.
type Service struct {
	gateway backend.API
	logger  log.Logger
}

// NewService creates a new cache clear service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{gateway: cfg.Gateway, logger: cfg.Logger}, nil
}

// Run clears the backend cache and returns the backend's confirmation
// message when it provides one.
func (s *Service) Run(ctx context.Context) (string, error) {
	out := s.gateway.Delete(ctx, "/utility/cache")
	if !out.OK() {
		return "", fmt.Errorf("could not clear backend cache: %w", out.Failure())
	}

	msg := out.Doc().Str("message")
	if msg == "" {
		msg = "Backend cache cleared."
	}

	s.logger.Debugf("backend cache cleared")
	return msg, nil
}
