package recovery

import (
	"context"
	"fmt"

	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
)

// Operation is one recoverable two-step action: fetch raw input data, then
// derive the final artifact from it (e.g. fetch a report's JSON, then ask
// the backend to render its PDF).
type Operation struct {
	// Fetch retrieves the raw input payload. On a retry for the same key it
	// is skipped when a fallback payload was already captured, so the
	// upstream call is not duplicated when only the derivation failed.
	Fetch func(ctx context.Context) (model.Document, error)
	// Derive produces the final artifact from the fetched payload. An error
	// wrapping model.ErrSoftFailure marks a well formed reply missing a
	// required field; any error leaves the operation retryable.
	Derive func(ctx context.Context, input model.Document) (interface{}, error)
}

// Config is the configuration for the recovery controller.
type Config struct {
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "recovery.Controller"})
	return nil
}

// Controller wraps named actions with retry bookkeeping and a raw data
// fallback, so a failed derived artifact never leaves the operator with
// nothing. It never retries on its own: every attempt is an explicit call.
//
// The controller is driven from the single foreground goroutine and is not
// safe for concurrent use.
type Controller struct {
	contexts map[string]*model.RecoveryContext
	logger   log.Logger
}

// New creates a new recovery controller.
func New(cfg Config) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		contexts: map[string]*model.RecoveryContext{},
		logger:   cfg.Logger,
	}, nil
}

// Attempt runs the operation identified by key. On success the stored
// recovery context for the key is cleared. On failure a recovery context is
// stored (keeping the fetched payload when the fetch step succeeded) and the
// same key can be attempted again.
func (c *Controller) Attempt(ctx context.Context, key string, op Operation) (interface{}, error) {
	if key == "" {
		return nil, fmt.Errorf("key is required: %w", model.ErrNotValid)
	}
	if op.Derive == nil {
		return nil, fmt.Errorf("derive step is required: %w", model.ErrNotValid)
	}

	var input model.Document
	if prev, ok := c.contexts[key]; ok && prev.Fallback != nil {
		c.logger.Debugf("reusing captured payload for %q retry", key)
		input = prev.Fallback
	} else if op.Fetch != nil {
		fetched, err := op.Fetch(ctx)
		if err != nil {
			c.contexts[key] = &model.RecoveryContext{
				Key:             key,
				LastErrorDetail: err.Error(),
				Retryable:       true,
			}
			return nil, fmt.Errorf("could not fetch input data: %w", err)
		}
		input = fetched
	}

	result, err := op.Derive(ctx, input)
	if err != nil {
		c.contexts[key] = &model.RecoveryContext{
			Key:             key,
			LastErrorDetail: err.Error(),
			Retryable:       true,
			Fallback:        input,
		}
		return nil, err
	}

	delete(c.contexts, key)
	return result, nil
}

// Context returns the stored recovery context for key, if any.
func (c *Controller) Context(key string) (*model.RecoveryContext, bool) {
	rc, ok := c.contexts[key]
	return rc, ok
}

// Fallback returns the raw payload captured before the failing step for
// key, if one exists.
func (c *Controller) Fallback(key string) (model.Document, bool) {
	rc, ok := c.contexts[key]
	if !ok || rc.Fallback == nil {
		return nil, false
	}
	return rc.Fallback, true
}

// Clear drops the stored recovery context for key.
func (c *Controller) Clear(key string) {
	delete(c.contexts, key)
}
