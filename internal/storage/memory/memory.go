package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository. Useful
// when no history should be persisted between runs.
type Repository struct {
	operations map[string]model.OperationRecord
	mu         sync.RWMutex
	logger     log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		operations: make(map[string]model.OperationRecord),
		logger:     cfg.Logger,
	}, nil
}

// RecordOperation stores one finished long-running operation.
func (r *Repository) RecordOperation(ctx context.Context, op model.OperationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.operations[op.ID]; ok {
		return fmt.Errorf("operation with id %s: %w", op.ID, model.ErrAlreadyExists)
	}

	r.operations[op.ID] = op
	r.logger.Debugf("Recorded operation in repository: %s", op.ID)

	return nil
}

// ListOperations returns all recorded operations, newest first.
func (r *Repository) ListOperations(ctx context.Context) ([]model.OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]model.OperationRecord, 0, len(r.operations))
	for _, op := range r.operations {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].StartedAt.After(ops[j].StartedAt) })

	return ops, nil
}

// GetOperation retrieves one operation by ID.
func (r *Repository) GetOperation(ctx context.Context, id string) (*model.OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operations[id]
	if !ok {
		return nil, fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
	}

	opCopy := op
	return &opCopy, nil
}
