package storage

import (
	"context"

	"github.com/opsdd/ddx/internal/model"
)

// Repository is the interface for local operation history persistence.
type Repository interface {
	RecordOperation(ctx context.Context, op model.OperationRecord) error
	ListOperations(ctx context.Context) ([]model.OperationRecord, error)
	GetOperation(ctx context.Context, id string) (*model.OperationRecord, error)
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name Repository
