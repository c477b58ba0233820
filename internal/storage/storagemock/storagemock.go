// Package storagemock contains testify mocks for the storage package.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsdd/ddx/internal/model"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RecordOperation(ctx context.Context, op model.OperationRecord) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockRepository) ListOperations(ctx context.Context) ([]model.OperationRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OperationRecord), args.Error(1)
}

func (m *MockRepository) GetOperation(ctx context.Context, id string) (*model.OperationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OperationRecord), args.Error(1)
}
