// Package backendmock contains testify mocks for the backend package.
package backendmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsdd/ddx/internal/backend"
)

// MockAPI is a mock implementation of backend.API.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Get(ctx context.Context, path string, query map[string]string) backend.Outcome {
	args := m.Called(ctx, path, query)
	return args.Get(0).(backend.Outcome)
}

func (m *MockAPI) Post(ctx context.Context, path string, body interface{}) backend.Outcome {
	args := m.Called(ctx, path, body)
	return args.Get(0).(backend.Outcome)
}

func (m *MockAPI) Delete(ctx context.Context, path string) backend.Outcome {
	args := m.Called(ctx, path)
	return args.Get(0).(backend.Outcome)
}

func (m *MockAPI) Resolve(path string) string {
	args := m.Called(path)
	return args.String(0)
}

func (m *MockAPI) ResolveAbsolute(path string) string {
	args := m.Called(path)
	return args.String(0)
}

// MockSender is a mock implementation of backend.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, desc backend.Descriptor) backend.Outcome {
	args := m.Called(ctx, desc)
	return args.Get(0).(backend.Outcome)
}

// MockNotifier is a mock implementation of backend.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, message string) {
	m.Called(ctx, message)
}
