package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishActionStatus(ctx context.Context, n domain.ActionStatusNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotifier) PublishUploadReady(ctx context.Context, gstin string) error {
	args := m.Called(ctx, gstin)
	return args.Error(0)
}
