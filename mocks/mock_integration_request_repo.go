package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
)

// MockIntegrationRequestRepo is a mock implementation of port.IntegrationRequestRepository.
type MockIntegrationRequestRepo struct {
	mock.Mock
}

func (m *MockIntegrationRequestRepo) Save(ctx context.Context, req *domain.IntegrationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockIntegrationRequestRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.IntegrationRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationRequest), args.Error(1)
}
