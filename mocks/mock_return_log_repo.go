package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
)

// MockReturnLogRepo is a mock implementation of port.ReturnLogRepository.
type MockReturnLogRepo struct {
	mock.Mock
}

func (m *MockReturnLogRepo) Get(ctx context.Context, name string) (*domain.ReturnLog, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnLog), args.Error(1)
}

func (m *MockReturnLogRepo) GetOrCreate(ctx context.Context, gstin string) (*domain.ReturnLog, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnLog), args.Error(1)
}

func (m *MockReturnLogRepo) AddAction(ctx context.Context, action *domain.ReturnAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockReturnLogRepo) FirstUnprocessedAction(ctx context.Context, logName string, requestType domain.RequestType) (*domain.ReturnAction, error) {
	args := m.Called(ctx, logName, requestType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnAction), args.Error(1)
}

func (m *MockReturnLogRepo) HasUnprocessedAction(ctx context.Context, logName string) (bool, error) {
	args := m.Called(ctx, logName)
	return args.Bool(0), args.Error(1)
}

func (m *MockReturnLogRepo) PendingRequestTypes(ctx context.Context, logName string) ([]string, error) {
	args := m.Called(ctx, logName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReturnLogRepo) SetActionStatus(ctx context.Context, actionID uuid.UUID, status string) error {
	args := m.Called(ctx, actionID, status)
	return args.Error(0)
}

func (m *MockReturnLogRepo) LatestFiled3BPeriod(ctx context.Context, company, gstin string) (string, error) {
	args := m.Called(ctx, company, gstin)
	return args.String(0), args.Error(1)
}
