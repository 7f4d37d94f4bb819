package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// MockPortalClient is a mock implementation of port.PortalClient.
type MockPortalClient struct {
	mock.Mock
}

func (m *MockPortalClient) ValidateAuthToken(ctx context.Context, gstin string) error {
	args := m.Called(ctx, gstin)
	return args.Error(0)
}

func (m *MockPortalClient) Save(ctx context.Context, gstin string, batch domain.UploadBatch) (*port.UploadResponse, error) {
	args := m.Called(ctx, gstin, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadResponse), args.Error(1)
}

func (m *MockPortalClient) Reset(ctx context.Context, gstin string, batch domain.UploadBatch) (*port.UploadResponse, error) {
	args := m.Called(ctx, gstin, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadResponse), args.Error(1)
}

func (m *MockPortalClient) GetRequestStatus(ctx context.Context, gstin, token string) (*port.RequestStatusResponse, error) {
	args := m.Called(ctx, gstin, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RequestStatusResponse), args.Error(1)
}

func (m *MockPortalClient) Download(ctx context.Context, gstin string) (*port.DownloadResponse, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DownloadResponse), args.Error(1)
}
