package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// MockPurchaseInvoiceRepo is a mock implementation of port.PurchaseInvoiceRepository.
type MockPurchaseInvoiceRepo struct {
	mock.Mock
}

func (m *MockPurchaseInvoiceRepo) GetByName(ctx context.Context, name string) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepo) ListByNames(ctx context.Context, names []string, filter port.PurchaseFilter) ([]domain.PurchaseInvoice, error) {
	args := m.Called(ctx, names, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepo) ListUnreconciled(ctx context.Context, filter port.PurchaseFilter, docType domain.DocType) ([]domain.PurchaseInvoice, error) {
	args := m.Called(ctx, filter, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepo) ListLinkOptions(ctx context.Context, companyGSTIN string, filter port.LinkOptionFilter) ([]domain.LinkOption, error) {
	args := m.Called(ctx, companyGSTIN, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkOption), args.Error(1)
}

func (m *MockPurchaseInvoiceRepo) SetReconciliationStatus(ctx context.Context, names []string, status domain.ReconciliationStatus) error {
	args := m.Called(ctx, names, status)
	return args.Error(0)
}
