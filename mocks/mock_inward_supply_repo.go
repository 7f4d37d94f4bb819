package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// MockInwardSupplyRepo is a mock implementation of port.InwardSupplyRepository.
type MockInwardSupplyRepo struct {
	mock.Mock
}

func (m *MockInwardSupplyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InwardSupply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InwardSupply), args.Error(1)
}

func (m *MockInwardSupplyRepo) List(ctx context.Context, companyGSTIN string, ids []uuid.UUID) ([]domain.InwardSupply, error) {
	args := m.Called(ctx, companyGSTIN, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InwardSupply), args.Error(1)
}

func (m *MockInwardSupplyRepo) ListForSave(ctx context.Context, companyGSTIN string) ([]domain.InwardSupply, error) {
	args := m.Called(ctx, companyGSTIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InwardSupply), args.Error(1)
}

func (m *MockInwardSupplyRepo) ListForReset(ctx context.Context, companyGSTIN string) ([]domain.InwardSupply, error) {
	args := m.Called(ctx, companyGSTIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InwardSupply), args.Error(1)
}

func (m *MockInwardSupplyRepo) ApplyActionState(ctx context.Context, updates []port.ActionStateUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) SyncPreviousIMSAction(ctx context.Context, companyGSTIN string, keys []domain.InvoiceKey) error {
	args := m.Called(ctx, companyGSTIN, keys)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) ResetPreviousIMSAction(ctx context.Context, companyGSTIN string, classification domain.Classification, docType domain.DocType) error {
	args := m.Called(ctx, companyGSTIN, classification, docType)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) Upsert(ctx context.Context, supply *domain.InwardSupply) error {
	args := m.Called(ctx, supply)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) ListIMSOnlyUnfiled(ctx context.Context, companyGSTIN string, classification domain.Classification, docType domain.DocType) ([]domain.InwardSupply, error) {
	args := m.Called(ctx, companyGSTIN, classification, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InwardSupply), args.Error(1)
}

func (m *MockInwardSupplyRepo) Delete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) Link(ctx context.Context, id uuid.UUID, linkDoctype, linkName string, matchStatus domain.MatchStatus) error {
	args := m.Called(ctx, id, linkDoctype, linkName, matchStatus)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) Unlink(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
