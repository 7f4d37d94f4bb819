package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReconciler is a mock implementation of port.Reconciler.
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, company, companyGSTIN string) error {
	args := m.Called(ctx, company, companyGSTIN)
	return args.Error(0)
}
