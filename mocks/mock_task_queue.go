package mocks

import (
	"github.com/stretchr/testify/mock"

	"gstims/internal/port"
)

// MockTaskQueue is a mock implementation of port.TaskQueue.
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Submit(task port.Task) error {
	args := m.Called(task)
	return args.Error(0)
}
