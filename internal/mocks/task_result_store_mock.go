package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
)

// MockTaskResultStore is a mock type for the repository.TaskResultStore type
type MockTaskResultStore struct {
	mock.Mock
}

// Save provides a mock function with given fields: ctx, result
func (_m *MockTaskResultStore) Save(ctx context.Context, result domain.ImageTaskResult) error {
	ret := _m.Called(ctx, result)
	return ret.Error(0)
}

// Get provides a mock function with given fields: ctx, taskID
func (_m *MockTaskResultStore) Get(ctx context.Context, taskID string) (*domain.ImageTaskResult, error) {
	ret := _m.Called(ctx, taskID)
	r0, _ := ret.Get(0).(*domain.ImageTaskResult)
	return r0, ret.Error(1)
}

var _ repository.TaskResultStore = (*MockTaskResultStore)(nil)
