package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
)

// MockPublisher is a mock type for the messaging.Publisher type
type MockPublisher struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, payload, correlationID
func (_m *MockPublisher) Publish(ctx context.Context, payload any, correlationID string) error {
	ret := _m.Called(ctx, payload, correlationID)
	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *MockPublisher) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

var _ messaging.Publisher = (*MockPublisher)(nil)
