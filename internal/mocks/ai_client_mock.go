package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SxxMWolf/ReMadeBE/pkg/ai"
)

// MockAIClient is a mock type for the ai.Client type
type MockAIClient struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, systemPrompt, userPrompt
func (_m *MockAIClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	ret := _m.Called(ctx, systemPrompt, userPrompt)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string) string); ok {
		r0 = rf(ctx, systemPrompt, userPrompt)
	} else {
		r0 = ret.String(0)
	}

	return r0, ret.Error(1)
}

// NewMockAIClient creates a new instance of MockAIClient and registers cleanup to assert expectations.
func NewMockAIClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ ai.Client = (*MockAIClient)(nil)
