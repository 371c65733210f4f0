package mocks

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/mock"

	"github.com/SxxMWolf/ReMadeBE/internal/service"
)

// MockImageCreator is a mock type for the service.ImageCreator type
type MockImageCreator struct {
	mock.Mock
}

// CreateImage provides a mock function with given fields: ctx, request
func (_m *MockImageCreator) CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error) {
	ret := _m.Called(ctx, request)
	r0, _ := ret.Get(0).(openai.ImageResponse)
	return r0, ret.Error(1)
}

var _ service.ImageCreator = (*MockImageCreator)(nil)
