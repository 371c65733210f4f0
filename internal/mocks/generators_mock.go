package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/handler"
	"github.com/SxxMWolf/ReMadeBE/internal/worker"
)

// MockPromptGenerator is a mock type for the PromptGenerator type
type MockPromptGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, req, debug
func (_m *MockPromptGenerator) Generate(ctx context.Context, req domain.PromptRequest, debug bool) (*domain.PromptResult, error) {
	ret := _m.Called(ctx, req, debug)
	r0, _ := ret.Get(0).(*domain.PromptResult)
	return r0, ret.Error(1)
}

// MockImageGenerator is a mock type for the worker.ImageGenerator type
type MockImageGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, description
func (_m *MockImageGenerator) Generate(ctx context.Context, description string) (*domain.ImageResult, error) {
	ret := _m.Called(ctx, description)
	r0, _ := ret.Get(0).(*domain.ImageResult)
	return r0, ret.Error(1)
}

// MockReviewOrganizer is a mock type for the handler.ReviewOrganizer type
type MockReviewOrganizer struct {
	mock.Mock
}

// Organize provides a mock function with given fields: ctx, req
func (_m *MockReviewOrganizer) Organize(ctx context.Context, req domain.OrganizeRequest) (*domain.OrganizedReview, error) {
	ret := _m.Called(ctx, req)
	r0, _ := ret.Get(0).(*domain.OrganizedReview)
	return r0, ret.Error(1)
}

// MockReviewSummarizer is a mock type for the handler.ReviewSummarizer type
type MockReviewSummarizer struct {
	mock.Mock
}

// Summarize provides a mock function with given fields: ctx, text
func (_m *MockReviewSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	ret := _m.Called(ctx, text)
	return ret.String(0), ret.Error(1)
}

// Polish provides a mock function with given fields: ctx, text
func (_m *MockReviewSummarizer) Polish(ctx context.Context, text string) (string, error) {
	ret := _m.Called(ctx, text)
	return ret.String(0), ret.Error(1)
}

var (
	_ worker.PromptGenerator   = (*MockPromptGenerator)(nil)
	_ handler.PromptGenerator  = (*MockPromptGenerator)(nil)
	_ worker.ImageGenerator    = (*MockImageGenerator)(nil)
	_ handler.ReviewOrganizer  = (*MockReviewOrganizer)(nil)
	_ handler.ReviewSummarizer = (*MockReviewSummarizer)(nil)
)
