package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
)

// MockWorkRepository is a mock type for the repository.WorkRepository type
type MockWorkRepository struct {
	mock.Mock
}

// FindMusicalByTitle provides a mock function with given fields: ctx, title
func (_m *MockWorkRepository) FindMusicalByTitle(ctx context.Context, title string) (*domain.WorkRecord, error) {
	ret := _m.Called(ctx, title)
	r0, _ := ret.Get(0).(*domain.WorkRecord)
	return r0, ret.Error(1)
}

// FindMusicalsContaining provides a mock function with given fields: ctx, fragment
func (_m *MockWorkRepository) FindMusicalsContaining(ctx context.Context, fragment string) ([]domain.WorkRecord, error) {
	ret := _m.Called(ctx, fragment)
	r0, _ := ret.Get(0).([]domain.WorkRecord)
	return r0, ret.Error(1)
}

// FindMusicalsContainedIn provides a mock function with given fields: ctx, text
func (_m *MockWorkRepository) FindMusicalsContainedIn(ctx context.Context, text string) ([]domain.WorkRecord, error) {
	ret := _m.Called(ctx, text)
	r0, _ := ret.Get(0).([]domain.WorkRecord)
	return r0, ret.Error(1)
}

// FindMusicalWithRoster provides a mock function with given fields: ctx, id
func (_m *MockWorkRepository) FindMusicalWithRoster(ctx context.Context, id int64) (*domain.WorkRecord, error) {
	ret := _m.Called(ctx, id)
	r0, _ := ret.Get(0).(*domain.WorkRecord)
	return r0, ret.Error(1)
}

// FindBandByName provides a mock function with given fields: ctx, name
func (_m *MockWorkRepository) FindBandByName(ctx context.Context, name string) (*domain.BandRecord, error) {
	ret := _m.Called(ctx, name)
	r0, _ := ret.Get(0).(*domain.BandRecord)
	return r0, ret.Error(1)
}

var _ repository.WorkRepository = (*MockWorkRepository)(nil)
