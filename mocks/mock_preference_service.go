package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/domain"
)

// MockPreferenceService is a mock implementation of service.PreferenceService.
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Set(ctx context.Context, pref *domain.UserPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

func (m *MockPreferenceService) GetByUserID(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

func (m *MockPreferenceService) List(ctx context.Context) ([]domain.UserPreference, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPreference), args.Error(1)
}

func (m *MockPreferenceService) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
