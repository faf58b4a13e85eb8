package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/domain"
)

// MockPreferenceRepo is a mock implementation of port.PreferenceRepository.
type MockPreferenceRepo struct {
	mock.Mock
}

func (m *MockPreferenceRepo) Upsert(ctx context.Context, pref *domain.UserPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

func (m *MockPreferenceRepo) GetByUserID(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

func (m *MockPreferenceRepo) ListAll(ctx context.Context) ([]domain.UserPreference, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPreference), args.Error(1)
}

func (m *MockPreferenceRepo) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
