package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/domain"
)

// MockFlyerRepo is a mock implementation of port.FlyerRepository.
type MockFlyerRepo struct {
	mock.Mock
}

func (m *MockFlyerRepo) Create(ctx context.Context, flyer *domain.Flyer) error {
	args := m.Called(ctx, flyer)
	return args.Error(0)
}

func (m *MockFlyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flyer), args.Error(1)
}

func (m *MockFlyerRepo) List(ctx context.Context, offset, limit int) ([]domain.Flyer, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Flyer), args.Int(1), args.Error(2)
}

func (m *MockFlyerRepo) ListAll(ctx context.Context) ([]domain.Flyer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flyer), args.Error(1)
}

func (m *MockFlyerRepo) UpdateValid(ctx context.Context, id uuid.UUID, valid bool) error {
	args := m.Called(ctx, id, valid)
	return args.Error(0)
}
