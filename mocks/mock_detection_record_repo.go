package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/domain"
)

// MockDetectionRecordRepo is a mock implementation of port.DetectionRecordRepository.
type MockDetectionRecordRepo struct {
	mock.Mock
}

func (m *MockDetectionRecordRepo) Upsert(ctx context.Context, rec *domain.DetectionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockDetectionRecordRepo) GetByImageID(ctx context.Context, imageID string) (*domain.DetectionRecord, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetectionRecord), args.Error(1)
}

func (m *MockDetectionRecordRepo) ListByFlyer(ctx context.Context, flyerID uuid.UUID) ([]domain.DetectionRecord, error) {
	args := m.Called(ctx, flyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetectionRecord), args.Error(1)
}

func (m *MockDetectionRecordRepo) ListByFlyers(ctx context.Context, flyerIDs []uuid.UUID) ([]domain.DetectionRecord, error) {
	args := m.Called(ctx, flyerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetectionRecord), args.Error(1)
}

func (m *MockDetectionRecordRepo) List(ctx context.Context, offset, limit int) ([]domain.DetectionRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DetectionRecord), args.Int(1), args.Error(2)
}

func (m *MockDetectionRecordRepo) SetValidByFlyer(ctx context.Context, flyerID uuid.UUID, valid bool) error {
	args := m.Called(ctx, flyerID, valid)
	return args.Error(0)
}
