package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/service"
)

// MockValidityService is a mock implementation of service.ValidityService.
type MockValidityService struct {
	mock.Mock
}

func (m *MockValidityService) RunScan(ctx context.Context, today time.Time) (*service.ScanSummary, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanSummary), args.Error(1)
}
