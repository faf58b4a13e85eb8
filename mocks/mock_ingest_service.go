package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/service"
)

// MockIngestService is a mock implementation of service.IngestService.
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) ProcessDetections(ctx context.Context, input service.IngestInput) (*service.IngestSummary, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestSummary), args.Error(1)
}
