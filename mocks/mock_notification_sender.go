package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flyerwatch/internal/domain"
)

// MockNotificationSender is a mock implementation of port.NotificationSender.
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, batch domain.NotificationBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}
