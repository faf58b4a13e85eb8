package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPageSplitter is a mock implementation of port.PageSplitter.
type MockPageSplitter struct {
	mock.Mock
}

func (m *MockPageSplitter) Split(ctx context.Context, pdf []byte) ([][]byte, error) {
	args := m.Called(ctx, pdf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}
