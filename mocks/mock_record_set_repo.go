package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sofhub/internal/domain"
)

// MockRecordSetRepo is a mock implementation of port.RecordSetRepository.
type MockRecordSetRepo struct {
	mock.Mock
}

func (m *MockRecordSetRepo) Get(ctx context.Context, owner uuid.UUID) ([]domain.SavedRecord, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedRecord), args.Error(1)
}

func (m *MockRecordSetRepo) Put(ctx context.Context, owner uuid.UUID, records []domain.SavedRecord) error {
	args := m.Called(ctx, owner, records)
	return args.Error(0)
}
