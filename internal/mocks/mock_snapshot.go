package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trackerdash/internal/domain"
)

type MockSnapshotRepository struct {
	mock.Mock
}

var _ domain.SnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) Store(ctx context.Context, snapshot *domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Get(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Delete(ctx context.Context, trackerID string) error {
	args := m.Called(ctx, trackerID)
	return args.Error(0)
}

type MockSnapshotProvider struct {
	mock.Mock
}

var _ domain.SnapshotProvider = (*MockSnapshotProvider)(nil)

func (m *MockSnapshotProvider) Load(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}
