package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trackerdash/internal/domain"
)

type MockTrackerAPIClient struct {
	mock.Mock
}

var _ domain.TrackerAPIClient = (*MockTrackerAPIClient)(nil)

func (m *MockTrackerAPIClient) ListTrackers(ctx context.Context) ([]domain.AppTracker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AppTracker), args.Error(1)
}

func (m *MockTrackerAPIClient) FetchInstalls(ctx context.Context, trackerID string) ([]domain.Install, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Install), args.Error(1)
}

func (m *MockTrackerAPIClient) FetchSubscriptions(ctx context.Context, trackerID string) ([]domain.SubscriptionEvent, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriptionEvent), args.Error(1)
}

type MockLinksAPIClient struct {
	mock.Mock
}

var _ domain.LinksAPIClient = (*MockLinksAPIClient)(nil)

func (m *MockLinksAPIClient) ListTrackingLinks(ctx context.Context, trackerID string) ([]domain.TrackingLink, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingLink), args.Error(1)
}

func (m *MockLinksAPIClient) CreateTrackingLink(ctx context.Context, trackerID string, req domain.CreateTrackingLinkRequest) (*domain.TrackingLink, error) {
	args := m.Called(ctx, trackerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingLink), args.Error(1)
}

func (m *MockLinksAPIClient) UpdateTrackingLink(ctx context.Context, linkID string, req domain.UpdateTrackingLinkRequest) (*domain.TrackingLink, error) {
	args := m.Called(ctx, linkID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingLink), args.Error(1)
}

func (m *MockLinksAPIClient) DeleteTrackingLink(ctx context.Context, linkID string) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}
