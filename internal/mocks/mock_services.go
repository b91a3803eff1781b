package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trackerdash/internal/domain"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Overview(ctx context.Context, trackerID string, filter domain.Filter, previous domain.PreviousPeriod) (*domain.MetricsData, error) {
	args := m.Called(ctx, trackerID, filter, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsData), args.Error(1)
}

func (m *MockDashboardService) InstallStats(ctx context.Context, trackerID string, filter domain.Filter) (*domain.InstallStats, error) {
	args := m.Called(ctx, trackerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallStats), args.Error(1)
}

func (m *MockDashboardService) SubscriptionStats(ctx context.Context, trackerID string, filter domain.Filter) (*domain.SubscriptionStats, error) {
	args := m.Called(ctx, trackerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionStats), args.Error(1)
}

func (m *MockDashboardService) Trend(ctx context.Context, trackerID string, filter domain.Filter) ([]domain.ChartDataPoint, error) {
	args := m.Called(ctx, trackerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartDataPoint), args.Error(1)
}

func (m *MockDashboardService) Ranking(ctx context.Context, trackerID string, filter domain.Filter, rankingType domain.RankingType, limit int) ([]domain.RankingItem, error) {
	args := m.Called(ctx, trackerID, filter, rankingType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankingItem), args.Error(1)
}

func (m *MockDashboardService) Distribution(ctx context.Context, trackerID string, filter domain.Filter, kind domain.DistributionKind) ([]domain.DistributionItem, error) {
	args := m.Called(ctx, trackerID, filter, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DistributionItem), args.Error(1)
}

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Refresh(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) RefreshAll(ctx context.Context) (*domain.RefreshReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshReport), args.Error(1)
}

func (m *MockSnapshotService) Invalidate(ctx context.Context, trackerID string) error {
	args := m.Called(ctx, trackerID)
	return args.Error(0)
}

type MockLinksService struct {
	mock.Mock
}

func (m *MockLinksService) ListApps(ctx context.Context) ([]domain.App, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.App), args.Error(1)
}

func (m *MockLinksService) List(ctx context.Context, trackerID string) ([]domain.TrackingLink, error) {
	args := m.Called(ctx, trackerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingLink), args.Error(1)
}

func (m *MockLinksService) Create(ctx context.Context, trackerID string, req domain.CreateTrackingLinkRequest) (*domain.TrackingLink, error) {
	args := m.Called(ctx, trackerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingLink), args.Error(1)
}

func (m *MockLinksService) Update(ctx context.Context, linkID string, req domain.UpdateTrackingLinkRequest) (*domain.TrackingLink, error) {
	args := m.Called(ctx, linkID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingLink), args.Error(1)
}

func (m *MockLinksService) Delete(ctx context.Context, linkID string) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}
