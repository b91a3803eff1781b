package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trackerdash/internal/domain"
	"trackerdash/internal/mocks"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"
)

func dashboardSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		TrackerID: "t1",
		Installs: []domain.Install{
			{ID: "i1", CreatedAt: "2024-06-15T08:00:00Z", Platform: "ios", DeviceModel: "iPhone15", AppVersion: "2.0"},
			{ID: "i2", CreatedAt: "2024-06-10T08:00:00Z", Platform: "android", DeviceModel: "Pixel8", AppVersion: "2.0"},
			{ID: "i3", CreatedAt: "2024-01-10T08:00:00Z", Platform: "ios", DeviceModel: "iPhone15", AppVersion: "1.0"},
		},
		Subscriptions: []domain.SubscriptionEvent{
			{ID: "s1", CreatedAt: "2024-06-14T08:00:00Z", Store: "app_store", ProductID: "pro", Proceeds: decimal.RequireFromString("9.99")},
			{ID: "s2", CreatedAt: "2024-06-12T08:00:00Z", Store: "play_store", ProductID: "pro", Proceeds: decimal.RequireFromString("4.99")},
		},
		FetchedAt: testNow,
	}
}

func newDashboardService(provider domain.SnapshotProvider) (*DashboardService, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	s := NewDashboardService(provider, logger.Discard(), m, time.UTC)
	s.now = func() time.Time { return testNow }
	return s, m
}

func TestDashboardService_Overview(t *testing.T) {
	provider := new(mocks.MockSnapshotProvider)
	provider.On("Load", mock.Anything, "t1").Return(dashboardSnapshot(), nil)
	service, m := newDashboardService(provider)

	overview, err := service.Overview(context.Background(), "t1", domain.DefaultFilter(), domain.PreviousPeriod{InstallCount: 4})

	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalInstalls)
	assert.Equal(t, 2, overview.TotalSubscriptions)
	assert.True(t, decimal.RequireFromString("14.98").Equal(overview.TotalRevenue))
	assert.Equal(t, 100.0, overview.ConversionRate)
	assert.Equal(t, -50.0, overview.InstallsChange)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PipelineRunsTotal.WithLabelValues("overview")))
}

func TestDashboardService_PlatformFilter(t *testing.T) {
	provider := new(mocks.MockSnapshotProvider)
	provider.On("Load", mock.Anything, "t1").Return(dashboardSnapshot(), nil)
	service, _ := newDashboardService(provider)

	filter := domain.Filter{TimeRange: domain.TimeRangeAll, Platform: domain.PlatformIOS}

	installs, err := service.InstallStats(context.Background(), "t1", filter)
	require.NoError(t, err)
	assert.Equal(t, 2, installs.TotalInstalls)

	subs, err := service.SubscriptionStats(context.Background(), "t1", filter)
	require.NoError(t, err)
	assert.Equal(t, 1, subs.TotalSubscriptions)
	assert.Equal(t, []string{"app_store"}, subs.PlatformRevenue.Keys())
}

func TestDashboardService_Trend(t *testing.T) {
	provider := new(mocks.MockSnapshotProvider)
	provider.On("Load", mock.Anything, "t1").Return(dashboardSnapshot(), nil)
	service, _ := newDashboardService(provider)

	points, err := service.Trend(context.Background(), "t1", domain.Filter{TimeRange: domain.TimeRange7Days, GroupBy: domain.GroupByDay})

	require.NoError(t, err)
	var dates []string
	for _, p := range points {
		dates = append(dates, p.Date)
	}
	assert.Equal(t, []string{"2024-06-10", "2024-06-12", "2024-06-14", "2024-06-15"}, dates)
}

func TestDashboardService_RankingAndDistribution(t *testing.T) {
	provider := new(mocks.MockSnapshotProvider)
	provider.On("Load", mock.Anything, "t1").Return(dashboardSnapshot(), nil)
	service, _ := newDashboardService(provider)
	filter := domain.Filter{TimeRange: domain.TimeRangeAll}

	ranking, err := service.Ranking(context.Background(), "t1", filter, domain.RankingDevice, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.RankingItem{Label: "iPhone15", Value: 2, Percentage: 67}, ranking[0])

	dist, err := service.Distribution(context.Background(), "t1", filter, domain.DistributionRevenue)
	require.NoError(t, err)
	assert.Equal(t, "App Store", dist[0].Label)

	_, err = service.Ranking(context.Background(), "t1", filter, "galaxy", 5)
	assert.ErrorIs(t, err, domain.ErrUnknownRankingType)

	_, err = service.Distribution(context.Background(), "t1", filter, "pie")
	assert.ErrorIs(t, err, domain.ErrUnknownDistribution)
}

func TestDashboardService_InvalidFilterSkipsLoad(t *testing.T) {
	provider := new(mocks.MockSnapshotProvider)
	service, _ := newDashboardService(provider)

	_, err := service.Overview(context.Background(), "t1", domain.Filter{Platform: "web"}, domain.PreviousPeriod{})

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	provider.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestDashboardService_LoadError(t *testing.T) {
	provider := new(mocks.MockSnapshotProvider)
	provider.On("Load", mock.Anything, "t1").Return(nil, domain.ErrUnauthorized)
	service, _ := newDashboardService(provider)

	_, err := service.Trend(context.Background(), "t1", domain.DefaultFilter())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
