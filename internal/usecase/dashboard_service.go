package usecase

import (
	"context"
	"fmt"
	"time"

	"trackerdash/internal/analytics"
	"trackerdash/internal/domain"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"
)

// DashboardService runs the aggregation pipeline over a tracker's snapshot
type DashboardService struct {
	snapshots domain.SnapshotProvider
	logger    *logger.Logger
	metrics   *metrics.Metrics
	location  *time.Location
	now       func() time.Time
}

// creates a dashboard service; relative windows and buckets use loc
func NewDashboardService(snapshots domain.SnapshotProvider, logger *logger.Logger, metrics *metrics.Metrics, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
		location:  loc,
		now:       time.Now,
	}
}

func (s *DashboardService) Location() *time.Location {
	return s.location
}

// Overview returns headline totals and their change against previous
func (s *DashboardService) Overview(ctx context.Context, trackerID string, filter domain.Filter, previous domain.PreviousPeriod) (*domain.MetricsData, error) {
	installs, subscriptions, err := s.filtered(ctx, trackerID, filter)
	if err != nil {
		return nil, err
	}

	overview := analytics.CalculateOverview(installs, subscriptions, previous)
	s.record(ctx, "overview", trackerID, len(installs), len(subscriptions))
	return &overview, nil
}

func (s *DashboardService) InstallStats(ctx context.Context, trackerID string, filter domain.Filter) (*domain.InstallStats, error) {
	installs, _, err := s.filtered(ctx, trackerID, filter)
	if err != nil {
		return nil, err
	}

	stats := analytics.CalculateInstallMetrics(installs)
	s.record(ctx, "install_stats", trackerID, len(installs), 0)
	return &stats, nil
}

func (s *DashboardService) SubscriptionStats(ctx context.Context, trackerID string, filter domain.Filter) (*domain.SubscriptionStats, error) {
	_, subscriptions, err := s.filtered(ctx, trackerID, filter)
	if err != nil {
		return nil, err
	}

	stats := analytics.CalculateSubscriptionMetrics(subscriptions)
	s.record(ctx, "subscription_stats", trackerID, 0, len(subscriptions))
	return &stats, nil
}

// Trend buckets the filtered records by the filter's group-by
func (s *DashboardService) Trend(ctx context.Context, trackerID string, filter domain.Filter) ([]domain.ChartDataPoint, error) {
	installs, subscriptions, err := s.filtered(ctx, trackerID, filter)
	if err != nil {
		return nil, err
	}

	points := analytics.AggregateChartDataIn(installs, subscriptions, filter.GroupBy, s.location)
	s.record(ctx, "trend", trackerID, len(installs), len(subscriptions))
	return points, nil
}

func (s *DashboardService) Ranking(ctx context.Context, trackerID string, filter domain.Filter, rankingType domain.RankingType, limit int) ([]domain.RankingItem, error) {
	installs, subscriptions, err := s.filtered(ctx, trackerID, filter)
	if err != nil {
		return nil, err
	}

	items, err := analytics.Rank(installs, subscriptions, rankingType, limit)
	if err != nil {
		return nil, err
	}
	s.record(ctx, "ranking_"+string(rankingType), trackerID, len(installs), len(subscriptions))
	return items, nil
}

func (s *DashboardService) Distribution(ctx context.Context, trackerID string, filter domain.Filter, kind domain.DistributionKind) ([]domain.DistributionItem, error) {
	installs, subscriptions, err := s.filtered(ctx, trackerID, filter)
	if err != nil {
		return nil, err
	}

	items, err := analytics.Distribution(installs, subscriptions, kind)
	if err != nil {
		return nil, err
	}
	s.record(ctx, "distribution_"+string(kind), trackerID, len(installs), len(subscriptions))
	return items, nil
}

// filtered validates the filter, loads the snapshot and narrows both collections
func (s *DashboardService) filtered(ctx context.Context, trackerID string, filter domain.Filter) ([]domain.Install, []domain.SubscriptionEvent, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}

	snapshot, err := s.snapshots.Load(ctx, trackerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load snapshot for tracker %s: %w", trackerID, err)
	}

	now := s.now().In(s.location)
	installs := analytics.ApplyInstallFiltersAt(snapshot.Installs, filter, now)
	subscriptions := analytics.ApplySubscriptionFiltersAt(snapshot.Subscriptions, filter, now)
	return installs, subscriptions, nil
}

func (s *DashboardService) record(ctx context.Context, operation, trackerID string, installs, subscriptions int) {
	s.metrics.RecordPipelineRun(operation)
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"operation":     operation,
		"tracker_id":    trackerID,
		"installs":      installs,
		"subscriptions": subscriptions,
	}).Debug("Pipeline run")
}
