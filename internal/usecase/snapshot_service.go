package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"trackerdash/internal/domain"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"
)

// SnapshotService keeps one materialized record set per tracker and refreshes
// it from the backend once it is older than the TTL
type SnapshotService struct {
	repo       domain.SnapshotRepository
	apiClient  domain.TrackerAPIClient
	logger     *logger.Logger
	metrics    *metrics.Metrics
	ttl        time.Duration
	workerPool int
	now        func() time.Time
}

func NewSnapshotService(
	repo domain.SnapshotRepository,
	apiClient domain.TrackerAPIClient,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	ttl time.Duration,
	workerPool int,
) *SnapshotService {
	if workerPool < 1 {
		workerPool = 1
	}
	return &SnapshotService{
		repo:       repo,
		apiClient:  apiClient,
		logger:     logger,
		metrics:    metrics,
		ttl:        ttl,
		workerPool: workerPool,
		now:        time.Now,
	}
}

// Load returns a fresh snapshot, refreshing it when missing or stale
func (s *SnapshotService) Load(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	snapshot, err := s.repo.Get(ctx, trackerID)
	switch {
	case err == nil && !snapshot.Stale(s.now(), s.ttl):
		s.metrics.RecordCacheLookup("hit")
		return snapshot, nil
	case err == nil:
		s.metrics.RecordCacheLookup("stale")
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.metrics.RecordCacheLookup("miss")
	default:
		s.metrics.RecordCacheLookup("error")
		s.logger.WithContext(ctx).WithError(err).WithField("tracker_id", trackerID).Warn("Snapshot lookup failed, refreshing")
	}

	return s.Refresh(ctx, trackerID)
}

// Refresh fetches both record collections of a tracker and stores them
func (s *SnapshotService) Refresh(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	start := time.Now()
	s.metrics.IncSnapshotRefreshInFlight()
	defer s.metrics.DecSnapshotRefreshInFlight()

	log := s.logger.WithContext(ctx).WithField("tracker_id", trackerID)

	installs, subscriptions, err := s.fetch(ctx, trackerID)
	if err != nil {
		s.metrics.RecordSnapshotRefresh("failed", time.Since(start))
		return nil, err
	}

	s.metrics.RecordFetchedRecords("installs", len(installs))
	s.metrics.RecordFetchedRecords("subscriptions", len(subscriptions))

	malformedInstalls := countMalformed(len(installs), func(i int) string { return installs[i].CreatedAt })
	malformedSubs := countMalformed(len(subscriptions), func(i int) string { return subscriptions[i].CreatedAt })
	if malformedInstalls+malformedSubs > 0 {
		s.metrics.RecordMalformedRecords("installs", malformedInstalls)
		s.metrics.RecordMalformedRecords("subscriptions", malformedSubs)
		log.WithFields(map[string]any{
			"malformed_installs":      malformedInstalls,
			"malformed_subscriptions": malformedSubs,
		}).Warn("Records with unparseable timestamps fail time bounds and trend under an invalid date bucket")
	}

	snapshot := &domain.Snapshot{
		TrackerID:     trackerID,
		Installs:      installs,
		Subscriptions: subscriptions,
		FetchedAt:     s.now(),
	}

	if err := s.repo.Store(ctx, snapshot); err != nil {
		s.metrics.RecordSnapshotRefresh("failed", time.Since(start))
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordSnapshotRefresh("success", duration)

	log.WithFields(map[string]any{
		"duration":      duration,
		"installs":      len(installs),
		"subscriptions": len(subscriptions),
	}).Info("Snapshot refreshed")

	return snapshot, nil
}

// fetch loads installs and subscriptions concurrently
func (s *SnapshotService) fetch(ctx context.Context, trackerID string) ([]domain.Install, []domain.SubscriptionEvent, error) {
	log := s.logger.WithContext(ctx).WithField("tracker_id", trackerID)

	var installs []domain.Install
	var subscriptions []domain.SubscriptionEvent
	var installsErr, subsErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		installs, installsErr = s.apiClient.FetchInstalls(ctx, trackerID)
		if installsErr != nil {
			log.WithError(installsErr).Error("Failed to fetch installs")
		}
	}()

	go func() {
		defer wg.Done()
		subscriptions, subsErr = s.apiClient.FetchSubscriptions(ctx, trackerID)
		if subsErr != nil {
			log.WithError(subsErr).Error("Failed to fetch subscriptions")
		}
	}()

	wg.Wait()

	if installsErr != nil {
		return nil, nil, fmt.Errorf("installs fetch failed: %w", installsErr)
	}
	if subsErr != nil {
		return nil, nil, fmt.Errorf("subscriptions fetch failed: %w", subsErr)
	}

	return installs, subscriptions, nil
}

// RefreshAll refreshes every tracker of the account through the worker pool.
// A failing tracker does not stop the others.
func (s *SnapshotService) RefreshAll(ctx context.Context) (*domain.RefreshReport, error) {
	log := s.logger.WithContext(ctx)

	trackers, err := s.apiClient.ListTrackers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trackers: %w", err)
	}

	type result struct {
		trackerID string
		err       error
	}

	jobs := make(chan string, len(trackers))
	results := make(chan result, len(trackers))

	var wg sync.WaitGroup
	for i := 0; i < s.workerPool; i++ {
		wg.Go(func() {
			for trackerID := range jobs {
				_, err := s.Refresh(ctx, trackerID)
				results <- result{trackerID: trackerID, err: err}
			}
		})
	}

	for _, tracker := range trackers {
		jobs <- tracker.ID
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &domain.RefreshReport{Trackers: len(trackers)}
	for r := range results {
		if r.err != nil {
			if report.Failed == nil {
				report.Failed = make(map[string]string)
			}
			report.Failed[r.trackerID] = r.err.Error()
			continue
		}
		report.Refreshed++
	}

	log.WithFields(map[string]any{
		"trackers":  report.Trackers,
		"refreshed": report.Refreshed,
		"failed":    len(report.Failed),
	}).Info("Refresh of all trackers completed")

	return report, nil
}

// Invalidate drops the stored snapshot of a tracker
func (s *SnapshotService) Invalidate(ctx context.Context, trackerID string) error {
	return s.repo.Delete(ctx, trackerID)
}

func countMalformed(n int, createdAt func(i int) string) int {
	malformed := 0
	for i := 0; i < n; i++ {
		if _, ok := domain.ParseTimestamp(createdAt(i), time.UTC); !ok {
			malformed++
		}
	}
	return malformed
}
