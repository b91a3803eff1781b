package infrastructure

import (
	"context"
	"sync"

	"trackerdash/internal/domain"
	"trackerdash/pkg/logger"
)

// implements domain.SnapshotRepository in process memory
type SnapshotRepository struct {
	data   map[string]*domain.Snapshot
	mutex  sync.RWMutex
	logger *logger.Logger
}

// creates a new in-memory snapshot repository
func NewSnapshotRepository(logger *logger.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		data:   make(map[string]*domain.Snapshot),
		logger: logger,
	}
}

func (r *SnapshotRepository) Store(ctx context.Context, snapshot *domain.Snapshot) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[snapshot.TrackerID] = snapshot

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"tracker_id":    snapshot.TrackerID,
		"installs":      len(snapshot.Installs),
		"subscriptions": len(snapshot.Subscriptions),
	}).Debug("Stored snapshot in memory")
	return nil
}

// Get returns the stored snapshot; callers must not mutate it
func (r *SnapshotRepository) Get(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot, ok := r.data[trackerID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (r *SnapshotRepository) Delete(ctx context.Context, trackerID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, trackerID)
	return nil
}
