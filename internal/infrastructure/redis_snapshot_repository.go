package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trackerdash/internal/domain"
	"trackerdash/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// implements domain.SnapshotRepository on Redis, one JSON value per tracker
type RedisSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// creates a Redis snapshot repository; entries expire after ttl (0 keeps them)
func NewRedisSnapshotRepository(client *redis.Client, ttl time.Duration, logger *logger.Logger) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func snapshotKey(trackerID string) string {
	return fmt.Sprintf("snapshot:%s", trackerID)
}

func (r *RedisSnapshotRepository) Store(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(snapshot.TrackerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", snapshot.TrackerID, err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"tracker_id": snapshot.TrackerID,
		"bytes":      len(data),
	}).Debug("Stored snapshot in redis")
	return nil
}

func (r *RedisSnapshotRepository) Get(ctx context.Context, trackerID string) (*domain.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey(trackerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", trackerID, err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", trackerID, err)
	}
	return &snapshot, nil
}

func (r *RedisSnapshotRepository) Delete(ctx context.Context, trackerID string) error {
	if err := r.client.Del(ctx, snapshotKey(trackerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", trackerID, err)
	}
	return nil
}

// Ping reports whether Redis answers
func (r *RedisSnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
