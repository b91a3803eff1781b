package domain

import (
	"context"
)

// interface for tracker record retrieval from the backend
type TrackerAPIClient interface {
	ListTrackers(ctx context.Context) ([]AppTracker, error)
	FetchInstalls(ctx context.Context, trackerID string) ([]Install, error)
	FetchSubscriptions(ctx context.Context, trackerID string) ([]SubscriptionEvent, error)
}

// interface for tracking link management on the backend
type LinksAPIClient interface {
	ListTrackingLinks(ctx context.Context, trackerID string) ([]TrackingLink, error)
	CreateTrackingLink(ctx context.Context, trackerID string, req CreateTrackingLinkRequest) (*TrackingLink, error)
	UpdateTrackingLink(ctx context.Context, linkID string, req UpdateTrackingLinkRequest) (*TrackingLink, error)
	DeleteTrackingLink(ctx context.Context, linkID string) error
}

// interface for snapshot storage; Get returns ErrSnapshotNotFound on a miss
type SnapshotRepository interface {
	Store(ctx context.Context, snapshot *Snapshot) error
	Get(ctx context.Context, trackerID string) (*Snapshot, error)
	Delete(ctx context.Context, trackerID string) error
}

// interface for anything that hands out a current snapshot
type SnapshotProvider interface {
	Load(ctx context.Context, trackerID string) (*Snapshot, error)
}
