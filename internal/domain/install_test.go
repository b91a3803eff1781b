package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_Stale(t *testing.T) {
	fetched := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	snapshot := &Snapshot{TrackerID: "t1", FetchedAt: fetched}

	assert.False(t, snapshot.Stale(fetched.Add(4*time.Minute), 5*time.Minute))
	assert.True(t, snapshot.Stale(fetched.Add(5*time.Minute), 5*time.Minute))
	assert.True(t, snapshot.Stale(fetched, 0))
}

func TestUpdateTrackingLinkRequest_IsEmpty(t *testing.T) {
	name := "spring"

	assert.True(t, UpdateTrackingLinkRequest{}.IsEmpty())
	assert.False(t, UpdateTrackingLinkRequest{LinkName: &name}.IsEmpty())
	assert.False(t, UpdateTrackingLinkRequest{CustomParams: map[string]any{}}.IsEmpty())
}

func TestAppTracker_ToApp(t *testing.T) {
	tracker := AppTracker{ID: "t1", AppName: "Demo", BundleID: "com.demo", CreatedAt: "2024-01-01", UserID: "u1"}

	app := tracker.ToApp()

	assert.Equal(t, App{ID: "t1", Name: "Demo", BundleID: "com.demo", Status: AppStatusActive, CreatedAt: "2024-01-01", UserID: "u1"}, app)
}
