package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// one app-install event reported by the tracker SDK
type Install struct {
	ID               string `json:"id"`
	AppTrackerID     string `json:"app_tracker_id"`
	CreatedAt        string `json:"created_at"`
	EventID          string `json:"event_id,omitempty"`
	EventName        string `json:"event_name,omitempty"`
	Platform         string `json:"platform"`
	AppBundleID      string `json:"app_bundle_id,omitempty"`
	AppVersion       string `json:"app_version,omitempty"`
	AppBuild         string `json:"app_build,omitempty"`
	DeviceOSVersion  string `json:"device_os_version,omitempty"`
	DeviceLocale     string `json:"device_locale,omitempty"`
	DeviceModel      string `json:"device_model,omitempty"`
	DeviceTimezone   string `json:"device_timezone,omitempty"`
	PrivacyATTStatus bool   `json:"privacy_att_status"`
}

// one monetization event (purchase or renewal)
type SubscriptionEvent struct {
	ID           string          `json:"id"`
	AppTrackerID string          `json:"app_tracker_id"`
	EventType    string          `json:"event_type,omitempty"`
	EventName    string          `json:"event_name,omitempty"`
	CreatedAt    string          `json:"created_at"`
	Store        string          `json:"store"`
	ProductID    string          `json:"product_id,omitempty"`
	PeriodType   string          `json:"period_type,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	PurchasedAt  string          `json:"purchased_at,omitempty"`
	ExpirationAt string          `json:"expiration_at,omitempty"`
}

// AppTracker is a tracked application as returned by the backend
type AppTracker struct {
	ID        string `json:"id"`
	AppName   string `json:"app_name"`
	BundleID  string `json:"bundle_id"`
	CreatedAt string `json:"created_at"`
	UserID    string `json:"user_id"`
}

type AppStatus string

const (
	AppStatusActive   AppStatus = "active"
	AppStatusInactive AppStatus = "inactive"
	AppStatusDev      AppStatus = "dev"
	AppStatusBeta     AppStatus = "beta"
)

// App is the dashboard view of an AppTracker
type App struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BundleID  string    `json:"bundle_id"`
	Status    AppStatus `json:"status"`
	CreatedAt string    `json:"created_at"`
	UserID    string    `json:"user_id"`
}

// Snapshot is the materialized record set of one tracker at FetchedAt
type Snapshot struct {
	TrackerID     string              `json:"tracker_id"`
	Installs      []Install           `json:"installs"`
	Subscriptions []SubscriptionEvent `json:"subscriptions"`
	FetchedAt     time.Time           `json:"fetched_at"`
}

// RefreshReport summarizes a refresh of every tracker; Failed maps tracker IDs to errors
type RefreshReport struct {
	Trackers  int               `json:"trackers"`
	Refreshed int               `json:"refreshed"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// reports whether the snapshot is older than ttl at now
func (s *Snapshot) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) >= ttl
}

// ToApp maps a tracker to its dashboard view; every tracker reports as active
func (t AppTracker) ToApp() App {
	return App{
		ID:        t.ID,
		Name:      t.AppName,
		BundleID:  t.BundleID,
		Status:    AppStatusActive,
		CreatedAt: t.CreatedAt,
		UserID:    t.UserID,
	}
}
