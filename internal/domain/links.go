package domain

// campaign attribution URL managed for a tracker
type TrackingLink struct {
	ID            string            `json:"id"`
	AppTrackerID  string            `json:"app_tracker_id"`
	CampaignID    *string           `json:"campaign_id"`
	AdsetID       *string           `json:"adset_id"`
	AdID          *string           `json:"ad_id"`
	LinkName      string            `json:"link_name"`
	CustomParams  map[string]any    `json:"custom_params"`
	ClicksCount   int               `json:"clicks_count"`
	InstallsCount int               `json:"installs_count"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
	TrackingURL   string            `json:"tracking_url,omitempty"`
	AppTracker    *LinkedAppTracker `json:"app_tracker,omitempty"`
}

type LinkedAppTracker struct {
	ID             string `json:"id"`
	AppName        string `json:"app_name"`
	BundleID       string `json:"bundle_id"`
	AppStoreURL    string `json:"app_store_url"`
	PlayStoreURL   string `json:"play_store_url"`
	DeepLinkScheme string `json:"deep_link_scheme"`
	FallbackURL    string `json:"fallback_url"`
}

type CreateTrackingLinkRequest struct {
	CampaignID   string         `json:"campaign_id,omitempty"`
	AdsetID      string         `json:"adset_id,omitempty"`
	AdID         string         `json:"ad_id,omitempty"`
	LinkName     string         `json:"link_name" binding:"required,max=120"`
	CustomParams map[string]any `json:"custom_params,omitempty"`
}

// nil fields are left unchanged by the backend
type UpdateTrackingLinkRequest struct {
	CampaignID   *string        `json:"campaign_id,omitempty"`
	AdsetID      *string        `json:"adset_id,omitempty"`
	AdID         *string        `json:"ad_id,omitempty"`
	LinkName     *string        `json:"link_name,omitempty" binding:"omitempty,min=1,max=120"`
	CustomParams map[string]any `json:"custom_params,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (r UpdateTrackingLinkRequest) IsEmpty() bool {
	return r.CampaignID == nil && r.AdsetID == nil && r.AdID == nil && r.LinkName == nil && r.CustomParams == nil
}
