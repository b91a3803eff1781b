package domain

import "github.com/shopspring/decimal"

// aggregate view over a set of installs
type InstallStats struct {
	TotalInstalls int     `json:"total_installs"`
	Platforms     Counts  `json:"platforms"`
	TopCountries  Counts  `json:"top_countries"`
	ATTRate       float64 `json:"att_rate"`
	AppVersions   Counts  `json:"app_versions"`
	LatestVersion string  `json:"latest_version"`
}

// aggregate view over a set of subscription events
type SubscriptionStats struct {
	TotalSubscriptions int             `json:"total_subscriptions"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TopProducts        Counts          `json:"top_products"`
	PlatformRevenue    Amounts         `json:"platform_revenue"`
}

// baseline the overview compares against
type PreviousPeriod struct {
	InstallCount      int             `json:"previous_install_count"`
	SubscriptionCount int             `json:"previous_subscription_count"`
	Revenue           decimal.Decimal `json:"previous_revenue"`
}

// headline numbers of the dashboard overview
type MetricsData struct {
	TotalInstalls        int             `json:"total_installs"`
	TotalSubscriptions   int             `json:"total_subscriptions"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	ConversionRate       float64         `json:"conversion_rate"`
	AvgRevenuePerUser    decimal.Decimal `json:"avg_revenue_per_user"`
	InstallsChange       float64         `json:"installs_change"`
	SubscriptionsChange  float64         `json:"subscriptions_change"`
	RevenueChange        float64         `json:"revenue_change"`
	ConversionRateChange float64         `json:"conversion_rate_change"`
}

// one bucket of the trend chart
type ChartDataPoint struct {
	Date          string          `json:"date"`
	Installs      int             `json:"installs"`
	Subscriptions int             `json:"subscriptions"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type RankingType string

const (
	RankingCountry   RankingType = "country"
	RankingDevice    RankingType = "device"
	RankingProduct   RankingType = "product"
	RankingVersion   RankingType = "version"
	RankingOSVersion RankingType = "os_version"
)

type RankingItem struct {
	Label      string `json:"label"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

type DistributionKind string

const (
	DistributionPlatform   DistributionKind = "platform"
	DistributionRevenue    DistributionKind = "revenue"
	DistributionAppVersion DistributionKind = "app_version"
	DistributionOSVersion  DistributionKind = "os_version"
)

type DistributionItem struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage int     `json:"percentage"`
	Color      string  `json:"color,omitempty"`
	IsCurrency bool    `json:"is_currency,omitempty"`
}
