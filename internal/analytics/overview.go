package analytics

import (
	"github.com/shopspring/decimal"

	"trackerdash/internal/domain"
)

// CalculatePercentageChange compares current against previous. A zero baseline
// reads as a full 100% increase when anything happened and 0 otherwise.
func CalculatePercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// CalculateOverview builds the headline numbers and their change against previous
func CalculateOverview(installs []domain.Install, subscriptions []domain.SubscriptionEvent, previous domain.PreviousPeriod) domain.MetricsData {
	installStats := CalculateInstallMetrics(installs)
	subStats := CalculateSubscriptionMetrics(subscriptions)

	conversionRate := rate(subStats.TotalSubscriptions, installStats.TotalInstalls)
	previousConversionRate := rate(previous.SubscriptionCount, previous.InstallCount)

	avgRevenue := decimal.Zero
	if subStats.TotalSubscriptions > 0 {
		avgRevenue = subStats.TotalRevenue.Div(decimal.NewFromInt(int64(subStats.TotalSubscriptions)))
	}

	return domain.MetricsData{
		TotalInstalls:      installStats.TotalInstalls,
		TotalSubscriptions: subStats.TotalSubscriptions,
		TotalRevenue:       subStats.TotalRevenue,
		ConversionRate:     conversionRate,
		AvgRevenuePerUser:  avgRevenue,
		InstallsChange: CalculatePercentageChange(
			float64(installStats.TotalInstalls),
			float64(previous.InstallCount),
		),
		SubscriptionsChange: CalculatePercentageChange(
			float64(subStats.TotalSubscriptions),
			float64(previous.SubscriptionCount),
		),
		RevenueChange: CalculatePercentageChange(
			subStats.TotalRevenue.InexactFloat64(),
			previous.Revenue.InexactFloat64(),
		),
		ConversionRateChange: CalculatePercentageChange(conversionRate, previousConversionRate),
	}
}

// rate returns part/whole as a percentage, 0 for an empty whole
func rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
