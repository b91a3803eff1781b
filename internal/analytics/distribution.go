package analytics

import (
	"fmt"
	"sort"

	"trackerdash/internal/domain"
)

const AppVersionLimit = 4

var (
	platformPalette = []string{"blue", "green", "purple"}
	revenuePalette  = []string{"blue", "green"}
	versionPalette  = []string{"blue", "green", "purple", "orange"}
)

// Distribution dispatches to the distribution of the given kind
func Distribution(installs []domain.Install, subscriptions []domain.SubscriptionEvent, kind domain.DistributionKind) ([]domain.DistributionItem, error) {
	switch kind {
	case domain.DistributionPlatform:
		return PlatformDistribution(installs), nil
	case domain.DistributionRevenue:
		return RevenueDistribution(subscriptions), nil
	case domain.DistributionAppVersion:
		return AppVersionDistribution(installs), nil
	case domain.DistributionOSVersion:
		return OSVersionDistribution(installs), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDistribution, kind)
	}
}

// PlatformDistribution splits installs by platform
func PlatformDistribution(installs []domain.Install) []domain.DistributionItem {
	if len(installs) == 0 {
		return []domain.DistributionItem{}
	}

	stats := CalculateInstallMetrics(installs)
	total := float64(len(installs))

	var items []domain.DistributionItem
	stats.Platforms.Each(func(platform string, n int) {
		items = append(items, distributionItem(FormatPlatformName(platform), float64(n), total, platformPalette, len(items)))
	})

	return sortDistribution(items, 0)
}

// RevenueDistribution splits proceeds by store
func RevenueDistribution(subscriptions []domain.SubscriptionEvent) []domain.DistributionItem {
	if len(subscriptions) == 0 {
		return []domain.DistributionItem{}
	}

	stats := CalculateSubscriptionMetrics(subscriptions)
	total := stats.TotalRevenue.InexactFloat64()

	var items []domain.DistributionItem
	for _, store := range stats.PlatformRevenue.Keys() {
		item := distributionItem(FormatPlatformName(store), stats.PlatformRevenue.Value(store).InexactFloat64(), total, revenuePalette, len(items))
		item.IsCurrency = true
		items = append(items, item)
	}

	return sortDistribution(items, 0)
}

// AppVersionDistribution returns the four most installed app versions
func AppVersionDistribution(installs []domain.Install) []domain.DistributionItem {
	if len(installs) == 0 {
		return []domain.DistributionItem{}
	}

	stats := CalculateInstallMetrics(installs)
	return countsDistribution(stats.AppVersions, len(installs), AppVersionLimit)
}

// OSVersionDistribution returns the eight most common device OS versions
func OSVersionDistribution(installs []domain.Install) []domain.DistributionItem {
	if len(installs) == 0 {
		return []domain.DistributionItem{}
	}

	var counts domain.Counts
	for _, install := range installs {
		increment(&counts, orDefault(install.DeviceOSVersion, UnknownLabel))
	}
	return countsDistribution(counts, len(installs), OSVersionLimit)
}

func countsDistribution(counts domain.Counts, total, limit int) []domain.DistributionItem {
	items := make([]domain.DistributionItem, 0, counts.Len())
	counts.Each(func(label string, n int) {
		items = append(items, distributionItem(label, float64(n), float64(total), versionPalette, len(items)))
	})
	return sortDistribution(items, limit)
}

// distributionItem colors an entry by its position in the histogram, so a
// label keeps its color whatever its rank
func distributionItem(label string, value, total float64, palette []string, index int) domain.DistributionItem {
	return domain.DistributionItem{
		Label:      label,
		Value:      value,
		Percentage: percentage(value, total),
		Color:      palette[index%len(palette)],
	}
}

// sortDistribution orders by descending value and truncates when limit > 0
func sortDistribution(items []domain.DistributionItem, limit int) []domain.DistributionItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
