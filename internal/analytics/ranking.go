package analytics

import (
	"fmt"
	"math"
	"sort"

	"trackerdash/internal/domain"
)

const (
	DefaultRankingLimit = 5
	OSVersionLimit      = 8
)

// Rank returns the top entries of one install or subscription attribute.
// A non-positive limit means DefaultRankingLimit.
func Rank(installs []domain.Install, subscriptions []domain.SubscriptionEvent, rankingType domain.RankingType, limit int) ([]domain.RankingItem, error) {
	switch rankingType {
	case domain.RankingCountry:
		return TopCountries(installs, limit), nil
	case domain.RankingDevice:
		return TopDevices(installs, limit), nil
	case domain.RankingProduct:
		return TopProducts(subscriptions, limit), nil
	case domain.RankingVersion:
		return TopVersions(installs, limit), nil
	case domain.RankingOSVersion:
		return TopOSVersions(installs, limit), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRankingType, rankingType)
	}
}

// TopCountries ranks installs by device timezone
func TopCountries(installs []domain.Install, limit int) []domain.RankingItem {
	return rankInstalls(installs, limit, func(i domain.Install) string {
		return orDefault(i.DeviceTimezone, UnknownLabel)
	})
}

func TopDevices(installs []domain.Install, limit int) []domain.RankingItem {
	return rankInstalls(installs, limit, func(i domain.Install) string {
		return orDefault(i.DeviceModel, UnknownDeviceLabel)
	})
}

func TopVersions(installs []domain.Install, limit int) []domain.RankingItem {
	return rankInstalls(installs, limit, func(i domain.Install) string {
		return orDefault(i.AppVersion, UnknownLabel)
	})
}

func TopOSVersions(installs []domain.Install, limit int) []domain.RankingItem {
	return rankInstalls(installs, limit, func(i domain.Install) string {
		return orDefault(i.DeviceOSVersion, UnknownLabel)
	})
}

func TopProducts(subscriptions []domain.SubscriptionEvent, limit int) []domain.RankingItem {
	var counts domain.Counts
	for _, sub := range subscriptions {
		increment(&counts, orDefault(sub.ProductID, UnknownProductLabel))
	}
	return rankCounts(counts, len(subscriptions), limit)
}

func rankInstalls(installs []domain.Install, limit int, label func(domain.Install) string) []domain.RankingItem {
	var counts domain.Counts
	for _, install := range installs {
		increment(&counts, label(install))
	}
	return rankCounts(counts, len(installs), limit)
}

// rankCounts sorts a histogram by descending count, keeping insertion order on ties
func rankCounts(counts domain.Counts, total, limit int) []domain.RankingItem {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	items := make([]domain.RankingItem, 0, counts.Len())
	counts.Each(func(label string, value int) {
		items = append(items, domain.RankingItem{
			Label:      label,
			Value:      value,
			Percentage: percentage(float64(value), float64(total)),
		})
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// percentage of value in total rounded to the nearest integer, 0 for an empty total
func percentage(value, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(value / total * 100))
}
