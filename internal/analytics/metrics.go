package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"trackerdash/internal/domain"
)

// fallback labels for missing record fields
const (
	UnknownLabel        = "Unknown"
	UnknownDeviceLabel  = "Unknown Device"
	UnknownProductLabel = "Unknown Product"
	UnknownStoreLabel   = "unknown"
)

// CalculateInstallMetrics summarizes installs in one pass. Platforms are keyed
// by the raw platform string; regions use the device timezone as a proxy.
func CalculateInstallMetrics(installs []domain.Install) domain.InstallStats {
	var platforms, countries, versions domain.Counts
	withATT := 0

	for _, install := range installs {
		increment(&platforms, install.Platform)
		// same "Unknown" fallback as the country ranking so both views agree
		increment(&countries, orDefault(install.DeviceTimezone, UnknownLabel))
		increment(&versions, orDefault(install.AppVersion, UnknownLabel))
		if install.PrivacyATTStatus {
			withATT++
		}
	}

	var attRate float64
	if len(installs) > 0 {
		attRate = float64(withATT) / float64(len(installs)) * 100
	}

	return domain.InstallStats{
		TotalInstalls: len(installs),
		Platforms:     platforms,
		TopCountries:  countries,
		ATTRate:       attRate,
		AppVersions:   versions,
		LatestVersion: mostFrequent(versions, UnknownLabel),
	}
}

// CalculateSubscriptionMetrics sums proceeds and groups them by product and store
func CalculateSubscriptionMetrics(subscriptions []domain.SubscriptionEvent) domain.SubscriptionStats {
	var products domain.Counts
	var storeRevenue domain.Amounts
	total := decimal.Zero

	for _, sub := range subscriptions {
		total = total.Add(sub.Proceeds)
		increment(&products, orDefault(sub.ProductID, UnknownProductLabel))

		store := orDefault(strings.ToLower(sub.Store), UnknownStoreLabel)
		storeRevenue.Set(store, storeRevenue.Value(store).Add(sub.Proceeds))
	}

	return domain.SubscriptionStats{
		TotalSubscriptions: len(subscriptions),
		TotalRevenue:       total,
		TopProducts:        products,
		PlatformRevenue:    storeRevenue,
	}
}

// FormatPlatformName turns a store or platform key into a display label
func FormatPlatformName(platform string) string {
	switch platform {
	case domain.StoreAppStore:
		return "App Store"
	case domain.StorePlayStore:
		return "Google Play"
	}

	r, size := utf8.DecodeRuneInString(platform)
	if r == utf8.RuneError {
		return platform
	}
	return string(unicode.ToUpper(r)) + platform[size:]
}

func increment(counts *domain.Counts, key string) {
	counts.Set(key, counts.Value(key)+1)
}

// mostFrequent returns the key with the highest count, the earliest inserted on ties
func mostFrequent(counts domain.Counts, fallback string) string {
	best, bestCount := fallback, 0
	counts.Each(func(key string, n int) {
		if n > bestCount {
			best, bestCount = key, n
		}
	})
	return best
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
