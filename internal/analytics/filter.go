// Package analytics turns raw install and subscription records into the
// aggregates the dashboard renders. Every function here is a pure transform:
// inputs are never mutated and nothing fails, so results can be recomputed or
// memoized freely and shared across goroutines.
package analytics

import (
	"strings"
	"time"

	"trackerdash/internal/domain"
)

const day = 24 * time.Hour

// ApplyInstallFilters narrows installs using the current wall clock
func ApplyInstallFilters(installs []domain.Install, filter domain.Filter) []domain.Install {
	return ApplyInstallFiltersAt(installs, filter, time.Now())
}

// ApplyInstallFiltersAt narrows installs as if evaluated at now.
// Relative windows are computed in now's location.
func ApplyInstallFiltersAt(installs []domain.Install, filter domain.Filter, now time.Time) []domain.Install {
	keep := newPeriodPredicate(filter, now)
	platform := filter.Platform

	filtered := make([]domain.Install, 0, len(installs))
	for _, install := range installs {
		if platform != "" && platform != domain.PlatformAll && !strings.EqualFold(install.Platform, string(platform)) {
			continue
		}
		if !keep(install.CreatedAt) {
			continue
		}
		filtered = append(filtered, install)
	}

	return filtered
}

// ApplySubscriptionFilters narrows subscription events using the current wall clock
func ApplySubscriptionFilters(subscriptions []domain.SubscriptionEvent, filter domain.Filter) []domain.SubscriptionEvent {
	return ApplySubscriptionFiltersAt(subscriptions, filter, time.Now())
}

// ApplySubscriptionFiltersAt narrows subscription events as if evaluated at now.
// The platform filter is matched against the selling store.
func ApplySubscriptionFiltersAt(subscriptions []domain.SubscriptionEvent, filter domain.Filter, now time.Time) []domain.SubscriptionEvent {
	keep := newPeriodPredicate(filter, now)
	platform := filter.Platform

	filtered := make([]domain.SubscriptionEvent, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if platform != "" && platform != domain.PlatformAll && !strings.EqualFold(sub.Store, platform.Store()) {
			continue
		}
		if !keep(sub.CreatedAt) {
			continue
		}
		filtered = append(filtered, sub)
	}

	return filtered
}

// DateRange resolves a relative time range at now. The window ends at the
// last millisecond of now's day; N-day windows reach back N*24h from there.
// Unknown ranges fall back to the 30 day window.
func DateRange(timeRange domain.TimeRange, now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())

	switch timeRange {
	case domain.TimeRangeToday:
		start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case domain.TimeRange7Days:
		start = end.Add(-7 * day)
	case domain.TimeRange30Days:
		start = end.Add(-30 * day)
	case domain.TimeRange90Days:
		start = end.Add(-90 * day)
	default:
		start = end.Add(-30 * day)
	}

	return start, end
}

// newPeriodPredicate builds the time predicate of a filter. The relative window
// and the explicit bounds are independent: when both are set a record must
// satisfy both. Unparseable timestamps fail any active bound.
func newPeriodPredicate(filter domain.Filter, now time.Time) func(createdAt string) bool {
	var bounds [][2]time.Time

	if filter.TimeRange != "" && filter.TimeRange != domain.TimeRangeAll {
		start, end := DateRange(filter.TimeRange, now)
		bounds = append(bounds, [2]time.Time{start, end})
	}
	if filter.HasExplicitRange() {
		bounds = append(bounds, [2]time.Time{*filter.StartDate, *filter.EndDate})
	}

	if len(bounds) == 0 {
		return func(string) bool { return true }
	}

	loc := now.Location()
	return func(createdAt string) bool {
		t, ok := domain.ParseTimestamp(createdAt, loc)
		if !ok {
			return false
		}
		for _, b := range bounds {
			if t.Before(b[0]) || t.After(b[1]) {
				return false
			}
		}
		return true
	}
}
