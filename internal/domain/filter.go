package domain

import (
	"fmt"
	"time"
)

type TimeRange string

const (
	TimeRangeAll    TimeRange = "all times"
	TimeRangeToday  TimeRange = "today"
	TimeRange7Days  TimeRange = "7d"
	TimeRange30Days TimeRange = "30d"
	TimeRange90Days TimeRange = "90d"
	TimeRangeCustom TimeRange = "custom"
)

type Platform string

const (
	PlatformAll     Platform = "all"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Store returns the subscription store that sells on this platform
func (p Platform) Store() string {
	if p == PlatformIOS {
		return StoreAppStore
	}
	return StorePlayStore
}

const (
	StoreAppStore  = "app_store"
	StorePlayStore = "play_store"
)

type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

// Filter narrows record sets before aggregation. The zero value filters nothing.
type Filter struct {
	TimeRange TimeRange  `json:"time_range"`
	Platform  Platform   `json:"platform"`
	GroupBy   GroupBy    `json:"group_by"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// DefaultFilter is the filter a fresh dashboard starts with
func DefaultFilter() Filter {
	return Filter{
		TimeRange: TimeRange30Days,
		Platform:  PlatformAll,
		GroupBy:   GroupByDay,
	}
}

// HasExplicitRange reports whether both explicit bounds are set
func (f Filter) HasExplicitRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

func (f Filter) Validate() error {
	switch f.TimeRange {
	case "", TimeRangeAll, TimeRangeToday, TimeRange7Days, TimeRange30Days, TimeRange90Days, TimeRangeCustom:
	default:
		return fmt.Errorf("%w: unknown time range %q", ErrInvalidFilter, f.TimeRange)
	}

	switch f.Platform {
	case "", PlatformAll, PlatformIOS, PlatformAndroid:
	default:
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidFilter, f.Platform)
	}

	switch f.GroupBy {
	case "", GroupByDay, GroupByWeek, GroupByMonth:
	default:
		return fmt.Errorf("%w: unknown group by %q", ErrInvalidFilter, f.GroupBy)
	}

	if (f.StartDate == nil) != (f.EndDate == nil) {
		return fmt.Errorf("%w: start and end date must be given together", ErrInvalidFilter)
	}
	if f.TimeRange == TimeRangeCustom && !f.HasExplicitRange() {
		return fmt.Errorf("%w: custom time range requires start and end date", ErrInvalidFilter)
	}
	if f.HasExplicitRange() && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("%w: start date is after end date", ErrInvalidFilter)
	}

	return nil
}
