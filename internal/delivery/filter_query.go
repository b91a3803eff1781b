package delivery

import (
	"fmt"
	"time"

	"trackerdash/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type filterQuery struct {
	TimeRange string `form:"time_range" binding:"omitempty,oneof='all times' today 7d 30d 90d custom"`
	Platform  string `form:"platform" binding:"omitempty,oneof=all ios android"`
	GroupBy   string `form:"group_by" binding:"omitempty,oneof=day week month"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type previousQuery struct {
	Installs      int    `form:"previous_installs" binding:"omitempty,min=0"`
	Subscriptions int    `form:"previous_subscriptions" binding:"omitempty,min=0"`
	Revenue       string `form:"previous_revenue" binding:"omitempty,numeric"`
}

type rankingQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// FilterBinder turns query strings into pipeline filters. Explicit dates are
// whole days in the dashboard's location.
type FilterBinder struct {
	location *time.Location
}

func NewFilterBinder(loc *time.Location) *FilterBinder {
	if loc == nil {
		loc = time.Local
	}
	return &FilterBinder{location: loc}
}

// Bind reads the filter of the request. Without a time_range an explicit date
// range stands alone; otherwise the default 30 day window applies. A custom
// range is carried by its dates only.
func (b *FilterBinder) Bind(c *gin.Context) (domain.Filter, error) {
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return domain.Filter{}, fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
	}

	filter := domain.DefaultFilter()
	if q.Platform != "" {
		filter.Platform = domain.Platform(q.Platform)
	}
	if q.GroupBy != "" {
		filter.GroupBy = domain.GroupBy(q.GroupBy)
	}

	if q.StartDate != "" {
		start, _ := time.ParseInLocation(domain.DateLayout, q.StartDate, b.location)
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, _ := time.ParseInLocation(domain.DateLayout, q.EndDate, b.location)
		end = end.AddDate(0, 0, 1).Add(-time.Millisecond)
		filter.EndDate = &end
	}

	switch {
	case q.TimeRange != "":
		filter.TimeRange = domain.TimeRange(q.TimeRange)
	case filter.HasExplicitRange():
		filter.TimeRange = domain.TimeRangeAll
	}

	if err := filter.Validate(); err != nil {
		return domain.Filter{}, err
	}
	if filter.TimeRange == domain.TimeRangeCustom {
		filter.TimeRange = domain.TimeRangeAll
	}

	return filter, nil
}

func bindPrevious(c *gin.Context) (domain.PreviousPeriod, error) {
	var q previousQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return domain.PreviousPeriod{}, err
	}

	previous := domain.PreviousPeriod{
		InstallCount:      q.Installs,
		SubscriptionCount: q.Subscriptions,
	}
	if q.Revenue != "" {
		revenue, err := decimal.NewFromString(q.Revenue)
		if err != nil {
			return domain.PreviousPeriod{}, fmt.Errorf("previous_revenue: %w", err)
		}
		previous.Revenue = revenue
	}
	return previous, nil
}
