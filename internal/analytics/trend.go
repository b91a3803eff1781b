package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"trackerdash/internal/domain"
)

const monthLayout = "2006-01"

// InvalidDateBucket collects records whose timestamp does not parse; it sorts
// after every dated bucket
const InvalidDateBucket = "Invalid Date"

// AggregateChartData buckets installs and subscriptions on a shared time axis
// using the local time zone for week boundaries.
func AggregateChartData(installs []domain.Install, subscriptions []domain.SubscriptionEvent, groupBy domain.GroupBy) []domain.ChartDataPoint {
	return AggregateChartDataIn(installs, subscriptions, groupBy, time.Local)
}

// AggregateChartDataIn buckets both collections by day, week or month and
// returns one point per touched bucket in ascending date order. Keys are UTC
// calendar dates; a week starts on the Sunday on or before the record in loc.
// Records with unparseable timestamps land in InvalidDateBucket, so every
// input record is counted exactly once.
func AggregateChartDataIn(installs []domain.Install, subscriptions []domain.SubscriptionEvent, groupBy domain.GroupBy, loc *time.Location) []domain.ChartDataPoint {
	if loc == nil {
		loc = time.Local
	}

	var buckets domain.OrderedMap[*domain.ChartDataPoint]
	bucket := func(createdAt string) *domain.ChartDataPoint {
		key := InvalidDateBucket
		if t, ok := domain.ParseTimestamp(createdAt, loc); ok {
			key = BucketKey(t, groupBy, loc)
		}
		point, exists := buckets.Get(key)
		if !exists {
			point = &domain.ChartDataPoint{Date: key, Revenue: decimal.Zero}
			buckets.Set(key, point)
		}
		return point
	}

	for _, install := range installs {
		bucket(install.CreatedAt).Installs++
	}

	for _, sub := range subscriptions {
		point := bucket(sub.CreatedAt)
		point.Subscriptions++
		point.Revenue = point.Revenue.Add(sub.Proceeds)
	}

	points := make([]domain.ChartDataPoint, 0, buckets.Len())
	buckets.Each(func(_ string, point *domain.ChartDataPoint) {
		points = append(points, *point)
	})

	sort.SliceStable(points, func(i, j int) bool {
		ti, iok := bucketTime(points[i].Date)
		tj, jok := bucketTime(points[j].Date)
		if !iok || !jok {
			return iok && !jok
		}
		return ti.Before(tj)
	})

	return points
}

// BucketKey derives the trend bucket of t
func BucketKey(t time.Time, groupBy domain.GroupBy, loc *time.Location) string {
	switch groupBy {
	case domain.GroupByMonth:
		return t.UTC().Format(monthLayout)
	case domain.GroupByWeek:
		local := t.In(loc)
		weekStart := local.AddDate(0, 0, -int(local.Weekday()))
		return weekStart.UTC().Format(domain.DateLayout)
	default:
		return t.UTC().Format(domain.DateLayout)
	}
}

// bucketTime parses a bucket key; a month key reads as the first of that month
func bucketTime(key string) (time.Time, bool) {
	if t, err := time.Parse(domain.DateLayout, key); err == nil {
		return t, true
	}
	if t, err := time.Parse(monthLayout, key); err == nil {
		return t, true
	}
	return time.Time{}, false
}
