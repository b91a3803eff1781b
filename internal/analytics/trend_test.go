package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackerdash/internal/domain"
)

func TestAggregateChartData_WeekMergesCollections(t *testing.T) {
	installs := []domain.Install{{CreatedAt: "2024-03-05"}}
	subs := []domain.SubscriptionEvent{{CreatedAt: "2024-03-06", Proceeds: dec("20")}}

	points := AggregateChartDataIn(installs, subs, domain.GroupByWeek, time.UTC)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-03-03", points[0].Date)
	assert.Equal(t, 1, points[0].Installs)
	assert.Equal(t, 1, points[0].Subscriptions)
	assert.True(t, dec("20").Equal(points[0].Revenue))
}

func TestAggregateChartData_DayBucketsSortedAscending(t *testing.T) {
	installs := []domain.Install{
		{CreatedAt: "2024-03-07T10:00:00Z"},
		{CreatedAt: "2024-03-05T10:00:00Z"},
		{CreatedAt: "2024-03-07T22:00:00Z"},
	}
	subs := []domain.SubscriptionEvent{
		{CreatedAt: "2024-03-06T09:00:00Z", Proceeds: dec("4.99")},
	}

	points := AggregateChartDataIn(installs, subs, domain.GroupByDay, time.UTC)

	require.Len(t, points, 3)
	assert.Equal(t, []string{"2024-03-05", "2024-03-06", "2024-03-07"}, []string{points[0].Date, points[1].Date, points[2].Date})
	assert.Equal(t, 2, points[2].Installs)
	assert.Equal(t, 0, points[1].Installs)
	assert.Equal(t, 1, points[1].Subscriptions)
	assert.True(t, points[0].Revenue.IsZero())
}

func TestAggregateChartData_Month(t *testing.T) {
	installs := []domain.Install{
		{CreatedAt: "2024-02-28T10:00:00Z"},
		{CreatedAt: "2023-12-31T10:00:00Z"},
		{CreatedAt: "2024-02-01T00:00:00Z"},
	}

	points := AggregateChartDataIn(installs, nil, domain.GroupByMonth, time.UTC)

	require.Len(t, points, 2)
	assert.Equal(t, "2023-12", points[0].Date)
	assert.Equal(t, "2024-02", points[1].Date)
	assert.Equal(t, 2, points[1].Installs)
}

func TestAggregateChartData_DefaultsToDay(t *testing.T) {
	installs := []domain.Install{{CreatedAt: "2024-03-05T10:00:00Z"}}

	points := AggregateChartDataIn(installs, nil, "", time.UTC)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-03-05", points[0].Date)
}

func TestAggregateChartData_RevenueConservation(t *testing.T) {
	subs := []domain.SubscriptionEvent{
		{CreatedAt: "2024-01-01T10:00:00Z", Proceeds: dec("0.1")},
		{CreatedAt: "2024-01-09T10:00:00Z", Proceeds: dec("0.2")},
		{CreatedAt: "2024-02-11T10:00:00Z", Proceeds: dec("9.99")},
		{CreatedAt: "2024-02-11T11:00:00Z", Proceeds: dec("4.99")},
	}

	for _, groupBy := range []domain.GroupBy{domain.GroupByDay, domain.GroupByWeek, domain.GroupByMonth} {
		points := AggregateChartDataIn(nil, subs, groupBy, time.UTC)

		sum := decimal.Zero
		for _, p := range points {
			sum = sum.Add(p.Revenue)
		}
		assert.True(t, dec("15.28").Equal(sum), "group by %s: got %s", groupBy, sum)
	}
}

func TestAggregateChartData_MalformedTimestampsBucketLast(t *testing.T) {
	installs := []domain.Install{{CreatedAt: "garbage"}, {CreatedAt: "2024-03-05"}}
	subs := []domain.SubscriptionEvent{
		{CreatedAt: "not-a-date", Proceeds: dec("4.99")},
		{CreatedAt: "2024-03-04T10:00:00Z", Proceeds: dec("9.99")},
	}

	points := AggregateChartDataIn(installs, subs, domain.GroupByDay, time.UTC)

	require.Len(t, points, 3)
	assert.Equal(t, []string{"2024-03-04", "2024-03-05", InvalidDateBucket}, []string{points[0].Date, points[1].Date, points[2].Date})
	assert.Equal(t, 1, points[2].Installs)
	assert.Equal(t, 1, points[2].Subscriptions)
	assert.True(t, dec("4.99").Equal(points[2].Revenue))
}

func TestAggregateChartData_ConservesRevenueOfUnboundedFilter(t *testing.T) {
	subs := []domain.SubscriptionEvent{
		{CreatedAt: "2024-03-05T10:00:00Z", Store: "app_store", Proceeds: dec("9.99")},
		{CreatedAt: "2024-03-05 10:00:00+00", Store: "play_store", Proceeds: dec("4.99")},
		{CreatedAt: "05.03.2024", Store: "app_store", Proceeds: dec("1.50")},
	}
	filter := domain.Filter{TimeRange: domain.TimeRangeAll, Platform: domain.PlatformAll, GroupBy: domain.GroupByDay}

	filtered := ApplySubscriptionFiltersAt(subs, filter, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	require.Len(t, filtered, 3)

	stats := CalculateSubscriptionMetrics(filtered)
	for _, groupBy := range []domain.GroupBy{domain.GroupByDay, domain.GroupByWeek, domain.GroupByMonth} {
		points := AggregateChartDataIn(nil, filtered, groupBy, time.UTC)

		sum := decimal.Zero
		count := 0
		for _, p := range points {
			sum = sum.Add(p.Revenue)
			count += p.Subscriptions
		}
		assert.True(t, stats.TotalRevenue.Equal(sum), "group by %s: got %s", groupBy, sum)
		assert.Equal(t, stats.TotalSubscriptions, count)
	}
}

func TestAggregateChartData_Empty(t *testing.T) {
	assert.Empty(t, AggregateChartDataIn(nil, nil, domain.GroupByDay, time.UTC))
}

func TestBucketKey_WeekUsesLocalWeekday(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// Saturday 20:00 UTC is already Sunday morning at UTC+9
	ts := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-03", BucketKey(ts, domain.GroupByWeek, time.UTC))
	assert.Equal(t, "2024-03-09", BucketKey(ts, domain.GroupByWeek, loc))
}
