package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackerdash/internal/domain"
)

func TestPlatformDistribution(t *testing.T) {
	installs := []domain.Install{{Platform: "ios"}, {Platform: "android"}, {Platform: "android"}, {Platform: "android"}}

	items := PlatformDistribution(installs)

	require.Len(t, items, 2)
	assert.Equal(t, domain.DistributionItem{Label: "Android", Value: 3, Percentage: 75, Color: "green"}, items[0])
	assert.Equal(t, domain.DistributionItem{Label: "Ios", Value: 1, Percentage: 25, Color: "blue"}, items[1])
}

func TestRevenueDistribution(t *testing.T) {
	subs := []domain.SubscriptionEvent{
		{Store: "play_store", Proceeds: dec("5")},
		{Store: "app_store", Proceeds: dec("15")},
	}

	items := RevenueDistribution(subs)

	require.Len(t, items, 2)
	assert.Equal(t, "App Store", items[0].Label)
	assert.Equal(t, 15.0, items[0].Value)
	assert.Equal(t, 75, items[0].Percentage)
	assert.Equal(t, "green", items[0].Color)
	assert.True(t, items[0].IsCurrency)
	assert.Equal(t, "Google Play", items[1].Label)
}

func TestRevenueDistribution_ZeroRevenue(t *testing.T) {
	subs := []domain.SubscriptionEvent{{Store: "app_store"}}

	items := RevenueDistribution(subs)

	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Percentage)
}

func TestAppVersionDistribution_TopFour(t *testing.T) {
	var installs []domain.Install
	for i, v := range []string{"1", "2", "3", "4", "5"} {
		for n := 0; n <= i; n++ {
			installs = append(installs, domain.Install{AppVersion: v})
		}
	}

	items := AppVersionDistribution(installs)

	require.Len(t, items, 4)
	assert.Equal(t, "5", items[0].Label)
	assert.Equal(t, "orange", items[1].Color)
	// fifth histogram entry wraps to the first color
	assert.Equal(t, "blue", items[0].Color)
}

func TestOSVersionDistribution_TopEight(t *testing.T) {
	var installs []domain.Install
	for _, v := range []string{"10", "11", "12", "13", "14", "15", "16", "17", "18", ""} {
		installs = append(installs, domain.Install{DeviceOSVersion: v})
	}

	items := OSVersionDistribution(installs)

	require.Len(t, items, 8)
	assert.Equal(t, 10, items[0].Percentage)
}

func TestDistributions_EmptyInput(t *testing.T) {
	for _, kind := range []domain.DistributionKind{
		domain.DistributionPlatform,
		domain.DistributionRevenue,
		domain.DistributionAppVersion,
		domain.DistributionOSVersion,
	} {
		items, err := Distribution(nil, nil, kind)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestDistribution_UnknownKind(t *testing.T) {
	_, err := Distribution(nil, nil, "moon")

	assert.True(t, errors.Is(err, domain.ErrUnknownDistribution))
}
