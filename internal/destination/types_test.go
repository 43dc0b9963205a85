package destination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neexbeast/dokoiko/internal/destination"
)

func ptr(f float64) *float64 { return &f }

func TestRecord_SelectionWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight *float64
		want   float64
	}{
		{"unset", nil, 1.0},
		{"hub", ptr(0.5), 0.5},
		{"local", ptr(3), 3},
		{"zero", ptr(0), 1e-6},
		{"negative", ptr(-2), 1e-6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := destination.Record{Weight: tc.weight}
			assert.InDelta(t, tc.want, r.SelectionWeight(), 1e-12)
		})
	}
}

func TestRecord_Allows(t *testing.T) {
	town := destination.Record{
		Category:    destination.CategoryTown,
		StayAllowed: []destination.TripType{destination.TripDay, destination.TripOneNight},
	}
	assert.True(t, town.Allows(destination.TripDay))
	assert.True(t, town.Allows(destination.TripOneNight))
	assert.False(t, town.Allows(destination.TripTwoNight))

	island := town
	island.Category = destination.CategoryIsland
	assert.False(t, island.Allows(destination.TripDay), "islands are never day trips")
	assert.True(t, island.Allows(destination.TripOneNight))
}

func TestRecord_RouteDestination(t *testing.T) {
	r := destination.Record{Name: "箱根"}
	assert.Equal(t, "箱根", r.RouteDestination())

	r.MapDestination = "箱根湯本駅"
	assert.Equal(t, "箱根湯本駅", r.RouteDestination())
}

func TestRecord_ReachableFrom(t *testing.T) {
	r := destination.Record{Departures: []string{"東京", "横浜"}}
	assert.True(t, r.ReachableFrom("横浜"))
	assert.False(t, r.ReachableFrom("大阪"))
}

func TestTripType(t *testing.T) {
	assert.False(t, destination.TripDay.Overnight())
	assert.True(t, destination.TripOneNight.Overnight())
	assert.True(t, destination.TripTwoNight.Overnight())

	assert.True(t, destination.TripTwoNight.Valid())
	assert.False(t, destination.TripType("weekend").Valid())
}

func TestMaxTierFor(t *testing.T) {
	assert.Equal(t, 3, destination.MaxTierFor(destination.TripDay))
	assert.Equal(t, 5, destination.MaxTierFor(destination.TripOneNight))
	assert.Equal(t, 5, destination.MaxTierFor(destination.TripTwoNight))
}
