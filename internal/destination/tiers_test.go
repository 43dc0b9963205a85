package destination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neexbeast/dokoiko/internal/destination"
)

func TestTierLabel(t *testing.T) {
	tests := map[int]string{
		0: "",
		1: "～1時間",
		3: "～4時間",
		5: "6時間以上",
		6: "",
	}
	for tier, want := range tests {
		assert.Equal(t, want, destination.TierLabel(tier), "tier %d", tier)
	}
}

func TestTiers(t *testing.T) {
	tiers := destination.Tiers()
	assert.Len(t, tiers, destination.MaxTier)

	for i, ti := range tiers {
		assert.Equal(t, i+1, ti.Tier)
		assert.NotEmpty(t, ti.Label)
		assert.Equal(t, ti.Tier <= destination.DayTripMaxTier, ti.DayTrip)
	}
}
