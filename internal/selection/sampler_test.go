package selection_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/dokoiko/internal/selection"
)

type weighted struct {
	name string
	w    float64
}

func weightOf(it weighted) float64 { return it.w }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestWeightedShuffle_EmptyAndSingle(t *testing.T) {
	rng := seeded(1)

	assert.Empty(t, selection.WeightedShuffle(rng, []weighted(nil), weightOf))

	one := []weighted{{"a", 5}}
	got := selection.WeightedShuffle(rng, one, weightOf)
	assert.Equal(t, one, got)

	got[0].name = "changed"
	assert.Equal(t, "a", one[0].name, "result must be a copy")
}

func TestWeightedShuffle_IsPermutation(t *testing.T) {
	rng := seeded(7)
	items := []weighted{{"a", 1}, {"b", 2}, {"c", 0}, {"d", -1}, {"e", 10}}
	before := slices.Clone(items)

	for range 50 {
		got := selection.WeightedShuffle(rng, items, weightOf)
		require.Len(t, got, len(items))
		assert.ElementsMatch(t, items, got)
	}
	assert.Equal(t, before, items, "input must not be mutated")
}

func TestWeightedShuffle_HeavyItemFirst(t *testing.T) {
	rng := seeded(42)
	items := []weighted{{"light1", 1}, {"heavy", 10}, {"light2", 1}}

	const trials = 20000
	first := 0
	for range trials {
		if selection.WeightedShuffle(rng, items, weightOf)[0].name == "heavy" {
			first++
		}
	}

	assert.InDelta(t, 10.0/12.0, float64(first)/trials, 0.02)
}

func TestWeightedShuffle_EqualWeightsAreUniform(t *testing.T) {
	rng := seeded(3)
	items := []weighted{{"a", 1}, {"b", 1}, {"c", 1}, {"d", 1}}

	const trials = 20000
	counts := map[string]int{}
	for range trials {
		counts[selection.WeightedShuffle(rng, items, weightOf)[0].name]++
	}

	for _, it := range items {
		assert.InDelta(t, 0.25, float64(counts[it.name])/trials, 0.02, it.name)
	}
}

func TestWeightedShuffle_NonPositiveWeightsGoLast(t *testing.T) {
	rng := seeded(9)
	items := []weighted{{"zero", 0}, {"real", 1}, {"negative", -5}}

	for range 200 {
		got := selection.WeightedShuffle(rng, items, weightOf)
		assert.Equal(t, "real", got[0].name)
	}
}

func TestWeightedShuffle_SameSeedSameOrder(t *testing.T) {
	items := []weighted{{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}}

	a := selection.WeightedShuffle(seeded(11), items, weightOf)
	b := selection.WeightedShuffle(seeded(11), items, weightOf)
	assert.Equal(t, a, b)
}
