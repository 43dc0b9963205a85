package selection

import "math/rand/v2"

const minWeight = 1e-6

// WeightedShuffle returns a permutation of items in which each position is
// filled by drawing one of the remaining items with probability proportional
// to its weight. Weights below or equal to zero count as a small positive
// value. items is not modified.
func WeightedShuffle[T any](rng *rand.Rand, items []T, weight func(T) float64) []T {
	out := make([]T, 0, len(items))
	if len(items) <= 1 {
		return append(out, items...)
	}

	remaining := make([]T, len(items))
	copy(remaining, items)
	weights := make([]float64, len(items))
	for i, it := range items {
		w := weight(it)
		if w <= 0 {
			w = minWeight
		}
		weights[i] = w
	}

	for len(remaining) > 0 {
		i := pick(rng, weights)
		out = append(out, remaining[i])

		last := len(remaining) - 1
		remaining[i], weights[i] = remaining[last], weights[last]
		remaining, weights = remaining[:last], weights[:last]
	}

	return out
}

// pick walks the cumulative weights and returns the index the roulette lands on.
func pick(rng *rand.Rand, weights []float64) int {
	if len(weights) == 1 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	// Float drift can leave target just past the last boundary.
	return len(weights) - 1
}
