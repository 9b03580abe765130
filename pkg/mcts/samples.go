package mcts

import (
	"math"
	"math/rand"
)

// GetSamples distributes n search-budget samples across len(bias) buckets
// proportionally to bias, for batch MCTS: a caller that wants to schedule
// many rollouts per node traversal without locking the tree on every one.
// Returns integers summing to exactly n whenever n > 0 and bias has a
// positive sum; if n <= 0, bias is empty or bias sums to zero or less, every
// bucket is 0. A bias vector of all ones yields a near-uniform allocation.
func GetSamples(rng *rand.Rand, n int, bias []float64) []int {
	out := make([]int, len(bias))
	if n <= 0 || len(bias) == 0 {
		return out
	}

	var sum float64
	for _, b := range bias {
		sum += b
	}
	if sum <= 0 {
		return out
	}

	allocated := 0
	for i, b := range bias {
		out[i] = int(math.Floor(float64(n) * b / sum))
		allocated += out[i]
	}

	remainder := n - allocated
	if remainder <= 0 {
		return out
	}

	weights := make([]float64, len(bias))
	var wsum float64
	for i, b := range bias {
		w := math.Mod(float64(n)*b, sum)
		weights[i] = w
		wsum += w
	}

	// The smoothing divisor below (10) controls how unevenly the remainder
	// is distributed: a smaller divisor spreads more per draw.
	for remainder > 0 {
		idx := weightedIndex(rng, weights, wsum)

		draw := int(math.Ceil(float64(1+rng.Intn(remainder)) / 10.0))
		if draw < 1 {
			draw = 1
		}
		if draw > remainder {
			draw = remainder
		}

		out[idx] += draw
		remainder -= draw
	}
	return out
}

func weightedIndex(rng *rand.Rand, weights []float64, total float64) int {
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i
		}
	}
	return len(weights) - 1
}
