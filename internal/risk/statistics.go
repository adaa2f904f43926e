package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// degenerateEpsilon is the spread below which a standard deviation or variance is treated as zero.
const degenerateEpsilon = 1e-12

// Returns computes simple returns between consecutive prices. The result has len(prices)-1 entries
// unless a step starts from a non-positive or non-finite price; such steps have no return and are skipped.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if validStep(prices[i-1], prices[i]) {
			returns = append(returns, prices[i]/prices[i-1]-1)
		}
	}

	return returns
}

// PairedReturns computes the returns of two date-aligned series, skipping a step in both when
// either series cannot produce a return for it.
func PairedReturns(first, second []float64) ([]float64, []float64) {
	n := min(len(first), len(second))
	if n < 2 {
		return nil, nil
	}

	a := make([]float64, 0, n-1)
	b := make([]float64, 0, n-1)

	for i := 1; i < n; i++ {
		if validStep(first[i-1], first[i]) && validStep(second[i-1], second[i]) {
			a = append(a, first[i]/first[i-1]-1)
			b = append(b, second[i]/second[i-1]-1)
		}
	}

	return a, b
}

// invalidSteps counts the steps Returns skips.
func invalidSteps(prices []float64) int {
	count := 0

	for i := 1; i < len(prices); i++ {
		if !validStep(prices[i-1], prices[i]) {
			count++
		}
	}

	return count
}

func validStep(prev, current float64) bool {
	return prev > 0 && finite(prev) && finite(current)
}

// quantile returns the q-quantile of values using linear interpolation between order statistics.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))

	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)

	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// sampleStdDev is the n-1 standard deviation. ok is false for fewer than two values.
func sampleStdDev(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}

	std := stat.StdDev(values, nil)
	if math.IsNaN(std) {
		return 0, false
	}

	return std, true
}

func subtract(values []float64, offset float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - offset
	}

	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
