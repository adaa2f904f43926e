package indicator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// tail returns the last n values.
func tail(values []float64, n int) []float64 {
	return values[len(values)-n:]
}

func mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// sampleStd is the n-1 standard deviation; a single value has no spread.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	return stat.StdDev(values, nil)
}

// ewm is the recursive exponential moving average with alpha = 2/(span+1), seeded with the first value.
func ewm(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// trueRange returns the true range of each bar. The first bar uses high - low.
func trueRange(highs, lows, closes []float64) []float64 {
	tr := make([]float64, len(closes))
	for i := range closes {
		hl := highs[i] - lows[i]
		if i == 0 {
			tr[i] = hl
			continue
		}

		tr[i] = math.Max(hl, math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
	}

	return tr
}

func highest(values []float64) float64 {
	return floats.Max(values)
}

func lowest(values []float64) float64 {
	return floats.Min(values)
}
