package strategy

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func pctChange(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}

	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i]/values[i-1] - 1
	}

	return out
}

func diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}

	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}

	return out
}

// rollingStd returns the sample standard deviation of every complete window, oldest first.
func rollingStd(values []float64, window int) []float64 {
	if window < 2 || len(values) < window {
		return nil
	}

	out := make([]float64, 0, len(values)-window+1)
	for end := window; end <= len(values); end++ {
		out = append(out, stat.StdDev(values[end-window:end], nil))
	}

	return out
}

// windowMeanStd returns the mean and sample standard deviation of the last window values.
func windowMeanStd(values []float64, window int) (float64, float64) {
	return stat.MeanStdDev(values[len(values)-window:], nil)
}

func windowMean(values []float64, window int) float64 {
	return stat.Mean(values[len(values)-window:], nil)
}

// ewmGap is the last value minus its exponentially weighted mean, with weights (1-alpha)^i
// normalized over the observed history and alpha = 2/(span+1). Working on deviations from
// the last value keeps a constant series at exactly zero.
func ewmGap(values []float64, span int) float64 {
	alpha := 2.0 / (float64(span) + 1)
	decay := 1 - alpha
	latest := last(values)

	var num, den float64

	weight := 1.0
	for i := len(values) - 1; i >= 0; i-- {
		num += weight * (latest - values[i])
		den += weight
		weight *= decay
	}

	return num / den
}

func last(values []float64) float64 {
	return values[len(values)-1]
}

func maxOf(values []float64) float64 {
	return floats.Max(values)
}

func minOf(values []float64) float64 {
	return floats.Min(values)
}
