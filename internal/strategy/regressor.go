package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

const scaleEpsilon = 1e-12

// Regressor is a linear autoregressive model of the next price change. It reads the
// previous lags price changes, scaled by Scale, and is never mutated once trained.
type Regressor struct {
	Weights []float64
	Bias    float64
	Scale   float64
}

// TrainRegressor fits the model with full-batch gradient descent on the squared error.
func TrainRegressor(prices []float64, lags, epochs int, learningRate float64) (*Regressor, error) {
	if lags < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "invalid lags %d, must be positive", lags)
	}

	if len(prices)-1-lags < 2 {
		return nil, errors.NewInsufficientDataErrorf(lags+3, len(prices), "", "need at least %d prices to train a %d-lag model", lags+3, lags)
	}

	deltas := diff(prices)
	scale := changeScale(deltas)

	z := make([]float64, len(deltas))
	for i, d := range deltas {
		z[i] = d / scale
	}

	weights := make([]float64, lags)
	grad := make([]float64, lags)
	bias := 0.0
	samples := float64(len(z) - lags)

	for epoch := 0; epoch < epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}

		gradBias := 0.0

		for t := lags; t < len(z); t++ {
			window := z[t-lags : t]
			residual := predictScaled(weights, bias, window) - z[t]

			for j, x := range window {
				grad[j] += residual * x
			}

			gradBias += residual
		}

		for j := range weights {
			weights[j] -= learningRate * 2 * grad[j] / samples
		}

		bias -= learningRate * 2 * gradBias / samples
	}

	return &Regressor{
		Weights: weights,
		Bias:    bias,
		Scale:   scale,
	}, nil
}

// changeScale is the standard deviation of the changes, falling back to their mean
// magnitude for constant changes and to 1 for a flat series.
func changeScale(deltas []float64) float64 {
	if scale := stat.StdDev(deltas, nil); scale > scaleEpsilon && !math.IsNaN(scale) {
		return scale
	}

	total := 0.0
	for _, d := range deltas {
		total += math.Abs(d)
	}

	if scale := total / float64(len(deltas)); scale > scaleEpsilon {
		return scale
	}

	return 1
}

func predictScaled(weights []float64, bias float64, window []float64) float64 {
	out := bias
	for j, x := range window {
		out += weights[j] * x
	}

	return out
}

// Lags returns the number of past price changes the model reads.
func (r *Regressor) Lags() int {
	return len(r.Weights)
}

// Predict returns the price expected after the last element of prices.
func (r *Regressor) Predict(prices []float64) (float64, error) {
	lags := r.Lags()
	if len(prices) < lags+1 {
		return 0, errors.NewInsufficientDataErrorf(lags+1, len(prices), "", "need %d prices to predict", lags+1)
	}

	recent := diff(prices[len(prices)-lags-1:])
	for j := range recent {
		recent[j] /= r.Scale
	}

	return last(prices) + predictScaled(r.Weights, r.Bias, recent)*r.Scale, nil
}
