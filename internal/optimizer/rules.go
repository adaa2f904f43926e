package optimizer

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Regime multipliers.
const (
	highVolatilityBoost    = 1.2
	highVolatilityDiscount = 0.8
	positiveSentimentBoost = 1.3
	negativeSentimentBoost = 1.1
)

// Rule is one regime condition and the multipliers it applies.
type Rule struct {
	Name        string
	Applies     func(vix optional.Option[float64], sentiment optional.Option[float64]) bool
	Multipliers map[types.StrategyName]float64
}

// Rules returns the regime rules for the configured thresholds. Each rule is applied at most once.
func (c Config) Rules() []Rule {
	return []Rule{
		{
			Name: "high_volatility",
			Applies: func(vix optional.Option[float64], _ optional.Option[float64]) bool {
				return vix.IsSome() && vix.Unwrap() > c.VolatilityIndexThreshold
			},
			Multipliers: map[types.StrategyName]float64{
				types.StrategyRLHFVolatilityArbitrage: highVolatilityBoost,
				types.StrategyQuantumFluctuation:      highVolatilityBoost,
				types.StrategyMeanReversion:           highVolatilityDiscount,
			},
		},
		{
			Name: "positive_sentiment",
			Applies: func(_ optional.Option[float64], sentiment optional.Option[float64]) bool {
				return sentiment.IsSome() && sentiment.Unwrap() > c.SentimentThreshold
			},
			Multipliers: map[types.StrategyName]float64{
				types.StrategyLLMSentimentTrend: positiveSentimentBoost,
				types.StrategySentimentStatArb:  positiveSentimentBoost,
			},
		},
		{
			Name: "negative_sentiment",
			Applies: func(_ optional.Option[float64], sentiment optional.Option[float64]) bool {
				return sentiment.IsSome() && sentiment.Unwrap() < -c.SentimentThreshold
			},
			Multipliers: map[types.StrategyName]float64{
				types.StrategyLLMSentimentTrend: negativeSentimentBoost,
				types.StrategySentimentStatArb:  negativeSentimentBoost,
			},
		},
	}
}

// ApplyRules multiplies the weights by every applicable rule and returns the result with
// the names of the rules that fired. The input vector is not modified.
func ApplyRules(rules []Rule, weights types.WeightVector, vix optional.Option[float64], sentiment optional.Option[float64]) (types.WeightVector, []string) {
	out := weights.Clone()

	var fired []string

	for _, rule := range rules {
		if !rule.Applies(vix, sentiment) {
			continue
		}

		for name, multiplier := range rule.Multipliers {
			if _, ok := out[name]; ok {
				out[name] *= multiplier
			}
		}

		fired = append(fired, rule.Name)
	}

	return out, fired
}

// CompositeScore is the sum of weight times direction over the signals.
func CompositeScore(signals []types.Signal, weights types.WeightVector) float64 {
	score := 0.0
	for _, s := range signals {
		score += weights[s.Strategy] * float64(s.Direction)
	}

	return score
}

// Classify maps a composite score to buy, sell or hold.
func Classify(score float64, threshold float64) types.FinalSignal {
	switch {
	case score > threshold:
		return types.FinalSignalBuy
	case score < -threshold:
		return types.FinalSignalSell
	default:
		return types.FinalSignalHold
	}
}

// HybridScore blends model predictions with the given weights, renormalized over the
// predictions present. Predictions beyond the number of weights are ignored.
func HybridScore(predictions []float64, weights []float64) optional.Option[float64] {
	n := min(len(predictions), len(weights))
	if n == 0 {
		return optional.None[float64]()
	}

	var sum, total float64
	for i := 0; i < n; i++ {
		sum += weights[i] * predictions[i]
		total += weights[i]
	}

	if total <= 0 || math.IsNaN(sum) {
		return optional.None[float64]()
	}

	return optional.Some(sum / total)
}

func validWeights(weights types.WeightVector) bool {
	if !weights.Complete() {
		return false
	}

	for _, w := range weights {
		if math.IsInf(w, 0) || math.IsNaN(w) {
			return false
		}
	}

	return true
}
