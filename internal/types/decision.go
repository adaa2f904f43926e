package types

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"
)

// WeightVector maps each panel member to a positive multiplier.
type WeightVector map[StrategyName]float64

// UniformWeights returns a weight of 1.0 for every panel member.
func UniformWeights() WeightVector {
	weights := make(WeightVector, len(AllStrategies()))
	for _, name := range AllStrategies() {
		weights[name] = 1.0
	}

	return weights
}

// Clone returns an independent copy of the vector.
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v
	}

	return out
}

// Complete reports whether every panel member has a strictly positive weight.
func (w WeightVector) Complete() bool {
	for _, name := range AllStrategies() {
		if weight, ok := w[name]; !ok || !(weight > 0) {
			return false
		}
	}

	return true
}

// FinalSignal is the aggregated recommendation.
type FinalSignal string

const (
	FinalSignalBuy  FinalSignal = "buy"
	FinalSignalSell FinalSignal = "sell"
	FinalSignalHold FinalSignal = "hold"
)

// WeightSource records which step produced the final weights.
type WeightSource string

const (
	WeightSourceRules   WeightSource = "rules"
	WeightSourceAdvisor WeightSource = "advisor"
)

// CompositeDecision is the weighted combination of all panel signals for one instrument.
type CompositeDecision struct {
	Symbol         string                   `yaml:"symbol" json:"symbol"`
	// Start and End bound the price history the decision was computed from.
	Start          time.Time                `yaml:"start" json:"start"`
	End            time.Time                `yaml:"end" json:"end"`
	FinalSignal    FinalSignal              `yaml:"final_signal" json:"final_signal"`
	CompositeScore float64                  `yaml:"composite_score" json:"composite_score"`
	HybridScore    optional.Option[float64] `yaml:"-" json:"hybrid_score"`
	Signals        []Signal                 `yaml:"signals" json:"signals"`
	Weights        WeightVector             `yaml:"weights" json:"weights"`
	RiskMetrics    RiskMetrics              `yaml:"risk_metrics" json:"-"`
	WeightSource   WeightSource             `yaml:"weight_source" json:"weight_source"`
	Timestamp      time.Time                `yaml:"timestamp" json:"timestamp"`
}

// MarshalYAML writes the decision with hybrid_score set to null when no prediction was given.
func (d CompositeDecision) MarshalYAML() (any, error) {
	type plain CompositeDecision

	doc := struct {
		Decision    plain    `yaml:",inline"`
		HybridScore *float64 `yaml:"hybrid_score"`
	}{Decision: plain(d)}

	if d.HybridScore.IsSome() {
		hybrid := d.HybridScore.Unwrap()
		doc.HybridScore = &hybrid
	}

	return doc, nil
}

// Key returns the persistence key (symbol, date range) of the decision.
func (d CompositeDecision) Key() string {
	return fmt.Sprintf("%s_composite_%s_%s", d.Symbol, d.Start.Format("20060102"), d.End.Format("20060102"))
}

// SignalOf returns the signal reported by the named strategy, or the neutral signal when it is missing.
func (d CompositeDecision) SignalOf(name StrategyName) Signal {
	for _, s := range d.Signals {
		if s.Strategy == name {
			return s
		}
	}

	return NeutralSignal(name)
}
