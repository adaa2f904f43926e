package types

import "fmt"

// StrategyName identifies one member of the fixed strategy panel.
type StrategyName string

const (
	StrategyMomentumBreakout        StrategyName = "momentum_breakout"
	StrategyMeanReversion           StrategyName = "mean_reversion"
	StrategyChaosPhaseTransition    StrategyName = "chaos_phase_transition"
	StrategyLLMSentimentTrend       StrategyName = "llm_sentiment_trend"
	StrategyRLHFVolatilityArbitrage StrategyName = "rlhf_volatility_arbitrage"
	StrategyBrownianDiffusion       StrategyName = "brownian_diffusion"
	StrategyQuantumFluctuation      StrategyName = "quantum_fluctuation"
	StrategyLowRiskPairTrading      StrategyName = "low_risk_pair_trading"
	StrategyLSTMMomentum            StrategyName = "lstm_momentum"
	StrategySentimentStatArb        StrategyName = "sentiment_stat_arb"
)

// AllStrategies returns the ten panel members in fixed panel order.
func AllStrategies() []StrategyName {
	return []StrategyName{
		StrategyMomentumBreakout,
		StrategyMeanReversion,
		StrategyChaosPhaseTransition,
		StrategyLLMSentimentTrend,
		StrategyRLHFVolatilityArbitrage,
		StrategyBrownianDiffusion,
		StrategyQuantumFluctuation,
		StrategyLowRiskPairTrading,
		StrategyLSTMMomentum,
		StrategySentimentStatArb,
	}
}

// IsValid reports whether the name belongs to the panel.
func (s StrategyName) IsValid() bool {
	for _, name := range AllStrategies() {
		if name == s {
			return true
		}
	}

	return false
}

// ParseStrategyName converts a raw string into a panel member.
func ParseStrategyName(raw string) (StrategyName, error) {
	name := StrategyName(raw)
	if !name.IsValid() {
		return "", fmt.Errorf("unknown strategy %q", raw)
	}

	return name, nil
}

// Direction is the trade direction recommended by a strategy.
type Direction int

const (
	// DirectionSell recommends reducing the position
	DirectionSell Direction = -1
	// DirectionHold recommends no action
	DirectionHold Direction = 0
	// DirectionBuy recommends increasing the position
	DirectionBuy Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirectionBuy:
		return "buy"
	case DirectionSell:
		return "sell"
	default:
		return "hold"
	}
}

// Signal is the output of one strategy evaluation.
type Signal struct {
	// Strategy is the panel member that produced the signal
	Strategy StrategyName `yaml:"strategy" json:"strategy"`
	// Direction is -1, 0 or +1
	Direction Direction `yaml:"direction" json:"direction"`
	// ExpectedReturn carries the same sign as Direction and is 0 when Direction is 0
	ExpectedReturn float64 `yaml:"expected_return" json:"expected_return"`
}

// NeutralSignal is the (0, 0.0) signal a strategy reports when it cannot decide.
func NeutralSignal(strategy StrategyName) Signal {
	return Signal{
		Strategy:       strategy,
		Direction:      DirectionHold,
		ExpectedReturn: 0,
	}
}

// NewSignal builds a signal whose expected return follows the sign of the direction.
func NewSignal(strategy StrategyName, direction Direction, magnitude float64) Signal {
	if direction == DirectionHold {
		return NeutralSignal(strategy)
	}

	return Signal{
		Strategy:       strategy,
		Direction:      direction,
		ExpectedReturn: float64(direction) * magnitude,
	}
}

// IsNeutral reports whether the signal carries no direction.
func (s Signal) IsNeutral() bool {
	return s.Direction == DirectionHold
}
