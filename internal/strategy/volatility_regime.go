package strategy

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"gonum.org/v1/gonum/stat"
)

// volatilityRegime returns the latest rolling return volatility and the mean of the rolling series.
func volatilityRegime(closes []float64, window int) (current float64, average float64, ok bool) {
	vol := rollingStd(pctChange(closes), window)
	if len(vol) == 0 {
		return 0, 0, false
	}

	return last(vol), stat.Mean(vol, nil), true
}

// ChaosPhaseTransition stays out of chaotic regimes and otherwise follows the rolling mean price change.
type ChaosPhaseTransition struct {
	window int
}

func NewChaosPhaseTransition(opts ...Option) *ChaosPhaseTransition {
	return &ChaosPhaseTransition{window: applyOptions(opts).window}
}

func (s *ChaosPhaseTransition) Name() types.StrategyName {
	return types.StrategyChaosPhaseTransition
}

func (s *ChaosPhaseTransition) Evaluate(_ context.Context, input Input) types.Signal {
	closes := types.Closes(input.Prices)
	if len(closes) < s.window+1 {
		return types.NeutralSignal(s.Name())
	}

	current, average, ok := volatilityRegime(closes, s.window)
	if !ok {
		return types.NeutralSignal(s.Name())
	}

	if current > chaosVolatilityMultiplier*average {
		return types.NeutralSignal(s.Name())
	}

	if windowMean(diff(closes), s.window) > 0 {
		return types.NewSignal(s.Name(), types.DirectionBuy, chaosPhaseReturn)
	}

	return types.NewSignal(s.Name(), types.DirectionSell, chaosPhaseReturn)
}

// RLHFVolatilityArbitrage buys volatility expansions and sells contractions relative to the regime mean.
type RLHFVolatilityArbitrage struct {
	window int
}

func NewRLHFVolatilityArbitrage(opts ...Option) *RLHFVolatilityArbitrage {
	return &RLHFVolatilityArbitrage{window: applyOptions(opts).window}
}

func (s *RLHFVolatilityArbitrage) Name() types.StrategyName {
	return types.StrategyRLHFVolatilityArbitrage
}

func (s *RLHFVolatilityArbitrage) Evaluate(_ context.Context, input Input) types.Signal {
	closes := types.Closes(input.Prices)
	if len(closes) < s.window+1 {
		return types.NeutralSignal(s.Name())
	}

	current, average, ok := volatilityRegime(closes, s.window)
	if !ok {
		return types.NeutralSignal(s.Name())
	}

	switch {
	case current > volatilityHighMultiplier*average:
		return types.NewSignal(s.Name(), types.DirectionBuy, volatilityArbitrageReturn)
	case current < volatilityLowMultiplier*average:
		return types.NewSignal(s.Name(), types.DirectionSell, volatilityArbitrageReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}
