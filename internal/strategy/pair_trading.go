package strategy

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// LowRiskPairTrading trades the spread between the instrument and its pair leg.
// The two legs are aligned by calendar date before the spread is taken.
type LowRiskPairTrading struct {
	window int
}

func NewLowRiskPairTrading(opts ...Option) *LowRiskPairTrading {
	return &LowRiskPairTrading{window: applyOptions(opts).window}
}

func (s *LowRiskPairTrading) Name() types.StrategyName {
	return types.StrategyLowRiskPairTrading
}

func (s *LowRiskPairTrading) Evaluate(_ context.Context, input Input) types.Signal {
	if len(input.PairPrices) == 0 {
		return types.NeutralSignal(s.Name())
	}

	a, b := types.AlignByDate(input.Prices, input.PairPrices)
	if len(a) < s.window {
		return types.NeutralSignal(s.Name())
	}

	spread := make([]float64, len(a))
	for i := range a {
		spread[i] = a[i].Close - b[i].Close
	}

	mean, std := windowMeanStd(spread, s.window)
	current := last(spread)

	switch {
	case current > mean+std:
		return types.NewSignal(s.Name(), types.DirectionSell, pairTradingReturn)
	case current < mean-std:
		return types.NewSignal(s.Name(), types.DirectionBuy, pairTradingReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}
