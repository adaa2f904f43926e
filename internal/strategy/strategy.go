// Package strategy implements the fixed panel of ten signal strategies.
//
// Every strategy maps a price series, an optional sentiment score and an
// optional pair series to a (direction, expected return) signal. Strategies
// never fail: short or unusable input yields the neutral signal.
package strategy

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Input is the data one strategy evaluation sees.
type Input struct {
	Symbol string
	// Prices is ordered by increasing time and contains no bar after the evaluation point.
	Prices []types.MarketData
	// Sentiment is a score in [-1, 1] when available.
	Sentiment optional.Option[float64]
	// PairPrices is the second leg of pair trading.
	PairPrices []types.MarketData
}

// Copy returns an input that shares no backing arrays with the receiver.
func (in Input) Copy() Input {
	return Input{
		Symbol:     in.Symbol,
		Prices:     types.CopySeries(in.Prices),
		Sentiment:  in.Sentiment,
		PairPrices: types.CopySeries(in.PairPrices),
	}
}

// Strategy is one member of the panel.
type Strategy interface {
	Name() types.StrategyName
	// Evaluate returns the signal at the last bar of the input.
	Evaluate(ctx context.Context, input Input) types.Signal
}

// Expected return magnitudes per strategy.
const (
	momentumBreakoutReturn     = 0.02
	meanReversionReturn        = 0.015
	chaosPhaseReturn           = 0.01
	sentimentTrendReturn       = 0.025
	volatilityArbitrageReturn  = 0.01
	brownianDiffusionReturn    = 0.015
	quantumFluctuationReturn   = 0.01
	pairTradingReturn          = 0.01
	lstmMomentumReturn         = 0.02
	sentimentStatArbReturn     = 0.015
	sentimentStrongThreshold   = 0.5
	chaosVolatilityMultiplier  = 1.5
	volatilityHighMultiplier   = 1.2
	volatilityLowMultiplier    = 0.8
	quantumSigmaThreshold      = 1.0
)
