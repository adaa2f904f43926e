package strategy

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// MomentumBreakout buys when the last close breaks above the highest close of the
// preceding window and sells when it breaks below the lowest.
type MomentumBreakout struct {
	window int
}

func NewMomentumBreakout(opts ...Option) *MomentumBreakout {
	return &MomentumBreakout{window: applyOptions(opts).window}
}

func (s *MomentumBreakout) Name() types.StrategyName {
	return types.StrategyMomentumBreakout
}

func (s *MomentumBreakout) Evaluate(_ context.Context, input Input) types.Signal {
	closes := types.Closes(input.Prices)
	if len(closes) < s.window+1 {
		return types.NeutralSignal(s.Name())
	}

	price := last(closes)
	prior := closes[len(closes)-1-s.window : len(closes)-1]

	switch {
	case price > maxOf(prior):
		return types.NewSignal(s.Name(), types.DirectionBuy, momentumBreakoutReturn)
	case price < minOf(prior):
		return types.NewSignal(s.Name(), types.DirectionSell, momentumBreakoutReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}

// MeanReversion buys below one standard deviation under the window mean and sells
// above one standard deviation over it.
type MeanReversion struct {
	window int
}

func NewMeanReversion(opts ...Option) *MeanReversion {
	return &MeanReversion{window: applyOptions(opts).window}
}

func (s *MeanReversion) Name() types.StrategyName {
	return types.StrategyMeanReversion
}

func (s *MeanReversion) Evaluate(_ context.Context, input Input) types.Signal {
	closes := types.Closes(input.Prices)
	if len(closes) < s.window {
		return types.NeutralSignal(s.Name())
	}

	mean, std := windowMeanStd(closes, s.window)
	price := last(closes)

	switch {
	case price < mean-std:
		return types.NewSignal(s.Name(), types.DirectionBuy, meanReversionReturn)
	case price > mean+std:
		return types.NewSignal(s.Name(), types.DirectionSell, meanReversionReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}

// BrownianDiffusion compares the last close with its exponentially smoothed level.
type BrownianDiffusion struct {
	window int
}

func NewBrownianDiffusion(opts ...Option) *BrownianDiffusion {
	return &BrownianDiffusion{window: applyOptions(opts).window}
}

func (s *BrownianDiffusion) Name() types.StrategyName {
	return types.StrategyBrownianDiffusion
}

func (s *BrownianDiffusion) Evaluate(_ context.Context, input Input) types.Signal {
	closes := types.Closes(input.Prices)
	if len(closes) < s.window {
		return types.NeutralSignal(s.Name())
	}

	gap := ewmGap(closes, s.window)

	switch {
	case gap > 0:
		return types.NewSignal(s.Name(), types.DirectionBuy, brownianDiffusionReturn)
	case gap < 0:
		return types.NewSignal(s.Name(), types.DirectionSell, brownianDiffusionReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}
