package strategy

import (
	"context"
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-quant/internal/cache"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Panel evaluates a fixed set of strategies over the same input.
type Panel struct {
	strategies  []Strategy
	parallelism int
	log         *logger.Logger
}

// NewPanel creates a panel over the given strategies, evaluated in that order.
func NewPanel(log *logger.Logger, strategies ...Strategy) *Panel {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Panel{
		strategies: strategies,
		log:        log,
	}
}

// NewDefaultPanel creates the ten-strategy panel. The models cache is shared by
// lstm_momentum and may be nil to use a private cache.
func NewDefaultPanel(config Config, models *cache.ModelCache[*Regressor], log *logger.Logger) *Panel {
	window := WithWindow(config.Window)

	panel := NewPanel(log,
		NewMomentumBreakout(window),
		NewMeanReversion(window),
		NewChaosPhaseTransition(window),
		NewLLMSentimentTrend(WithWindow(config.TrendWindow)),
		NewRLHFVolatilityArbitrage(window),
		NewBrownianDiffusion(window),
		NewQuantumFluctuation(config.Seed),
		NewLowRiskPairTrading(window),
		NewLSTMMomentum(config, models, log),
		NewSentimentStatArb(window),
	)
	panel.parallelism = config.Parallelism

	return panel
}

// Strategies returns the panel members in evaluation order.
func (p *Panel) Strategies() []Strategy {
	return p.strategies
}

// Strategy looks up a panel member by name.
func (p *Panel) Strategy(name types.StrategyName) (Strategy, bool) {
	for _, s := range p.strategies {
		if s.Name() == name {
			return s, true
		}
	}

	return nil, false
}

// Evaluate runs every strategy concurrently and returns one signal per strategy in panel order.
// Each strategy receives its own copy of the input. A strategy that panics or returns a
// malformed signal contributes the neutral signal instead.
func (p *Panel) Evaluate(ctx context.Context, input Input) []types.Signal {
	signals := make([]types.Signal, len(p.strategies))

	g, ctx := errgroup.WithContext(ctx)
	if p.parallelism > 0 {
		g.SetLimit(p.parallelism)
	}

	for i, s := range p.strategies {
		i, s := i, s
		g.Go(func() error {
			signals[i] = p.evaluateOne(ctx, s, input.Copy())

			return nil
		})
	}

	// evaluateOne never returns an error
	_ = g.Wait()

	return signals
}

// EvaluateOne runs a single strategy with the same isolation as Evaluate.
func (p *Panel) EvaluateOne(ctx context.Context, s Strategy, input Input) types.Signal {
	return p.evaluateOne(ctx, s, input.Copy())
}

func (p *Panel) evaluateOne(ctx context.Context, s Strategy, input Input) (signal types.Signal) {
	name := s.Name()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Strategy panicked",
				zap.String("strategy", string(name)),
				zap.String("symbol", input.Symbol),
				zap.String("panic", fmt.Sprint(r)),
			)

			signal = types.NeutralSignal(name)
		}
	}()

	if ctx.Err() != nil {
		return types.NeutralSignal(name)
	}

	signal = s.Evaluate(ctx, input)
	signal.Strategy = name

	if !validSignal(signal) {
		p.log.Warn("Strategy returned an invalid signal",
			zap.String("strategy", string(name)),
			zap.Int("direction", int(signal.Direction)),
			zap.Float64("expected_return", signal.ExpectedReturn),
		)

		return types.NeutralSignal(name)
	}

	return signal
}

func validSignal(signal types.Signal) bool {
	switch signal.Direction {
	case types.DirectionBuy, types.DirectionSell, types.DirectionHold:
	default:
		return false
	}

	return !math.IsNaN(signal.ExpectedReturn) && !math.IsInf(signal.ExpectedReturn, 0)
}
