package engine

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// runHistory is the data shared by every strategy run of one backtest.
type runHistory struct {
	bars    []types.MarketData
	pair    []types.MarketData
	metrics types.RiskMetrics
}

// applyConfigWindow lets the configured start and end times override the request.
func (b *BacktestEngineV1) applyConfigWindow(request engine.Request) engine.Request {
	if b.config.StartTime.IsSome() {
		request.Start = b.config.StartTime.Unwrap()
	}

	if b.config.EndTime.IsSome() {
		request.End = b.config.EndTime.Unwrap()
	}

	return request
}

// loadHistory reads the instrument, the optional pair leg and benchmark, and computes the
// risk metrics once over the whole window.
func (b *BacktestEngineV1) loadHistory(ctx context.Context, request engine.Request) (runHistory, error) {
	bars, err := b.datasource.GetPrices(ctx, request.Symbol, request.Start, request.End)
	if err != nil {
		return runHistory{}, errors.Wrapf(errors.ErrCodeBacktestNoData, err, "no price data for %s", request.Symbol)
	}

	if len(bars) < minBars {
		return runHistory{}, errors.NewInsufficientDataErrorf(minBars, len(bars), request.Symbol,
			"backtest needs at least %d bars for %s, got %d", minBars, request.Symbol, len(bars))
	}

	history := runHistory{bars: bars}

	if request.PairSymbol != "" {
		history.pair = b.optionalSeries(ctx, request.PairSymbol, request)
	}

	var benchmark []types.MarketData
	if b.config.BenchmarkSymbol != "" {
		benchmark = b.optionalSeries(ctx, b.config.BenchmarkSymbol, request)
	}

	history.metrics = b.calculator.Calculate(bars, benchmark)

	return history, nil
}

// optionalSeries reads a secondary series. Failures only degrade the run and are logged.
func (b *BacktestEngineV1) optionalSeries(ctx context.Context, symbol string, request engine.Request) []types.MarketData {
	bars, err := b.datasource.GetPrices(ctx, symbol, request.Start, request.End)
	if err != nil {
		b.log.Warn("Secondary series unavailable",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return nil
	}

	return bars
}

func buyAndHoldReturn(bars []types.MarketData) float64 {
	first := bars[0].Close
	if first <= 0 {
		return 0
	}

	return bars[len(bars)-1].Close/first - 1
}
