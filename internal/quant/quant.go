// Package quant ties the price providers, risk calculator, strategy panel,
// optimizer, backtest engine and report sinks together.
package quant

import (
	"context"
	"io"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/advisor"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/cache"
	"github.com/rxtech-lab/argo-quant/internal/indicator"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
	"github.com/rxtech-lab/argo-quant/internal/optimizer"
	"github.com/rxtech-lab/argo-quant/internal/report"
	"github.com/rxtech-lab/argo-quant/internal/risk"
	"github.com/rxtech-lab/argo-quant/internal/strategy"
	"github.com/rxtech-lab/argo-quant/internal/trace"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// minDecisionBars is the shortest history a decision is computed from.
const minDecisionBars = 2

// Options are the tunables of a Service.
type Options struct {
	Risk      risk.Config
	Strategy  strategy.Config
	Optimizer optimizer.Config
	Backtest  engine_v1.BacktestEngineV1Config
	// BenchmarkSymbol feeds Beta, JensenAlpha, Treynor and RiskParity.
	BenchmarkSymbol string
	// PairSymbol is the second leg of pair trading. The benchmark is used when empty.
	PairSymbol string
}

// Dependencies are the external collaborators of a Service. Only Prices is required.
type Dependencies struct {
	Prices          marketdata.PriceProvider
	Sentiment       marketdata.SentimentProvider
	VolatilityIndex marketdata.VolatilityIndexProvider
	Advisor         advisor.Advisor
	Sink            report.ReportSink
	// Closers are released by Close after the sink.
	Closers []io.Closer
}

// Request selects the instrument and the price history of a decision.
type Request struct {
	Symbol string
	Start  time.Time
	End    time.Time
	// Sentiment overrides the sentiment provider when set.
	Sentiment optional.Option[float64]
	// Predictions are up to three model forecasts blended into the hybrid score.
	Predictions []float64
}

// BacktestRequest selects the instrument, period and strategies of a backtest.
type BacktestRequest struct {
	Symbol string
	Start  time.Time
	End    time.Time
	// Strategies defaults to the whole panel when empty.
	Strategies []types.StrategyName
	Sentiment  optional.Option[float64]
}

type Service struct {
	options    Options
	deps       Dependencies
	calculator *risk.Calculator
	indicators *indicator.Library
	panel      *strategy.Panel
	optimizer  *optimizer.Optimizer
	log        *logger.Logger
}

// NewService creates a service over the given collaborators.
func NewService(options Options, deps Dependencies, log *logger.Logger) (*Service, error) {
	if deps.Prices == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "a price provider is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if deps.Sink == nil {
		deps.Sink = report.NewNopSink()
	}

	models := cache.NewModelCache[*strategy.Regressor]()

	return &Service{
		options:    options,
		deps:       deps,
		calculator: risk.NewCalculator(options.Risk, log.Named("risk")),
		indicators: indicator.NewLibrary(indicator.NewDefaultIndicatorRegistry(), log.Named("indicator")),
		panel:      strategy.NewDefaultPanel(options.Strategy, models, log.Named("strategy")),
		optimizer:  optimizer.NewOptimizer(options.Optimizer, deps.Advisor, log.Named("optimizer")),
		log:        log,
	}, nil
}

// RiskMetrics computes the metrics of symbol over the period against the benchmark.
func (s *Service) RiskMetrics(ctx context.Context, symbol string, start time.Time, end time.Time) (types.RiskMetrics, error) {
	ctx, span := trace.StartSpan(ctx, "quant.risk_metrics")
	defer span.End()

	prices, err := s.loadPrices(ctx, symbol, start, end)
	if err != nil {
		return types.RiskMetrics{}, err
	}

	benchmark := s.optionalSeries(ctx, s.options.BenchmarkSymbol, start, end)

	return s.calculator.Calculate(prices, benchmark), nil
}

// Indicators calculates the named indicators, or every registered one when names is empty.
// Unknown names and short histories yield the all-zero value.
func (s *Service) Indicators(ctx context.Context, symbol string, start time.Time, end time.Time, names []string) (map[string]types.IndicatorValue, error) {
	prices, err := s.loadPrices(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	values := make(map[string]types.IndicatorValue)

	if len(names) == 0 {
		for name, value := range s.indicators.CalculateAll(prices) {
			values[string(name)] = value
		}

		return values, nil
	}

	for _, name := range names {
		values[name] = s.indicators.Calculate(name, prices)
	}

	return values, nil
}

// Decide evaluates the panel on the history and combines the signals into a decision.
// The decision is handed to the report sink; a sink failure is logged and does not fail the call.
func (s *Service) Decide(ctx context.Context, request Request) (*types.CompositeDecision, error) {
	ctx, span := trace.StartSpan(ctx, "quant.decide")
	defer span.End()

	span.SetAttributes(attribute.String("symbol", request.Symbol))

	prices, err := s.loadPrices(ctx, request.Symbol, request.Start, request.End)
	if err != nil {
		return nil, err
	}

	if len(prices) < minDecisionBars {
		return nil, errors.NewInsufficientDataErrorf(minDecisionBars, len(prices), request.Symbol,
			"decision needs at least %d bars for %s, got %d", minDecisionBars, request.Symbol, len(prices))
	}

	benchmark := s.optionalSeries(ctx, s.options.BenchmarkSymbol, request.Start, request.End)
	metrics := s.calculator.Calculate(prices, benchmark)

	pair := benchmark
	if s.options.PairSymbol != "" {
		pair = s.optionalSeries(ctx, s.options.PairSymbol, request.Start, request.End)
	}

	last := prices[len(prices)-1].Time
	sentiment := s.sentiment(ctx, request.Symbol, request.Sentiment, last)

	signals := s.panel.Evaluate(ctx, strategy.Input{
		Symbol:     request.Symbol,
		Prices:     prices,
		Sentiment:  sentiment,
		PairPrices: pair,
	})

	decision, err := s.optimizer.Optimize(ctx, optimizer.Inputs{
		Symbol:          request.Symbol,
		Signals:         signals,
		RiskMetrics:     metrics,
		VolatilityIndex: s.volatilityIndex(ctx, last),
		Sentiment:       sentiment,
		Predictions:     request.Predictions,
	})
	if err != nil {
		return nil, err
	}

	decision.Start = request.Start
	decision.End = request.End

	if err := s.deps.Sink.WriteDecision(ctx, decision); err != nil {
		s.log.Error("Failed to persist decision",
			zap.String("symbol", decision.Symbol),
			zap.Error(err),
		)
	}

	s.log.Info("Decision computed",
		zap.String("symbol", decision.Symbol),
		zap.String("final_signal", string(decision.FinalSignal)),
		zap.Float64("composite_score", decision.CompositeScore),
		zap.String("weight_source", string(decision.WeightSource)),
	)

	return &decision, nil
}

// Backtest simulates the selected strategies over the period and returns one report per strategy.
// Missing or too short price data returns a nil result and a coded error.
func (s *Service) Backtest(ctx context.Context, request BacktestRequest, callbacks engine.LifecycleCallbacks) ([]types.BacktestReport, error) {
	// A private model cache keeps lstm_momentum from predicting with a model trained past the current bar.
	panel := strategy.NewDefaultPanel(s.options.Strategy, cache.NewModelCache[*strategy.Regressor](), s.log.Named("strategy"))

	strategies, err := selectStrategies(panel, request.Strategies)
	if err != nil {
		return nil, err
	}

	backtest, err := engine_v1.NewBacktestEngineV1WithConfig(s.options.Backtest, s.log.Named("backtest"))
	if err != nil {
		return nil, err
	}

	if err := backtest.SetDataSource(s.deps.Prices); err != nil {
		return nil, err
	}

	for _, st := range strategies {
		if err := backtest.LoadStrategy(st); err != nil {
			return nil, err
		}
	}

	sentiment := s.sentiment(ctx, request.Symbol, request.Sentiment, request.End)

	reports, err := backtest.Run(ctx, engine.Request{
		Symbol:     request.Symbol,
		Start:      request.Start,
		End:        request.End,
		PairSymbol: s.pairSymbol(),
		Sentiment:  sentiment,
	}, callbacks)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Sink.WriteBacktestReports(ctx, reports); err != nil {
		s.log.Error("Failed to persist backtest reports",
			zap.String("symbol", request.Symbol),
			zap.Error(err),
		)
	}

	return reports, nil
}

// Close releases the sink and every closer, returning the first error.
func (s *Service) Close() error {
	var first error

	if err := s.deps.Sink.Close(); err != nil {
		first = err
	}

	for _, c := range s.deps.Closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

func selectStrategies(panel *strategy.Panel, names []types.StrategyName) ([]strategy.Strategy, error) {
	if len(names) == 0 {
		return panel.Strategies(), nil
	}

	selected := make([]strategy.Strategy, 0, len(names))

	for _, name := range names {
		st, ok := panel.Strategy(name)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown strategy %q", name)
		}

		selected = append(selected, st)
	}

	return selected, nil
}

func (s *Service) pairSymbol() string {
	if s.options.PairSymbol != "" {
		return s.options.PairSymbol
	}

	return s.options.BenchmarkSymbol
}

func (s *Service) loadPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	if !end.After(start) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "end %s must be after start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	prices, err := s.deps.Prices.GetPrices(ctx, symbol, start, end)
	if err != nil {
		s.log.Error("Price history unavailable",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return nil, err
	}

	if len(prices) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no price data for %s", symbol)
	}

	return prices, nil
}

// optionalSeries reads a secondary series. A failure only degrades the result.
func (s *Service) optionalSeries(ctx context.Context, symbol string, start time.Time, end time.Time) []types.MarketData {
	if symbol == "" {
		return nil
	}

	prices, err := s.deps.Prices.GetPrices(ctx, symbol, start, end)
	if err != nil {
		s.log.Warn("Secondary series unavailable",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return nil
	}

	return prices
}

func (s *Service) sentiment(ctx context.Context, symbol string, override optional.Option[float64], date time.Time) optional.Option[float64] {
	if override.IsSome() {
		return optional.Some(marketdata.ClampSentiment(override.Unwrap()))
	}

	return marketdata.LookupSentiment(ctx, s.deps.Sentiment, symbol, date)
}

func (s *Service) volatilityIndex(ctx context.Context, date time.Time) optional.Option[float64] {
	if s.deps.VolatilityIndex == nil {
		return optional.None[float64]()
	}

	level, err := s.deps.VolatilityIndex.GetVolatilityIndex(ctx, date)
	if err != nil {
		s.log.Warn("Volatility index unavailable", zap.Error(err))

		return optional.None[float64]()
	}

	return optional.Some(level)
}
