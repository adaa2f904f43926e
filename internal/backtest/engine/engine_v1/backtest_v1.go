package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
	"github.com/rxtech-lab/argo-quant/internal/risk"
	"github.com/rxtech-lab/argo-quant/internal/strategy"
	"github.com/rxtech-lab/argo-quant/internal/trace"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// minBars is the shortest history a run can trade: one bar to start from and one to act on.
const minBars = 2

type BacktestEngineV1 struct {
	config     BacktestEngineV1Config
	strategies []strategy.Strategy
	log        *logger.Logger
	calculator *risk.Calculator
	datasource marketdata.PriceProvider
	commission commission_fee.CommissionFee
}

func NewBacktestEngineV1(log *logger.Logger) engine.Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	config := EmptyConfig()

	return &BacktestEngineV1{
		config:     config,
		strategies: nil,
		log:        log,
		calculator: risk.NewCalculator(config.Risk, log),
		datasource: nil,
		commission: commission_fee.GetCommissionFeeHandler(config.Broker),
	}
}

// NewBacktestEngineV1WithConfig creates an engine and applies an already parsed configuration.
func NewBacktestEngineV1WithConfig(config BacktestEngineV1Config, log *logger.Logger) (engine.Engine, error) {
	e := NewBacktestEngineV1(log).(*BacktestEngineV1)
	if err := e.InitializeWithConfig(config); err != nil {
		return nil, err
	}

	return e, nil
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	parsed := EmptyConfig()
	if err := yaml.Unmarshal([]byte(config), &parsed); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	return b.InitializeWithConfig(parsed)
}

// InitializeWithConfig applies an already parsed configuration.
func (b *BacktestEngineV1) InitializeWithConfig(config BacktestEngineV1Config) error {
	if config.InitialCapital <= 0 {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "initial capital must be positive, got %v", config.InitialCapital)
	}

	b.config = config
	b.calculator = risk.NewCalculator(config.Risk, b.log)
	b.commission = commission_fee.GetCommissionFeeHandler(config.Broker)

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", config.InitialCapital),
		zap.String("broker", string(config.Broker)),
	)

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(s strategy.Strategy) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "strategy is nil")
	}

	b.strategies = append(b.strategies, s)
	b.log.Debug("Strategy loaded",
		zap.String("strategy", string(s.Name())),
		zap.Int("total_strategies", len(b.strategies)),
	)

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(provider marketdata.PriceProvider) error {
	b.datasource = provider

	return nil
}

func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, request engine.Request, callbacks engine.LifecycleCallbacks) (reports []types.BacktestReport, err error) {
	ctx, span := trace.StartSpan(ctx, "backtest.run")
	defer span.End()

	span.SetAttributes(
		attribute.String("symbol", request.Symbol),
		attribute.Int("strategies", len(b.strategies)),
	)

	if callbacks.OnBacktestEnd != nil {
		defer func() {
			(*callbacks.OnBacktestEnd)(err)
		}()
	}

	if err := b.preRunCheck(request); err != nil {
		return nil, err
	}

	request = b.applyConfigWindow(request)

	history, err := b.loadHistory(ctx, request)
	if err != nil {
		b.log.Error("Backtest aborted",
			zap.String("symbol", request.Symbol),
			zap.Error(err),
		)

		return nil, err
	}

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(len(b.strategies)); err != nil {
			return nil, err
		}
	}

	panel := strategy.NewPanel(b.log, b.strategies...)
	reports = make([]types.BacktestReport, 0, len(b.strategies))

	for i, s := range b.strategies {
		if callbacks.OnStrategyStart != nil {
			if err := (*callbacks.OnStrategyStart)(i, s.Name(), len(b.strategies)); err != nil {
				return nil, err
			}
		}

		report, err := b.runStrategy(ctx, panel, s, request, history, callbacks)
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)

		if callbacks.OnStrategyEnd != nil {
			(*callbacks.OnStrategyEnd)(i, s.Name())
		}
	}

	return reports, nil
}

// runStrategy simulates one strategy over the history. The signal at bar i only sees bars 0..i.
func (b *BacktestEngineV1) runStrategy(
	ctx context.Context,
	panel *strategy.Panel,
	s strategy.Strategy,
	request engine.Request,
	history runHistory,
	callbacks engine.LifecycleCallbacks,
) (types.BacktestReport, error) {
	bars := history.bars
	runID := uuid.New().String()

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, request.Symbol, s.Name(), len(bars)); err != nil {
			return types.BacktestReport{}, err
		}
	}

	state := NewBacktestState(b.config.InitialCapital)
	trading := NewBacktestTrading(state, b.commission)

	hasStopLoss := history.metrics.StopLoss.IsSome()
	stopLoss := history.metrics.StopLoss.TakeOr(0)
	positionSize := history.metrics.PositionSize()

	if positionSize == 0 {
		b.log.Warn("Position size is zero, the run will not trade",
			zap.String("symbol", request.Symbol),
			zap.String("strategy", string(s.Name())),
		)
	}

	state.Mark(bars[0].Close)

	pairEnd := 0

	for i := 1; i < len(bars); i++ {
		if err := ctx.Err(); err != nil {
			return types.BacktestReport{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", err)
		}

		bar := bars[i]

		for pairEnd < len(history.pair) && !history.pair[pairEnd].Time.After(bar.Time) {
			pairEnd++
		}

		switch {
		case hasStopLoss && state.Shares() > 0 && bar.Close < stopLoss:
			trading.Liquidate(bar.Close, bar.Time)
		case positionSize > 0:
			signal := panel.EvaluateOne(ctx, s, strategy.Input{
				Symbol:     request.Symbol,
				Prices:     bars[:i+1],
				Sentiment:  request.Sentiment,
				PairPrices: history.pair[:pairEnd],
			})

			switch signal.Direction {
			case types.DirectionBuy:
				trading.Buy(bar.Close, positionSize, bar.Time)
			case types.DirectionSell:
				trading.Sell(bar.Close, positionSize, bar.Time)
			}
		}

		state.Mark(bar.Close)

		if callbacks.OnProcessData != nil {
			if err := (*callbacks.OnProcessData)(i, len(bars)-1); err != nil {
				return types.BacktestReport{}, err
			}
		}
	}

	report := b.buildReport(runID, s.Name(), request, history, state)
	report.PositionSize = positionSize

	if hasStopLoss {
		report.StopLoss = stopLoss
	}

	b.log.Info("Backtest finished",
		zap.String("run_id", runID),
		zap.String("symbol", report.Symbol),
		zap.String("strategy", string(report.Strategy)),
		zap.Float64("total_return", report.TotalReturn),
		zap.Int("trades", report.NumberOfTrades),
	)

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(runID, report)
	}

	return report, nil
}

func (b *BacktestEngineV1) buildReport(runID string, name types.StrategyName, request engine.Request, history runHistory, state *BacktestState) types.BacktestReport {
	bars := history.bars
	last := bars[len(bars)-1]
	finalValue := state.Value(last.Close).InexactFloat64()
	trades := state.Trades()

	return types.BacktestReport{
		ID:                runID,
		Timestamp:         time.Now(),
		Symbol:            request.Symbol,
		Strategy:          name,
		Start:             request.Start,
		End:               request.End,
		InitialBalance:    b.config.InitialCapital,
		FinalValue:        finalValue,
		TotalReturn:       (finalValue - b.config.InitialCapital) / b.config.InitialCapital,
		NumberOfTrades:    len(trades),
		Trades:            trades,
		RiskMetrics:       history.metrics,
		BuyAndHoldReturn:  buyAndHoldReturn(bars),
		MaxEquityDrawdown: b.calculator.MaxDrawdown(state.EquityCurve()).TakeOr(0),
	}
}

func (b *BacktestEngineV1) preRunCheck(request engine.Request) error {
	if len(b.strategies) == 0 {
		b.log.Error("No strategies loaded")

		return errors.New(errors.ErrCodeBacktestConfigError, "no strategies loaded")
	}

	if b.datasource == nil {
		b.log.Error("No datasource set")

		return errors.New(errors.ErrCodeBacktestConfigError, "no datasource set")
	}

	if request.Symbol == "" {
		return errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	return nil
}
