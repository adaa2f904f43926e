package engine

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
	"github.com/rxtech-lab/argo-quant/internal/strategy"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnBacktestStartCallback is called when the entire backtest begins.
type OnBacktestStartCallback func(totalStrategies int) error

// OnBacktestEndCallback is called when the entire backtest completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnStrategyStartCallback is called when a strategy iteration begins.
type OnStrategyStartCallback func(strategyIndex int, strategyName types.StrategyName, totalStrategies int) error

// OnStrategyEndCallback is called when a strategy iteration ends.
type OnStrategyEndCallback func(strategyIndex int, strategyName types.StrategyName)

// OnRunStartCallback is called when the simulation of one strategy over one symbol begins.
// runID is the identifier the resulting report will carry.
type OnRunStartCallback func(runID string, symbol string, strategyName types.StrategyName, totalDataPoints int) error

// OnRunEndCallback is called with the report of a finished run.
type OnRunEndCallback func(runID string, report types.BacktestReport)

// OnProcessDataCallback is called for each data point processed.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnStrategyStart *OnStrategyStartCallback
	OnStrategyEnd   *OnStrategyEndCallback
	OnRunStart      *OnRunStartCallback
	OnRunEnd        *OnRunEndCallback
	OnProcessData   *OnProcessDataCallback
}

// Request selects the instrument and period of a backtest.
type Request struct {
	Symbol string
	Start  time.Time
	End    time.Time
	// PairSymbol is the second leg handed to the pair trading strategy
	PairSymbol string
	// Sentiment is held constant for the whole run
	Sentiment optional.Option[float64]
}

type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// SetDataSource sets the provider the price history is read from.
	SetDataSource(provider marketdata.PriceProvider) error
	// LoadStrategy adds a strategy to backtest. Could be called multiple times to load multiple strategies.
	LoadStrategy(strategy strategy.Strategy) error
	// Run simulates every loaded strategy over the requested period and returns one report per strategy.
	// Missing or too short price data aborts the run with a nil result.
	// The context can be used to cancel the backtest operation.
	Run(ctx context.Context, request Request, callbacks LifecycleCallbacks) ([]types.BacktestReport, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
