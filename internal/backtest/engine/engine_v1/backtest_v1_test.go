package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
	"github.com/rxtech-lab/argo-quant/internal/risk"
	"github.com/rxtech-lab/argo-quant/internal/strategy"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/mocks"
	argoErrors "github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BacktestEngineV1TestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	start time.Time
}

func TestBacktestEngineV1Suite(t *testing.T) {
	suite.Run(t, new(BacktestEngineV1TestSuite))
}

func (suite *BacktestEngineV1TestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *BacktestEngineV1TestSuite) request(symbol string) engine.Request {
	return engine.Request{
		Symbol: symbol,
		Start:  suite.start,
		End:    suite.start.AddDate(1, 0, 0),
	}
}

// constantStrategy returns a mock strategy that always signals direction.
func (suite *BacktestEngineV1TestSuite) constantStrategy(direction types.Direction) *mocks.MockStrategy {
	s := mocks.NewMockStrategy(suite.ctrl)
	s.EXPECT().Name().Return(types.StrategyMomentumBreakout).AnyTimes()
	s.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(types.NewSignal(types.StrategyMomentumBreakout, direction, 0.02)).AnyTimes()

	return s
}

func (suite *BacktestEngineV1TestSuite) newEngine(provider marketdata.PriceProvider, config BacktestEngineV1Config, strategies ...strategy.Strategy) *BacktestEngineV1 {
	e := NewBacktestEngineV1(nil).(*BacktestEngineV1)
	suite.Require().NoError(e.InitializeWithConfig(config))
	suite.Require().NoError(e.SetDataSource(provider))

	for _, s := range strategies {
		suite.Require().NoError(e.LoadStrategy(s))
	}

	return e
}

func (suite *BacktestEngineV1TestSuite) expectedMetrics(config BacktestEngineV1Config, bars []types.MarketData) types.RiskMetrics {
	return risk.NewCalculator(config.Risk, nil).Calculate(bars, nil)
}

func (suite *BacktestEngineV1TestSuite) TestAlwaysBuy() {
	bars := mocks.BarsFromCloses("2330", suite.start, 100, 101, 99, 102, 100, 101, 99, 100.5, 101.5, 100)
	config := EmptyConfig()
	size := suite.expectedMetrics(config, bars).PositionSize()
	suite.Require().Equal(3, size)

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), config, suite.constantStrategy(types.DirectionBuy))

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)

	report := reports[0]
	suite.Equal(9, report.NumberOfTrades)
	suite.Equal(size, report.PositionSize)
	suite.InDelta(95.0, report.StopLoss, 1e-9)

	for i, trade := range report.Trades {
		suite.Equal(types.TradeActionBuy, trade.Action)
		suite.Equal(bars[i+1].Close, trade.Price)
		suite.Equal(bars[i+1].Time, trade.Time)
		suite.Equal(size, trade.Quantity)
	}

	// 10000 - 3 x 904 in cash plus 27 shares at 100
	suite.InDelta(9988.0, report.FinalValue, 1e-9)
	suite.InDelta(-0.0012, report.TotalReturn, 1e-12)
	suite.InDelta(0.0, report.BuyAndHoldReturn, 1e-12)
	suite.LessOrEqual(report.MaxEquityDrawdown, 0.0)
	suite.NotEmpty(report.ID)
	suite.Equal(types.StrategyMomentumBreakout, report.Strategy)
	suite.Equal(10000.0, report.InitialBalance)
}

func (suite *BacktestEngineV1TestSuite) TestSellWithoutSharesDoesNothing() {
	bars := mocks.BarsFromCloses("2330", suite.start, 100, 101, 99, 102, 100, 101, 99, 100.5, 101.5, 100)
	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), suite.constantStrategy(types.DirectionSell))

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	suite.Equal(0, reports[0].NumberOfTrades)
	suite.Equal(10000.0, reports[0].FinalValue)
	suite.Equal(0.0, reports[0].TotalReturn)
	suite.Equal(0.0, reports[0].MaxEquityDrawdown)
}

func (suite *BacktestEngineV1TestSuite) TestStopLossLiquidatesEveryShare() {
	bars := mocks.BarsFromCloses("2330", suite.start, 100, 101, 102, 101, 100, 90, 100)
	config := EmptyConfig()
	config.InitialCapital = 1_000_000
	config.Risk.Balance = 1_000_000

	size := suite.expectedMetrics(config, bars).PositionSize()
	suite.Require().Equal(93, size)

	s := mocks.NewMockStrategy(suite.ctrl)
	s.EXPECT().Name().Return(types.StrategyMeanReversion).AnyTimes()
	s.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, input strategy.Input) types.Signal {
		if len(input.Prices) == 2 {
			return types.NewSignal(types.StrategyMeanReversion, types.DirectionBuy, 0.015)
		}

		return types.NeutralSignal(types.StrategyMeanReversion)
	}).AnyTimes()

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), config, s)

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	report := reports[0]
	suite.Require().Len(report.Trades, 2)
	suite.Equal(types.TradeActionBuy, report.Trades[0].Action)
	suite.Equal(101.0, report.Trades[0].Price)

	liquidation := report.Trades[1]
	suite.Equal(types.TradeActionStopLossSell, liquidation.Action)
	suite.Equal(90.0, liquidation.Price)
	suite.Equal(size, liquidation.Quantity)
	suite.Equal(bars[5].Time, liquidation.Time)

	suite.InDelta(1_000_000-float64(size)*11, report.FinalValue, 1e-6)
}

func (suite *BacktestEngineV1TestSuite) TestNoLookahead() {
	bars := mocks.GenerateDaily("2330", 30)

	var seen []int

	s := mocks.NewMockStrategy(suite.ctrl)
	s.EXPECT().Name().Return(types.StrategyBrownianDiffusion).AnyTimes()
	s.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, input strategy.Input) types.Signal {
		last := input.Prices[len(input.Prices)-1]
		suite.Equal(bars[len(input.Prices)-1].Time, last.Time)
		seen = append(seen, len(input.Prices))

		return types.NeutralSignal(types.StrategyBrownianDiffusion)
	}).AnyTimes()

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), s)

	_, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	suite.Require().Len(seen, 29)
	for i, n := range seen {
		suite.Equal(i+2, n)
	}
}

func (suite *BacktestEngineV1TestSuite) TestPairPricesStopAtCurrentBar() {
	bars := mocks.GenerateDaily("2330", 20)
	pair := mocks.GenerateDaily("2317", 20)

	s := mocks.NewMockStrategy(suite.ctrl)
	s.EXPECT().Name().Return(types.StrategyLowRiskPairTrading).AnyTimes()
	s.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, input strategy.Input) types.Signal {
		current := input.Prices[len(input.Prices)-1].Time
		suite.Len(input.PairPrices, len(input.Prices))
		suite.False(input.PairPrices[len(input.PairPrices)-1].Time.After(current))

		return types.NeutralSignal(types.StrategyLowRiskPairTrading)
	}).AnyTimes()

	provider := marketdata.NewMemoryPriceProvider(append(bars, pair...)...)
	e := suite.newEngine(provider, EmptyConfig(), s)

	request := suite.request("2330")
	request.PairSymbol = "2317"

	_, err := e.Run(context.Background(), request, engine.LifecycleCallbacks{})
	suite.NoError(err)
}

func (suite *BacktestEngineV1TestSuite) TestZeroPositionSizeNeverTrades() {
	bars := mocks.BarsFromCloses("2330", suite.start, 100, 100, 100, 100, 100)

	s := mocks.NewMockStrategy(suite.ctrl)
	s.EXPECT().Name().Return(types.StrategyMomentumBreakout).AnyTimes()
	s.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Times(0)

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), s)

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Equal(0, reports[0].PositionSize)
	suite.Equal(0, reports[0].NumberOfTrades)
	suite.Equal(10000.0, reports[0].FinalValue)
}

func (suite *BacktestEngineV1TestSuite) TestMissingDataReturnsNilReport() {
	e := suite.newEngine(marketdata.NewMemoryPriceProvider(), EmptyConfig(), suite.constantStrategy(types.DirectionBuy))

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Nil(reports)
	suite.True(argoErrors.IsNoData(err))
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeBacktestNoData))
}

func (suite *BacktestEngineV1TestSuite) TestSingleBarReturnsNilReport() {
	bars := mocks.BarsFromCloses("2330", suite.start, 100)
	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), suite.constantStrategy(types.DirectionBuy))

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Nil(reports)
	suite.True(argoErrors.IsInsufficientDataError(err))
}

func (suite *BacktestEngineV1TestSuite) TestPreRunCheck() {
	e := NewBacktestEngineV1(nil)

	_, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeBacktestConfigError))

	suite.NoError(e.LoadStrategy(suite.constantStrategy(types.DirectionBuy)))
	_, err = e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeBacktestConfigError))

	suite.NoError(e.SetDataSource(marketdata.NewMemoryPriceProvider()))
	_, err = e.Run(context.Background(), engine.Request{}, engine.LifecycleCallbacks{})
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeMissingParameter))

	suite.Error(e.LoadStrategy(nil))
}

func (suite *BacktestEngineV1TestSuite) TestCancelledContext() {
	bars := mocks.GenerateDaily("2330", 30)
	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), suite.constantStrategy(types.DirectionBuy))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := e.Run(ctx, suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Nil(reports)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeBacktestCancelled))
}

func (suite *BacktestEngineV1TestSuite) TestLifecycleCallbacks() {
	bars := mocks.GenerateDaily("2330", 12)

	first := suite.constantStrategy(types.DirectionHold)
	second := mocks.NewMockStrategy(suite.ctrl)
	second.EXPECT().Name().Return(types.StrategyQuantumFluctuation).AnyTimes()
	second.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(types.NeutralSignal(types.StrategyQuantumFluctuation)).AnyTimes()

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), first, second)

	var (
		started    int
		runIDs     []string
		processed  int
		ended      []types.BacktestReport
		strategies []types.StrategyName
		endErr     = errors.New("not called")
	)

	onStart := engine.OnBacktestStartCallback(func(total int) error {
		started = total
		return nil
	})
	onEnd := engine.OnBacktestEndCallback(func(err error) {
		endErr = err
	})
	onStrategyStart := engine.OnStrategyStartCallback(func(_ int, name types.StrategyName, _ int) error {
		strategies = append(strategies, name)
		return nil
	})
	onRunStart := engine.OnRunStartCallback(func(runID string, symbol string, _ types.StrategyName, total int) error {
		suite.Equal("2330", symbol)
		suite.Equal(12, total)
		runIDs = append(runIDs, runID)
		return nil
	})
	onRunEnd := engine.OnRunEndCallback(func(runID string, report types.BacktestReport) {
		suite.Equal(runID, report.ID)
		ended = append(ended, report)
	})
	onProcess := engine.OnProcessDataCallback(func(current int, total int) error {
		suite.Equal(11, total)
		processed++
		return nil
	})

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnBacktestEnd:   &onEnd,
		OnStrategyStart: &onStrategyStart,
		OnRunStart:      &onRunStart,
		OnRunEnd:        &onRunEnd,
		OnProcessData:   &onProcess,
	})
	suite.Require().NoError(err)

	suite.Equal(2, started)
	suite.NoError(endErr)
	suite.Equal([]types.StrategyName{types.StrategyMomentumBreakout, types.StrategyQuantumFluctuation}, strategies)
	suite.Len(runIDs, 2)
	suite.NotEqual(runIDs[0], runIDs[1])
	suite.Equal(22, processed)
	suite.Equal(reports, ended)
}

func (suite *BacktestEngineV1TestSuite) TestCallbackAbortsRun() {
	bars := mocks.GenerateDaily("2330", 12)
	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), EmptyConfig(), suite.constantStrategy(types.DirectionBuy))

	abort := errors.New("abort")
	var endErr error

	onProcess := engine.OnProcessDataCallback(func(current int, _ int) error {
		if current == 3 {
			return abort
		}

		return nil
	})
	onEnd := engine.OnBacktestEndCallback(func(err error) {
		endErr = err
	})

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{
		OnProcessData: &onProcess,
		OnBacktestEnd: &onEnd,
	})
	suite.Nil(reports)
	suite.ErrorIs(err, abort)
	suite.ErrorIs(endErr, abort)
}

func (suite *BacktestEngineV1TestSuite) TestRandomSignalsKeepEquityNonNegative() {
	bars := mocks.GenerateDaily("2330", 120)

	config := EmptyConfig()
	config.Broker = "interactive_broker"
	config.InitialCapital = 2000
	config.Risk.Balance = 20_000

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), config, strategy.NewQuantumFluctuation(7))

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	report := reports[0]
	suite.GreaterOrEqual(report.FinalValue, 0.0)
	suite.GreaterOrEqual(report.MaxEquityDrawdown, -1.0)
	suite.LessOrEqual(report.MaxEquityDrawdown, 0.0)

	shares := 0
	for _, trade := range report.Trades {
		switch trade.Action {
		case types.TradeActionBuy:
			shares += trade.Quantity
		default:
			shares -= trade.Quantity
		}

		suite.GreaterOrEqual(shares, 0)
	}
}

func (suite *BacktestEngineV1TestSuite) TestConfigWindowOverridesRequest() {
	bars := mocks.GenerateDaily("2330", 60)

	config := EmptyConfig()
	config.StartTime = optional.Some(bars[10].Time)
	config.EndTime = optional.Some(bars[19].Time)

	e := suite.newEngine(marketdata.NewMemoryPriceProvider(bars...), config, suite.constantStrategy(types.DirectionHold))

	reports, err := e.Run(context.Background(), suite.request("2330"), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Equal(bars[10].Time, reports[0].Start)
	suite.Equal(bars[19].Time, reports[0].End)
	suite.InDelta(bars[19].Close/bars[10].Close-1, reports[0].BuyAndHoldReturn, 1e-12)
}

func (suite *BacktestEngineV1TestSuite) TestNewWithConfig() {
	config := EmptyConfig()
	config.InitialCapital = 500

	e, err := NewBacktestEngineV1WithConfig(config, nil)
	suite.Require().NoError(err)
	suite.Equal(500.0, e.(*BacktestEngineV1).config.InitialCapital)

	config.InitialCapital = -1
	_, err = NewBacktestEngineV1WithConfig(config, nil)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeBacktestConfigError))
}
