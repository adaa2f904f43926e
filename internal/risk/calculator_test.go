package risk

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type CalculatorTestSuite struct {
	suite.Suite
	calc *Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func (suite *CalculatorTestSuite) SetupTest() {
	suite.calc = NewCalculator(DefaultConfig(), logger.NewNopLogger())
}

func bars(symbol string, closes ...float64) []types.MarketData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := make([]types.MarketData, len(closes))

	for i, c := range closes {
		data[i] = types.MarketData{
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return data
}

func zeroRiskFree() Config {
	config := DefaultConfig()
	config.RiskFreeRate = 0

	return config
}

func (suite *CalculatorTestSuite) TestReturns() {
	returns := Returns([]float64{100, 110, 99})
	suite.Len(returns, 2)
	suite.InDelta(0.1, returns[0], 1e-12)
	suite.InDelta(-0.1, returns[1], 1e-12)

	suite.Nil(Returns([]float64{100}))
	suite.Nil(Returns(nil))
}

func (suite *CalculatorTestSuite) TestVaRKnownQuantile() {
	returns := []float64{0.03, -0.02, 0.01, -0.04, 0.00, 0.02, -0.01, 0.05, -0.03, 0.04, 0.06}

	v := suite.calc.VaR(returns)
	suite.True(v.IsSome())
	suite.InDelta(-0.035, v.Unwrap(), 1e-12)

	cvar := suite.calc.CVaR(returns)
	suite.True(cvar.IsSome())
	suite.InDelta(-0.04, cvar.Unwrap(), 1e-12)
}

func (suite *CalculatorTestSuite) TestVaRExactOrderStatistic() {
	returns := make([]float64, 0, 21)
	for i := 10; i >= -10; i-- {
		returns = append(returns, float64(i)/100)
	}

	suite.InDelta(-0.09, suite.calc.VaR(returns).Unwrap(), 1e-12)
	suite.InDelta(-0.095, suite.calc.CVaR(returns).Unwrap(), 1e-12)
}

func (suite *CalculatorTestSuite) TestVaREmpty() {
	suite.True(suite.calc.VaR(nil).IsNone())
	suite.True(suite.calc.CVaR(nil).IsNone())
}

func (suite *CalculatorTestSuite) TestCVaRNeverAboveVaR() {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 5 + rng.Intn(200)
		returns := make([]float64, n)

		for i := range returns {
			returns[i] = rng.NormFloat64() * 0.02
		}

		v := suite.calc.VaR(returns)
		c := suite.calc.CVaR(returns)
		suite.True(v.IsSome())
		suite.True(c.IsSome())
		suite.LessOrEqual(c.Unwrap(), v.Unwrap())

		vol := suite.calc.Volatility(returns)
		suite.True(vol.IsSome())
		suite.GreaterOrEqual(vol.Unwrap(), 0.0)
	}
}

func (suite *CalculatorTestSuite) TestFlatSeries() {
	prices := []float64{100, 100, 100, 100, 100}
	returns := Returns(prices)

	suite.Equal(0.0, suite.calc.Volatility(returns).Unwrap())
	suite.Equal(0.0, suite.calc.MaxDrawdown(prices).Unwrap())
	suite.True(suite.calc.Sharpe(returns).IsNone())
	suite.True(suite.calc.Sortino(returns).IsNone())
	suite.Equal(0, suite.calc.DynamicPositionSizing(prices, 10000).Unwrap())
}

func (suite *CalculatorTestSuite) TestMonotoneSeriesHasNoDrawdown() {
	prices := []float64{100, 100, 101, 105, 105, 120, 150}
	suite.Equal(0.0, suite.calc.MaxDrawdown(prices).Unwrap())
}

func (suite *CalculatorTestSuite) TestMaxDrawdown() {
	prices := []float64{100, 120, 90, 130, 117}
	suite.InDelta(-0.25, suite.calc.MaxDrawdown(prices).Unwrap(), 1e-12)
	suite.True(suite.calc.MaxDrawdown(nil).IsNone())
}

func (suite *CalculatorTestSuite) TestSharpe() {
	calc := NewCalculator(zeroRiskFree(), logger.NewNopLogger())
	sharpe := calc.Sharpe([]float64{0.01, 0.02, 0.03})

	suite.True(sharpe.IsSome())
	suite.InDelta(2*math.Sqrt(252), sharpe.Unwrap(), 1e-9)
}

func (suite *CalculatorTestSuite) TestSortinoUsesNegativeExcessReturns() {
	calc := NewCalculator(zeroRiskFree(), logger.NewNopLogger())
	returns := []float64{0.02, -0.01, 0.03, -0.03}

	// downside = [-0.01, -0.03], sample std = 0.0141421..., mean = 0.0025
	sortino := calc.Sortino(returns)
	suite.True(sortino.IsSome())
	suite.InDelta(0.0025/math.Sqrt(0.0002)*math.Sqrt(252), sortino.Unwrap(), 1e-9)

	suite.True(calc.Sortino([]float64{0.01, 0.02, -0.01}).IsNone())
}

func (suite *CalculatorTestSuite) TestVolatility() {
	vol := suite.calc.Volatility([]float64{0.01, 0.02, 0.03})
	suite.InDelta(0.01*math.Sqrt(252), vol.Unwrap(), 1e-12)
	suite.True(suite.calc.Volatility([]float64{0.01}).IsNone())
}

func (suite *CalculatorTestSuite) TestBetaAlphaTreynor() {
	calc := NewCalculator(zeroRiskFree(), logger.NewNopLogger())
	market := []float64{0.01, 0.02, 0.03}
	returns := []float64{0.02, 0.04, 0.06}

	suite.InDelta(2.0, calc.Beta(returns, market).Unwrap(), 1e-9)
	suite.InDelta(0.0, calc.JensenAlpha(returns, market).Unwrap(), 1e-12)
	suite.InDelta(0.04/2*252, calc.Treynor(returns, market).Unwrap(), 1e-9)
}

func (suite *CalculatorTestSuite) TestZeroBetaTreynorIsNone() {
	market := []float64{0.01, 0.02, 0.03}
	returns := []float64{0.01, 0.01, 0.01}

	suite.InDelta(0.0, suite.calc.Beta(returns, market).Unwrap(), 1e-12)
	suite.True(suite.calc.Treynor(returns, market).IsNone())
	suite.True(suite.calc.JensenAlpha(returns, market).IsSome())
}

func (suite *CalculatorTestSuite) TestBetaDegenerateInputs() {
	suite.True(suite.calc.Beta([]float64{0.01, 0.02}, []float64{0.01}).IsNone())
	suite.True(suite.calc.Beta([]float64{0.01, 0.02}, []float64{0.01, 0.01}).IsNone())
	suite.True(suite.calc.JensenAlpha(nil, nil).IsNone())
}

func (suite *CalculatorTestSuite) TestStopLoss() {
	suite.InDelta(95.0, suite.calc.StopLoss(100).Unwrap(), 1e-12)
	suite.True(suite.calc.StopLoss(0).IsNone())
}

func (suite *CalculatorTestSuite) TestDynamicPositionSizing() {
	prices := []float64{100, 102, 99, 101, 103}
	vol := suite.calc.Volatility(Returns(prices)).Unwrap()
	expected := int(math.Floor(10000 * 0.01 / (vol * 103)))

	size := suite.calc.DynamicPositionSizing(prices, 10000)
	suite.True(size.IsSome())
	suite.Equal(expected, size.Unwrap())
	suite.True(suite.calc.DynamicPositionSizing([]float64{100, 101}, 10000).IsNone())
}

func (suite *CalculatorTestSuite) TestRiskParity() {
	suite.InDelta(0.5, suite.calc.RiskParity([]float64{0.01, 0.03}, []float64{0.02, 0.04}).Unwrap(), 1e-12)
	suite.InDelta(2.0/3.0, suite.calc.RiskParity([]float64{0.01, 0.03}, []float64{0.0, 0.04}).Unwrap(), 1e-12)
	suite.Equal(0.5, suite.calc.RiskParity([]float64{0.01, 0.01}, []float64{0.02, 0.02}).Unwrap())
	suite.True(suite.calc.RiskParity([]float64{0.01}, []float64{0.02, 0.03}).IsNone())
}

func (suite *CalculatorTestSuite) TestParametricVaR() {
	returns := []float64{0.01, -0.02, 0.015, -0.005, 0.02}
	v := suite.calc.ParametricVaR(returns, 100)
	suite.True(v.IsSome())

	// The 95% upper quantile of the fitted normal is positive here, so the reported value is negative.
	suite.Less(v.Unwrap(), 0.0)
	suite.True(suite.calc.ParametricVaR([]float64{0.01}, 100).IsNone())
}

func (suite *CalculatorTestSuite) TestCalculateFlatSeries() {
	stock := bars("0050", 100, 100, 100, 100, 100)
	benchmark := bars("^TWII", 200, 201, 202, 203, 204)

	metrics := suite.calc.Calculate(stock, benchmark)
	suite.Equal(0.0, metrics.Volatility.Unwrap())
	suite.Equal(0.0, metrics.MaxDrawdown.Unwrap())
	suite.True(metrics.Sharpe.IsNone())
	suite.InDelta(0.0, metrics.VaR.Unwrap(), 1e-12)
	suite.InDelta(95.0, metrics.StopLoss.Unwrap(), 1e-12)
	suite.Equal(0, metrics.PositionSize())
	suite.Empty(metrics.Alerts)
}

func (suite *CalculatorTestSuite) TestCalculateAlignsBenchmarkByDate() {
	stock := bars("0050", 100, 102, 104, 106, 108)
	benchmark := bars("^TWII", 200, 204, 208, 212, 216)
	// Drop one benchmark day: beta must only use the overlap.
	benchmark = append(benchmark[:2], benchmark[3:]...)

	metrics := suite.calc.Calculate(stock, benchmark)
	suite.True(metrics.Beta.IsSome())
	suite.True(metrics.RiskParity.IsSome())
}

func (suite *CalculatorTestSuite) TestCalculateWithoutBenchmark() {
	metrics := suite.calc.Calculate(bars("0050", 100, 101, 99, 102), nil)

	suite.True(metrics.Volatility.IsSome())
	suite.True(metrics.Beta.IsNone())
	suite.True(metrics.Treynor.IsNone())
	suite.True(metrics.JensenAlpha.IsNone())
	suite.True(metrics.RiskParity.IsNone())
}

func (suite *CalculatorTestSuite) TestCalculateEmpty() {
	metrics := suite.calc.Calculate(nil, nil)
	suite.Empty(metrics.ToMap())
}

func (suite *CalculatorTestSuite) TestCalculateIsIdempotent() {
	rng := rand.New(rand.NewSource(7))
	closes := make([]float64, 120)
	market := make([]float64, 120)
	price, index := 100.0, 1000.0

	for i := range closes {
		price *= 1 + rng.NormFloat64()*0.02
		index *= 1 + rng.NormFloat64()*0.01
		closes[i] = price
		market[i] = index
	}

	stock := bars("0050", closes...)
	benchmark := bars("^TWII", market...)

	first := suite.calc.Calculate(stock, benchmark)
	second := suite.calc.Calculate(stock, benchmark)
	suite.Equal(first.ToMap(), second.ToMap())
	suite.Equal(first.Alerts, second.Alerts)
}

func (suite *CalculatorTestSuite) TestAlertsOnCrash() {
	stock := bars("0050", 100, 90, 80, 70, 60, 50)

	metrics := suite.calc.Calculate(stock, nil)

	breached := make(map[string]bool)
	for _, alert := range metrics.Alerts {
		breached[alert.Metric] = true
	}

	suite.True(breached[types.MetricVaR])
	suite.True(breached[types.MetricMaxDrawdown])
}

func (suite *CalculatorTestSuite) TestReturnsSkipStepsFromNonPositivePrices() {
	returns := Returns([]float64{100, 0, 50, 55})
	suite.Require().Len(returns, 2)
	suite.InDelta(-1.0, returns[0], 1e-12)
	suite.InDelta(0.1, returns[1], 1e-12)

	suite.Empty(Returns([]float64{0, 10}))
	suite.Len(Returns([]float64{10, math.NaN(), 12}), 0)
}

func (suite *CalculatorTestSuite) TestPairedReturnsSkipBothLegs() {
	stock, market := PairedReturns([]float64{100, 110, 121, 133.1}, []float64{50, 0, 60, 66})
	suite.Require().Len(stock, 2)
	suite.Require().Len(market, 2)
	suite.InDelta(0.1, stock[0], 1e-12)
	suite.InDelta(-1.0, market[0], 1e-12)
	suite.InDelta(0.1, stock[1], 1e-12)
	suite.InDelta(0.1, market[1], 1e-12)

	stock, market = PairedReturns([]float64{100}, []float64{50})
	suite.Nil(stock)
	suite.Nil(market)
}

func (suite *CalculatorTestSuite) TestCalculateWithZeroCloseStaysFinite() {
	core, logs := observer.New(zap.WarnLevel)
	calc := NewCalculator(DefaultConfig(), &logger.Logger{Logger: zap.New(core)})

	closes := []float64{100, 0, 50, 52, 49, 51, 53, 50, 54, 55, 53, 56}
	market := []float64{200, 202, 201, 203, 205, 204, 206, 208, 207, 209, 211, 210}

	metrics := calc.Calculate(bars("2330", closes...), bars("SPY", market...))

	for name, value := range map[string]float64{
		types.MetricVaR:        metrics.VaR.Unwrap(),
		types.MetricCVaR:       metrics.CVaR.Unwrap(),
		types.MetricSharpe:     metrics.Sharpe.Unwrap(),
		types.MetricVolatility: metrics.Volatility.Unwrap(),
		types.MetricBeta:       metrics.Beta.Unwrap(),
	} {
		suite.False(math.IsInf(value, 0) || math.IsNaN(value), "%s = %v", name, value)
	}

	suite.Equal(1, logs.FilterMessage("Skipped price steps without a return").Len())
}
