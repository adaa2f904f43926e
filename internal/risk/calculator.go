// Package risk computes quantitative risk metrics from price series.
//
// Every metric degrades to None (or the documented neutral value) on empty,
// short or degenerate input and logs a warning. None of the operations return
// an error to the caller.
package risk

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Calculator computes risk metrics. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	config Config
	log    *logger.Logger
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(config Config, log *logger.Logger) *Calculator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Calculator{
		config: config,
		log:    log,
	}
}

// Config returns the calculator configuration.
func (c *Calculator) Config() Config {
	return c.config
}

func (c *Calculator) dailyRiskFree() float64 {
	return c.config.RiskFreeRate / float64(c.config.TradingDays)
}

func (c *Calculator) annualization() float64 {
	return math.Sqrt(float64(c.config.TradingDays))
}

func (c *Calculator) warn(metric string, reason string, fields ...zap.Field) {
	c.log.Warn("Risk metric unavailable",
		append([]zap.Field{zap.String("metric", metric), zap.String("reason", reason)}, fields...)...,
	)
}

// VaR is the (1-confidence) quantile of the returns, interpolated linearly between order statistics.
func (c *Calculator) VaR(returns []float64) optional.Option[float64] {
	if len(returns) == 0 {
		c.warn(types.MetricVaR, "empty return series")

		return optional.None[float64]()
	}

	return optional.Some(quantile(returns, 1-c.config.Confidence))
}

// ParametricVaR is the currency-scaled annualized VaR under a normal fit of the returns:
// -ppf(confidence; mean, std) x sqrt(trading days) x latest price.
func (c *Calculator) ParametricVaR(returns []float64, latestPrice float64) optional.Option[float64] {
	std, ok := sampleStdDev(returns)
	if !ok {
		c.warn(types.MetricParametricVaR, "need at least two returns", zap.Int("returns", len(returns)))

		return optional.None[float64]()
	}

	if std < degenerateEpsilon {
		c.warn(types.MetricParametricVaR, "zero variance")

		return optional.None[float64]()
	}

	normal := distuv.Normal{Mu: stat.Mean(returns, nil), Sigma: std}

	return optional.Some(-normal.Quantile(c.config.Confidence) * c.annualization() * latestPrice)
}

// CVaR is the mean of the returns at or below VaR.
func (c *Calculator) CVaR(returns []float64) optional.Option[float64] {
	v := c.VaR(returns)
	if v.IsNone() {
		return optional.None[float64]()
	}

	threshold := v.Unwrap()

	tail := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r <= threshold {
			tail = append(tail, r)
		}
	}

	if len(tail) == 0 {
		c.warn(types.MetricCVaR, "empty tail")

		return optional.None[float64]()
	}

	return optional.Some(stat.Mean(tail, nil))
}

// Sharpe is the annualized mean over standard deviation of the daily excess returns.
func (c *Calculator) Sharpe(returns []float64) optional.Option[float64] {
	excess := subtract(returns, c.dailyRiskFree())

	std, ok := sampleStdDev(excess)
	if !ok {
		c.warn(types.MetricSharpe, "need at least two returns", zap.Int("returns", len(returns)))

		return optional.None[float64]()
	}

	if std < degenerateEpsilon {
		c.warn(types.MetricSharpe, "zero variance")

		return optional.None[float64]()
	}

	return optional.Some(stat.Mean(excess, nil) / std * c.annualization())
}

// Sortino uses the standard deviation of the negative excess returns as denominator.
func (c *Calculator) Sortino(returns []float64) optional.Option[float64] {
	excess := subtract(returns, c.dailyRiskFree())

	downside := make([]float64, 0, len(excess))
	for _, r := range excess {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	std, ok := sampleStdDev(downside)
	if !ok {
		c.warn(types.MetricSortino, "need at least two negative excess returns", zap.Int("downside", len(downside)))

		return optional.None[float64]()
	}

	if std < degenerateEpsilon {
		c.warn(types.MetricSortino, "zero downside variance")

		return optional.None[float64]()
	}

	return optional.Some(stat.Mean(excess, nil) / std * c.annualization())
}

// Volatility is the annualized sample standard deviation of the returns.
func (c *Calculator) Volatility(returns []float64) optional.Option[float64] {
	std, ok := sampleStdDev(returns)
	if !ok {
		c.warn(types.MetricVolatility, "need at least two returns", zap.Int("returns", len(returns)))

		return optional.None[float64]()
	}

	if std < degenerateEpsilon {
		return optional.Some(0.0)
	}

	return optional.Some(std * c.annualization())
}

// MaxDrawdown is the worst relative drop from the running maximum of prices. It is never positive.
func (c *Calculator) MaxDrawdown(prices []float64) optional.Option[float64] {
	if len(prices) == 0 {
		c.warn(types.MetricMaxDrawdown, "empty price series")

		return optional.None[float64]()
	}

	return optional.Some(maxDrawdown(prices))
}

func maxDrawdown(values []float64) float64 {
	worst := 0.0
	peak := math.Inf(-1)

	for _, v := range values {
		if v > peak {
			peak = v
		}

		if peak <= 0 {
			continue
		}

		if dd := (v - peak) / peak; dd < worst {
			worst = dd
		}
	}

	return worst
}

// Beta is cov(r, m) / var(m) over two date-aligned return series.
func (c *Calculator) Beta(returns, market []float64) optional.Option[float64] {
	if len(returns) != len(market) || len(returns) < 2 {
		c.warn(types.MetricBeta, "need two aligned series of at least two returns",
			zap.Int("returns", len(returns)),
			zap.Int("market", len(market)),
		)

		return optional.None[float64]()
	}

	variance := stat.Variance(market, nil)
	if !finite(variance) || variance < degenerateEpsilon*degenerateEpsilon {
		c.warn(types.MetricBeta, "zero benchmark variance")

		return optional.None[float64]()
	}

	return optional.Some(stat.Covariance(returns, market, nil) / variance)
}

// JensenAlpha is mean(r) - [rf + beta x (mean(m) - rf)] with rf the daily risk-free rate.
func (c *Calculator) JensenAlpha(returns, market []float64) optional.Option[float64] {
	beta := c.Beta(returns, market)
	if beta.IsNone() {
		return optional.None[float64]()
	}

	rf := c.dailyRiskFree()
	expected := rf + beta.Unwrap()*(stat.Mean(market, nil)-rf)

	return optional.Some(stat.Mean(returns, nil) - expected)
}

// Treynor is mean(excess r) / beta, annualized by the trading days. Beta of zero yields None.
func (c *Calculator) Treynor(returns, market []float64) optional.Option[float64] {
	beta := c.Beta(returns, market)
	if beta.IsNone() {
		return optional.None[float64]()
	}

	if math.Abs(beta.Unwrap()) < degenerateEpsilon {
		c.warn(types.MetricTreynor, "zero beta")

		return optional.None[float64]()
	}

	excess := subtract(returns, c.dailyRiskFree())

	return optional.Some(stat.Mean(excess, nil) / beta.Unwrap() * float64(c.config.TradingDays))
}

// StopLoss is the price level StopLossPercent below the given price.
func (c *Calculator) StopLoss(price float64) optional.Option[float64] {
	if !finite(price) || price <= 0 {
		c.warn(types.MetricStopLoss, "non-positive price", zap.Float64("price", price))

		return optional.None[float64]()
	}

	return optional.Some(price * (1 - c.config.StopLossPercent))
}

// DynamicPositionSizing is floor(balance x risk per trade / (annualized volatility x latest price)).
// A flat series has no volatility to size against and yields 0 shares.
func (c *Calculator) DynamicPositionSizing(prices []float64, balance float64) optional.Option[int] {
	if len(prices) < 3 {
		c.warn(types.MetricDynamicPositionSizing, "need at least three prices", zap.Int("prices", len(prices)))

		return optional.None[int]()
	}

	vol := c.Volatility(Returns(prices))
	last := prices[len(prices)-1]

	if vol.IsNone() || vol.Unwrap() <= 0 || last <= 0 {
		c.warn(types.MetricDynamicPositionSizing, "zero volatility or non-positive price")

		return optional.Some(0)
	}

	size := math.Floor(balance * c.config.RiskPerTrade / (vol.Unwrap() * last))
	if !finite(size) || size < 0 {
		return optional.Some(0)
	}

	return optional.Some(int(size))
}

// RiskParity is the stock weight vol(m) / (vol(r) + vol(m)). Two flat series split evenly.
func (c *Calculator) RiskParity(returns, market []float64) optional.Option[float64] {
	stockVol, ok := sampleStdDev(returns)
	if !ok {
		c.warn(types.MetricRiskParity, "need at least two stock returns")

		return optional.None[float64]()
	}

	marketVol, ok := sampleStdDev(market)
	if !ok {
		c.warn(types.MetricRiskParity, "need at least two benchmark returns")

		return optional.None[float64]()
	}

	total := stockVol + marketVol
	if total < degenerateEpsilon {
		return optional.Some(0.5)
	}

	return optional.Some(marketVol / total)
}

// Calculate computes every metric for a stock series against a benchmark series.
// Stock-only metrics use the whole stock series; benchmark-relative metrics use the date-aligned overlap.
func (c *Calculator) Calculate(stock, benchmark []types.MarketData) types.RiskMetrics {
	metrics := types.EmptyRiskMetrics()

	if len(stock) == 0 {
		c.warn("all", "empty stock series")

		return metrics
	}

	prices := types.Closes(stock)
	if skipped := invalidSteps(prices); skipped > 0 {
		c.log.Warn("Skipped price steps without a return",
			zap.String("symbol", stock[0].Symbol),
			zap.Int("steps", skipped),
		)
	}

	returns := Returns(prices)
	last := prices[len(prices)-1]

	metrics.VaR = c.VaR(returns)
	metrics.CVaR = c.CVaR(returns)
	metrics.ParametricVaR = c.ParametricVaR(returns, last)
	metrics.Sharpe = c.Sharpe(returns)
	metrics.Sortino = c.Sortino(returns)
	metrics.Volatility = c.Volatility(returns)
	metrics.MaxDrawdown = c.MaxDrawdown(prices)
	metrics.StopLoss = c.StopLoss(last)
	metrics.DynamicPositionSizing = c.DynamicPositionSizing(prices, c.config.Balance)

	alignedStock, alignedBenchmark := types.AlignByDate(stock, benchmark)
	stockReturns, marketReturns := PairedReturns(types.Closes(alignedStock), types.Closes(alignedBenchmark))

	metrics.Beta = c.Beta(stockReturns, marketReturns)
	metrics.JensenAlpha = c.JensenAlpha(stockReturns, marketReturns)
	metrics.Treynor = c.Treynor(stockReturns, marketReturns)
	metrics.RiskParity = c.RiskParity(stockReturns, marketReturns)

	metrics.Alerts = c.Alerts(stock[0].Symbol, metrics)

	return metrics
}
