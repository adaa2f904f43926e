package types

import (
	"github.com/moznion/go-optional"
)

// Risk metric keys as they appear in persisted documents and advisor prompts.
const (
	MetricVaR                   = "VaR"
	MetricCVaR                  = "CVaR"
	MetricSharpe                = "Sharpe"
	MetricSortino               = "Sortino"
	MetricBeta                  = "Beta"
	MetricJensenAlpha           = "JensenAlpha"
	MetricTreynor               = "Treynor"
	MetricVolatility            = "Volatility"
	MetricMaxDrawdown           = "MaxDrawdown"
	MetricStopLoss              = "StopLoss"
	MetricDynamicPositionSizing = "DynamicPositionSizing"
	MetricRiskParity            = "RiskParity"
	MetricParametricVaR         = "ParametricVaR"
)

// RiskAlert is an advisory threshold breach. It never drives control flow.
type RiskAlert struct {
	Metric    string  `yaml:"metric" json:"metric"`
	Value     float64 `yaml:"value" json:"value"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// RiskMetrics is the fixed set of risk statistics for one (instrument, range, benchmark) triple.
// A None value means the metric could not be computed on the given input.
type RiskMetrics struct {
	// VaR is the (1-confidence) quantile of daily returns.
	VaR  optional.Option[float64]
	CVaR optional.Option[float64]
	// Sharpe and Sortino are annualized.
	Sharpe      optional.Option[float64]
	Sortino     optional.Option[float64]
	Beta        optional.Option[float64]
	JensenAlpha optional.Option[float64]
	Treynor     optional.Option[float64]
	// Volatility is the annualized standard deviation of returns, always >= 0.
	Volatility optional.Option[float64]
	// MaxDrawdown is always <= 0.
	MaxDrawdown optional.Option[float64]
	// StopLoss is a price level.
	StopLoss optional.Option[float64]
	// DynamicPositionSizing is a whole number of shares.
	DynamicPositionSizing optional.Option[int]
	RiskParity            optional.Option[float64]
	// ParametricVaR is the currency-scaled annualized VaR. It is never reported under the VaR key.
	ParametricVaR optional.Option[float64]

	Alerts []RiskAlert
}

// EmptyRiskMetrics returns metrics with every value set to None.
func EmptyRiskMetrics() RiskMetrics {
	return RiskMetrics{
		VaR:                   optional.None[float64](),
		CVaR:                  optional.None[float64](),
		Sharpe:                optional.None[float64](),
		Sortino:               optional.None[float64](),
		Beta:                  optional.None[float64](),
		JensenAlpha:           optional.None[float64](),
		Treynor:               optional.None[float64](),
		Volatility:            optional.None[float64](),
		MaxDrawdown:           optional.None[float64](),
		StopLoss:              optional.None[float64](),
		DynamicPositionSizing: optional.None[int](),
		RiskParity:            optional.None[float64](),
		ParametricVaR:         optional.None[float64](),
		Alerts:                nil,
	}
}

// ToMap flattens the metrics into a key/value mapping. None values are omitted.
func (m RiskMetrics) ToMap() map[string]float64 {
	out := make(map[string]float64)

	put := func(key string, value optional.Option[float64]) {
		if value.IsSome() {
			out[key] = value.Unwrap()
		}
	}

	put(MetricVaR, m.VaR)
	put(MetricCVaR, m.CVaR)
	put(MetricSharpe, m.Sharpe)
	put(MetricSortino, m.Sortino)
	put(MetricBeta, m.Beta)
	put(MetricJensenAlpha, m.JensenAlpha)
	put(MetricTreynor, m.Treynor)
	put(MetricVolatility, m.Volatility)
	put(MetricMaxDrawdown, m.MaxDrawdown)
	put(MetricStopLoss, m.StopLoss)
	put(MetricRiskParity, m.RiskParity)
	put(MetricParametricVaR, m.ParametricVaR)

	if m.DynamicPositionSizing.IsSome() {
		out[MetricDynamicPositionSizing] = float64(m.DynamicPositionSizing.Unwrap())
	}

	return out
}

// PositionSize returns the dynamic position size or 0 when it is unknown.
func (m RiskMetrics) PositionSize() int {
	return m.DynamicPositionSizing.TakeOr(0)
}

// MarshalYAML writes the metrics as a flat mapping with nulls omitted.
func (m RiskMetrics) MarshalYAML() (any, error) {
	return struct {
		Metrics map[string]float64 `yaml:"metrics"`
		Alerts  []RiskAlert        `yaml:"alerts,omitempty"`
	}{
		Metrics: m.ToMap(),
		Alerts:  m.Alerts,
	}, nil
}
