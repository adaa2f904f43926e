package risk

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"go.uber.org/zap"
)

// Alerts evaluates the advisory thresholds and logs a warning for each breach.
func (c *Calculator) Alerts(symbol string, metrics types.RiskMetrics) []types.RiskAlert {
	var alerts []types.RiskAlert

	check := func(metric string, value optional.Option[float64], threshold float64, breached func(v float64) bool) {
		if value.IsNone() || !breached(value.Unwrap()) {
			return
		}

		c.log.Warn("Risk alert",
			zap.String("symbol", symbol),
			zap.String("metric", metric),
			zap.Float64("value", value.Unwrap()),
			zap.Float64("threshold", threshold),
		)

		alerts = append(alerts, types.RiskAlert{
			Metric:    metric,
			Value:     value.Unwrap(),
			Threshold: threshold,
		})
	}

	check(types.MetricVaR, metrics.VaR, VaRAlertThreshold, func(v float64) bool { return v < VaRAlertThreshold })
	check(types.MetricVolatility, metrics.Volatility, VolatilityAlertThreshold, func(v float64) bool { return v > VolatilityAlertThreshold })
	check(types.MetricMaxDrawdown, metrics.MaxDrawdown, MaxDrawdownAlertThreshold, func(v float64) bool { return v < MaxDrawdownAlertThreshold })

	return alerts
}
