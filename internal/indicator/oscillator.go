package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// RSI represents the Relative Strength Index indicator.
// Gains and losses are averaged with a simple rolling mean over the period.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{period: 14}
}

func (r *RSI) Name() types.IndicatorType { return types.IndicatorTypeRSI }

func (r *RSI) Components() []string { return []string{ValueKey} }

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	return configPeriod(r.Name(), params, &r.period)
}

func (r *RSI) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(r.Name(), data, r.period+1); err != nil {
		return nil, err
	}

	closes := tail(types.Closes(data), r.period+1)

	var gain, loss float64

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}

	gain /= float64(r.period)
	loss /= float64(r.period)

	switch {
	case gain == 0 && loss == 0:
		return single(50), nil
	case loss == 0:
		return single(100), nil
	}

	rs := gain / loss

	return single(100 - 100/(1+rs)), nil
}

// Stochastic is the stochastic oscillator %K with its %D moving average.
type Stochastic struct {
	kPeriod int
	dPeriod int
}

// NewStochastic creates a new Stochastic indicator with default configuration.
func NewStochastic() Indicator {
	return &Stochastic{kPeriod: 14, dPeriod: 3}
}

func (s *Stochastic) Name() types.IndicatorType { return types.IndicatorTypeStochastic }

func (s *Stochastic) Components() []string { return []string{"k", "d"} }

// Config configures the Stochastic indicator. Expected parameters: k period (int), d period (int).
func (s *Stochastic) Config(params ...any) error {
	if err := tooManyParams(s.Name(), params, 2); err != nil {
		return err
	}

	if len(params) >= 1 {
		k, err := intParam(params, 0, "k period")
		if err != nil {
			return err
		}

		s.kPeriod = k
	}

	if len(params) == 2 {
		d, err := intParam(params, 1, "d period")
		if err != nil {
			return err
		}

		s.dPeriod = d
	}

	return nil
}

func (s *Stochastic) percentK(highs, lows, closes []float64, end int) float64 {
	hh := highest(highs[end-s.kPeriod+1 : end+1])
	ll := lowest(lows[end-s.kPeriod+1 : end+1])

	if hh == ll {
		return 50
	}

	return 100 * (closes[end] - ll) / (hh - ll)
}

func (s *Stochastic) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(s.Name(), data, s.kPeriod+s.dPeriod-1); err != nil {
		return nil, err
	}

	highs, lows, closes := types.Highs(data), types.Lows(data), types.Closes(data)
	last := len(closes) - 1

	ks := make([]float64, 0, s.dPeriod)
	for end := last - s.dPeriod + 1; end <= last; end++ {
		ks = append(ks, s.percentK(highs, lows, closes, end))
	}

	return types.IndicatorValue{
		"k": ks[len(ks)-1],
		"d": mean(ks),
	}, nil
}

// WilliamsR is Williams %R, ranging from -100 to 0.
type WilliamsR struct {
	period int
}

// NewWilliamsR creates a new Williams %R indicator with default configuration.
func NewWilliamsR() Indicator {
	return &WilliamsR{period: 14}
}

func (w *WilliamsR) Name() types.IndicatorType { return types.IndicatorTypeWilliamsR }

func (w *WilliamsR) Components() []string { return []string{ValueKey} }

// Config configures the Williams %R indicator. Expected parameters: period (int).
func (w *WilliamsR) Config(params ...any) error {
	return configPeriod(w.Name(), params, &w.period)
}

func (w *WilliamsR) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(w.Name(), data, w.period); err != nil {
		return nil, err
	}

	window := data[len(data)-w.period:]
	hh := highest(types.Highs(window))
	ll := lowest(types.Lows(window))

	if hh == ll {
		return single(-50), nil
	}

	return single(-100 * (hh - window[len(window)-1].Close) / (hh - ll)), nil
}

// CCI is the Commodity Channel Index over the typical price.
type CCI struct {
	period int
}

// NewCCI creates a new CCI indicator with default configuration.
func NewCCI() Indicator {
	return &CCI{period: 20}
}

func (c *CCI) Name() types.IndicatorType { return types.IndicatorTypeCCI }

func (c *CCI) Components() []string { return []string{ValueKey} }

// Config configures the CCI indicator. Expected parameters: period (int).
func (c *CCI) Config(params ...any) error {
	return configPeriod(c.Name(), params, &c.period)
}

func (c *CCI) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(c.Name(), data, c.period); err != nil {
		return nil, err
	}

	window := data[len(data)-c.period:]
	typical := make([]float64, len(window))

	for i, bar := range window {
		typical[i] = (bar.High + bar.Low + bar.Close) / 3
	}

	avg := mean(typical)

	var deviation float64
	for _, tp := range typical {
		deviation += math.Abs(tp - avg)
	}

	deviation /= float64(len(typical))

	if deviation == 0 {
		return single(0), nil
	}

	return single((typical[len(typical)-1] - avg) / (0.015 * deviation)), nil
}
