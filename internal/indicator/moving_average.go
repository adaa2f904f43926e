package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// configPeriod applies a single optional period parameter.
func configPeriod(name types.IndicatorType, params []any, period *int) error {
	if err := tooManyParams(name, params, 1); err != nil {
		return err
	}

	if len(params) == 0 {
		return nil
	}

	value, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	*period = value

	return nil
}

// SMA is the simple moving average of closes.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator with default configuration.
func NewSMA() Indicator {
	return &SMA{period: 20}
}

func (s *SMA) Name() types.IndicatorType { return types.IndicatorTypeSMA }

func (s *SMA) Components() []string { return []string{ValueKey} }

// Config configures the SMA indicator. Expected parameters: period (int).
func (s *SMA) Config(params ...any) error {
	return configPeriod(s.Name(), params, &s.period)
}

func (s *SMA) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(s.Name(), data, s.period); err != nil {
		return nil, err
	}

	return single(mean(tail(types.Closes(data), s.period))), nil
}

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{period: 20}
}

func (e *EMA) Name() types.IndicatorType { return types.IndicatorTypeEMA }

func (e *EMA) Components() []string { return []string{ValueKey} }

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	return configPeriod(e.Name(), params, &e.period)
}

// Calculate seeds the average with the first close and requires at least one full period of bars.
func (e *EMA) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(e.Name(), data, e.period); err != nil {
		return nil, err
	}

	values := ewm(types.Closes(data), e.period)

	return single(values[len(values)-1]), nil
}

// VWMA is the volume weighted moving average of closes.
type VWMA struct {
	period int
}

// NewVWMA creates a new VWMA indicator with default configuration.
func NewVWMA() Indicator {
	return &VWMA{period: 20}
}

func (v *VWMA) Name() types.IndicatorType { return types.IndicatorTypeVWMA }

func (v *VWMA) Components() []string { return []string{ValueKey} }

// Config configures the VWMA indicator. Expected parameters: period (int).
func (v *VWMA) Config(params ...any) error {
	return configPeriod(v.Name(), params, &v.period)
}

func (v *VWMA) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(v.Name(), data, v.period); err != nil {
		return nil, err
	}

	window := data[len(data)-v.period:]

	var weighted, volume float64
	for _, bar := range window {
		weighted += bar.Close * bar.Volume
		volume += bar.Volume
	}

	if volume == 0 {
		return nil, fmt.Errorf("VWMA undefined: zero volume over the last %d bars", v.period)
	}

	return single(weighted / volume), nil
}
