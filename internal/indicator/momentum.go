package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Momentum is the close minus the close period bars earlier.
type Momentum struct {
	period int
}

// NewMomentum creates a new Momentum indicator with default configuration.
func NewMomentum() Indicator {
	return &Momentum{period: 10}
}

func (m *Momentum) Name() types.IndicatorType { return types.IndicatorTypeMomentum }

func (m *Momentum) Components() []string { return []string{ValueKey} }

// Config configures the Momentum indicator. Expected parameters: period (int).
func (m *Momentum) Config(params ...any) error {
	return configPeriod(m.Name(), params, &m.period)
}

func (m *Momentum) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(m.Name(), data, m.period+1); err != nil {
		return nil, err
	}

	last := len(data) - 1

	return single(data[last].Close - data[last-m.period].Close), nil
}

// ROC is the rate of change in percent over the period.
type ROC struct {
	period int
}

// NewROC creates a new ROC indicator with default configuration.
func NewROC() Indicator {
	return &ROC{period: 10}
}

func (r *ROC) Name() types.IndicatorType { return types.IndicatorTypeROC }

func (r *ROC) Components() []string { return []string{ValueKey} }

// Config configures the ROC indicator. Expected parameters: period (int).
func (r *ROC) Config(params ...any) error {
	return configPeriod(r.Name(), params, &r.period)
}

func (r *ROC) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(r.Name(), data, r.period+1); err != nil {
		return nil, err
	}

	last := len(data) - 1
	base := data[last-r.period].Close

	if base == 0 {
		return nil, fmt.Errorf("ROC undefined: reference close is zero")
	}

	return single((data[last].Close - base) / base * 100), nil
}
