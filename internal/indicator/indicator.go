// Package indicator implements classic technical indicators over OHLCV series.
//
// Each indicator is a pure function of the input series and its configured
// parameters and reports only its latest fully computed value.
package indicator

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// ValueKey is the component name used by single-valued indicators.
const ValueKey = "value"

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator parameters (periods, multipliers)
	Config(params ...any) error
	// Components lists the keys of the value returned by Calculate
	Components() []string
	// Calculate returns the latest fully computed value over the series
	Calculate(data []types.MarketData) (types.IndicatorValue, error)
}

// NeutralValue is the all-zero value of an indicator, returned when it cannot be computed.
func NeutralValue(indicator Indicator) types.IndicatorValue {
	value := make(types.IndicatorValue, len(indicator.Components()))
	for _, component := range indicator.Components() {
		value[component] = 0
	}

	return value
}

func requireBars(name types.IndicatorType, data []types.MarketData, required int) error {
	if len(data) >= required {
		return nil
	}

	symbol := ""
	if len(data) > 0 {
		symbol = data[0].Symbol
	}

	return errors.NewInsufficientDataErrorf(required, len(data), symbol,
		"insufficient data for %s: required %d bars, got %d", name, required, len(data))
}

func single(v float64) types.IndicatorValue {
	return types.IndicatorValue{ValueKey: v}
}

// intParam reads a positive integer parameter. Whole float64 values are accepted since
// parameters often come from YAML or the command line.
func intParam(params []any, index int, name string) (int, error) {
	var value int

	switch v := params[index].(type) {
	case int:
		value = v
	case int64:
		value = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
		}

		value = int(v)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if value <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, value)
	}

	return value, nil
}

// floatParam reads a positive float parameter.
func floatParam(params []any, index int, name string) (float64, error) {
	var value float64

	switch v := params[index].(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected float64", name)
	}

	if !(value > 0) {
		return 0, errors.Newf(errors.ErrCodeInvalidMultiplier, "%s must be positive, got %v", name, value)
	}

	return value, nil
}

func tooManyParams(name types.IndicatorType, params []any, max int) error {
	if len(params) > max {
		return fmt.Errorf("%s Config expects at most %d parameters, got %d", name, max, len(params))
	}

	return nil
}
