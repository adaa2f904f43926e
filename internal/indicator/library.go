package indicator

import (
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// aliases maps normalized spellings to indicator types.
var aliases = map[string]types.IndicatorType{
	"ma":                         types.IndicatorTypeSMA,
	"simple_moving_average":      types.IndicatorTypeSMA,
	"exponential_moving_average": types.IndicatorTypeEMA,
	"stochastic_oscillator":      types.IndicatorTypeStochastic,
	"kd":                         types.IndicatorTypeStochastic,
	"bollinger":                  types.IndicatorTypeBollingerBands,
	"bbands":                     types.IndicatorTypeBollingerBands,
	"williams_%r":                types.IndicatorTypeWilliamsR,
	"williamsr":                  types.IndicatorTypeWilliamsR,
	"ad":                         types.IndicatorTypeADLine,
	"accumulation_distribution":  types.IndicatorTypeADLine,
	"donchian":                   types.IndicatorTypeDonchianChannel,
	"keltner":                    types.IndicatorTypeKeltnerChannel,
	"parabolic_sar":              types.IndicatorTypeParabolicSAR,
	"sar":                        types.IndicatorTypeParabolicSAR,
	"standard_deviation":         types.IndicatorTypeSTD,
}

// ParseIndicatorType resolves a user supplied indicator name. Matching ignores case
// and treats spaces and hyphens as underscores, so "Bollinger_Bands", "PSAR" and "AD_Line" all resolve.
func ParseIndicatorType(name string) (types.IndicatorType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	for _, t := range types.AllIndicatorTypes() {
		if string(t) == normalized {
			return t, true
		}
	}

	t, ok := aliases[normalized]

	return t, ok
}

// Library is the caller facing entry point of the indicator registry. It never fails:
// unknown names, bad parameters and short series are logged and yield a neutral value.
type Library struct {
	registry IndicatorRegistry
	log      *logger.Logger
}

// NewLibrary creates a library over the given registry.
func NewLibrary(registry IndicatorRegistry, log *logger.Logger) *Library {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Library{
		registry: registry,
		log:      log,
	}
}

// Registry returns the underlying registry.
func (l *Library) Registry() IndicatorRegistry {
	return l.registry
}

// Calculate computes the named indicator over the series. params override the defaults positionally.
func (l *Library) Calculate(name string, data []types.MarketData, params ...any) types.IndicatorValue {
	value, err := l.TryCalculate(name, data, params...)
	if err == nil {
		return value
	}

	fields := []zap.Field{
		zap.String("indicator", name),
		zap.Int("bars", len(data)),
		zap.Error(err),
	}

	switch {
	case errors.IsInsufficientDataError(err):
		l.log.Warn("Insufficient data for indicator", fields...)
	default:
		l.log.Error("Failed to calculate indicator", fields...)
	}

	return value
}

// TryCalculate is Calculate with the error surfaced. On error the returned value is the neutral value,
// or an empty value when the indicator is unknown.
func (l *Library) TryCalculate(name string, data []types.MarketData, params ...any) (types.IndicatorValue, error) {
	indicatorType, ok := ParseIndicatorType(name)
	if !ok {
		return types.IndicatorValue{}, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %q not implemented", name)
	}

	ind, err := l.registry.GetIndicator(indicatorType)
	if err != nil {
		return types.IndicatorValue{}, err
	}

	if len(params) > 0 {
		if err := ind.Config(params...); err != nil {
			return NeutralValue(ind), err
		}
	}

	value, err := ind.Calculate(data)
	if err != nil {
		return NeutralValue(ind), err
	}

	return value, nil
}

// CalculateAll computes every registered indicator with default parameters.
func (l *Library) CalculateAll(data []types.MarketData) map[types.IndicatorType]types.IndicatorValue {
	out := make(map[types.IndicatorType]types.IndicatorValue)
	for _, name := range l.registry.ListIndicators() {
		out[name] = l.Calculate(string(name), data)
	}

	return out
}
