package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// BollingerBands places bands a number of sample standard deviations around the SMA.
type BollingerBands struct {
	period int
	stdDev float64
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{period: 20, stdDev: 2}
}

func (b *BollingerBands) Name() types.IndicatorType { return types.IndicatorTypeBollingerBands }

func (b *BollingerBands) Components() []string { return []string{"upper", "middle", "lower"} }

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), std dev multiplier (float64).
func (b *BollingerBands) Config(params ...any) error {
	if err := tooManyParams(b.Name(), params, 2); err != nil {
		return err
	}

	if len(params) >= 1 {
		period, err := intParam(params, 0, "period")
		if err != nil {
			return err
		}

		b.period = period
	}

	if len(params) == 2 {
		stdDev, err := floatParam(params, 1, "std dev")
		if err != nil {
			return err
		}

		b.stdDev = stdDev
	}

	return nil
}

func (b *BollingerBands) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(b.Name(), data, b.period); err != nil {
		return nil, err
	}

	window := tail(types.Closes(data), b.period)
	middle := mean(window)
	std := sampleStd(window)

	return types.IndicatorValue{
		"upper":  middle + b.stdDev*std,
		"middle": middle,
		"lower":  middle - b.stdDev*std,
	}, nil
}

// ATR is the simple average of the true range.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{period: 14}
}

func (a *ATR) Name() types.IndicatorType { return types.IndicatorTypeATR }

func (a *ATR) Components() []string { return []string{ValueKey} }

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
	return configPeriod(a.Name(), params, &a.period)
}

func (a *ATR) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(a.Name(), data, a.period); err != nil {
		return nil, err
	}

	return single(averageTrueRange(data, a.period)), nil
}

func averageTrueRange(data []types.MarketData, period int) float64 {
	tr := trueRange(types.Highs(data), types.Lows(data), types.Closes(data))

	return mean(tail(tr, period))
}

// STD is the rolling sample standard deviation of closes.
type STD struct {
	period int
}

// NewSTD creates a new STD indicator with default configuration.
func NewSTD() Indicator {
	return &STD{period: 20}
}

func (s *STD) Name() types.IndicatorType { return types.IndicatorTypeSTD }

func (s *STD) Components() []string { return []string{ValueKey} }

// Config configures the STD indicator. Expected parameters: period (int).
func (s *STD) Config(params ...any) error {
	return configPeriod(s.Name(), params, &s.period)
}

func (s *STD) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	required := s.period
	if required < 2 {
		required = 2
	}

	if err := requireBars(s.Name(), data, required); err != nil {
		return nil, err
	}

	return single(sampleStd(tail(types.Closes(data), s.period))), nil
}

// DonchianChannel is the highest high and lowest low over the period.
type DonchianChannel struct {
	period int
}

// NewDonchianChannel creates a new Donchian Channel indicator with default configuration.
func NewDonchianChannel() Indicator {
	return &DonchianChannel{period: 20}
}

func (d *DonchianChannel) Name() types.IndicatorType { return types.IndicatorTypeDonchianChannel }

func (d *DonchianChannel) Components() []string { return []string{"upper", "lower"} }

// Config configures the Donchian Channel indicator. Expected parameters: period (int).
func (d *DonchianChannel) Config(params ...any) error {
	return configPeriod(d.Name(), params, &d.period)
}

func (d *DonchianChannel) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(d.Name(), data, d.period); err != nil {
		return nil, err
	}

	window := data[len(data)-d.period:]

	return types.IndicatorValue{
		"upper": highest(types.Highs(window)),
		"lower": lowest(types.Lows(window)),
	}, nil
}

// KeltnerChannel places bands a multiple of the ATR around the EMA of closes.
type KeltnerChannel struct {
	period     int
	atrPeriod  int
	multiplier float64
}

// NewKeltnerChannel creates a new Keltner Channel indicator with default configuration.
func NewKeltnerChannel() Indicator {
	return &KeltnerChannel{period: 20, atrPeriod: 10, multiplier: 2}
}

func (k *KeltnerChannel) Name() types.IndicatorType { return types.IndicatorTypeKeltnerChannel }

func (k *KeltnerChannel) Components() []string { return []string{"upper", "middle", "lower"} }

// Config configures the Keltner Channel indicator.
// Expected parameters: period (int), atr period (int), multiplier (float64).
func (k *KeltnerChannel) Config(params ...any) error {
	if err := tooManyParams(k.Name(), params, 3); err != nil {
		return err
	}

	if len(params) >= 1 {
		period, err := intParam(params, 0, "period")
		if err != nil {
			return err
		}

		k.period = period
	}

	if len(params) >= 2 {
		atrPeriod, err := intParam(params, 1, "atr period")
		if err != nil {
			return err
		}

		k.atrPeriod = atrPeriod
	}

	if len(params) == 3 {
		multiplier, err := floatParam(params, 2, "multiplier")
		if err != nil {
			return err
		}

		k.multiplier = multiplier
	}

	return nil
}

func (k *KeltnerChannel) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	required := max(k.period, k.atrPeriod)
	if err := requireBars(k.Name(), data, required); err != nil {
		return nil, err
	}

	ema := ewm(types.Closes(data), k.period)
	middle := ema[len(ema)-1]
	atr := averageTrueRange(data, k.atrPeriod)

	return types.IndicatorValue{
		"upper":  middle + k.multiplier*atr,
		"middle": middle,
		"lower":  middle - k.multiplier*atr,
	}, nil
}
