package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// ADLine is the cumulative accumulation/distribution line.
type ADLine struct{}

// NewADLine creates a new accumulation/distribution line indicator.
func NewADLine() Indicator {
	return &ADLine{}
}

func (a *ADLine) Name() types.IndicatorType { return types.IndicatorTypeADLine }

func (a *ADLine) Components() []string { return []string{ValueKey} }

// Config accepts no parameters.
func (a *ADLine) Config(params ...any) error {
	return tooManyParams(a.Name(), params, 0)
}

// Calculate sums the money flow volume over the whole series. Bars with no range contribute nothing.
func (a *ADLine) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(a.Name(), data, 1); err != nil {
		return nil, err
	}

	var line float64

	for _, bar := range data {
		spread := bar.High - bar.Low
		if spread == 0 {
			continue
		}

		multiplier := ((bar.Close - bar.Low) - (bar.High - bar.Close)) / spread
		line += multiplier * bar.Volume
	}

	return single(line), nil
}

// OBV is on-balance volume.
type OBV struct{}

// NewOBV creates a new on-balance volume indicator.
func NewOBV() Indicator {
	return &OBV{}
}

func (o *OBV) Name() types.IndicatorType { return types.IndicatorTypeOBV }

func (o *OBV) Components() []string { return []string{ValueKey} }

// Config accepts no parameters.
func (o *OBV) Config(params ...any) error {
	return tooManyParams(o.Name(), params, 0)
}

func (o *OBV) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(o.Name(), data, 2); err != nil {
		return nil, err
	}

	var obv float64

	for i := 1; i < len(data); i++ {
		switch {
		case data[i].Close > data[i-1].Close:
			obv += data[i].Volume
		case data[i].Close < data[i-1].Close:
			obv -= data[i].Volume
		}
	}

	return single(obv), nil
}
