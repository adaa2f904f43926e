package marketdata

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// StaticVolatilityIndex always reports the same level.
type StaticVolatilityIndex float64

func (v StaticVolatilityIndex) GetVolatilityIndex(context.Context, time.Time) (float64, error) {
	return float64(v), nil
}

// PriceVolatilityIndex reads the index as the latest close of an index symbol at or before the date.
type PriceVolatilityIndex struct {
	provider PriceProvider
	symbol   string
	lookback time.Duration
}

// NewPriceVolatilityIndex creates the provider. Closes older than lookback before the date are ignored.
func NewPriceVolatilityIndex(provider PriceProvider, symbol string, lookback time.Duration) *PriceVolatilityIndex {
	if lookback <= 0 {
		lookback = 7 * 24 * time.Hour
	}

	return &PriceVolatilityIndex{
		provider: provider,
		symbol:   symbol,
		lookback: lookback,
	}
}

func (v *PriceVolatilityIndex) GetVolatilityIndex(ctx context.Context, date time.Time) (float64, error) {
	data, err := v.provider.GetPrices(ctx, v.symbol, date.Add(-v.lookback), date)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeNoDataFound, err, "failed to read volatility index %s", v.symbol)
	}

	if len(data) == 0 {
		return 0, errors.Newf(errors.ErrCodeNoDataFound, "no volatility index data for %s", v.symbol)
	}

	return data[len(data)-1].Close, nil
}
