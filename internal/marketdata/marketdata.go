// Package marketdata defines the collaborators that feed prices, sentiment and the
// volatility index into the engine.
package marketdata

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// PriceProvider supplies daily bars for one instrument.
type PriceProvider interface {
	// GetPrices returns the bars of symbol with start <= time <= end ordered by time.
	// When nothing matches it returns an error with code ErrCodeNoDataFound.
	GetPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error)
}

// SentimentProvider supplies a sentiment score in [-1, 1] per instrument and day.
type SentimentProvider interface {
	// GetSentiment returns an error with code ErrCodeNoDataFound when no score is known.
	GetSentiment(ctx context.Context, symbol string, date time.Time) (float64, error)
}

// VolatilityIndexProvider supplies the market volatility index level for a day.
type VolatilityIndexProvider interface {
	GetVolatilityIndex(ctx context.Context, date time.Time) (float64, error)
}

// PriceProviderFunc adapts a function to PriceProvider.
type PriceProviderFunc func(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error)

func (f PriceProviderFunc) GetPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	return f(ctx, symbol, start, end)
}
