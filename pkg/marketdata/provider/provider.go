// Package provider downloads OHLCV bars from remote market data services.
package provider

import (
	"context"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// OnDownloadProgress reports download progress. It may be nil.
type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// GetPrices fetches daily bars directly, without a writer.
	marketdata.PriceProvider
	// ConfigWriter configures the writer used by Download.
	ConfigWriter(writer writer.MarketDataWriter)
	// Download downloads the bars for the given ticker and date range into the configured writer
	// and returns the finalized output path. The context can be used to cancel the download.
	// example:
	// Download(ctx, "AAPL", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), 1, models.Day, onProgress)
	Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error)
}

// NewMarketDataProvider creates a provider by type. apiKey is ignored by providers that need none.
func NewMarketDataProvider(providerType ProviderType, apiKey string, log *logger.Logger) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient(log)
	case ProviderPolygon:
		return NewPolygonClient(apiKey, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

func reportProgress(onProgress OnDownloadProgress, current float64, total float64, message string) {
	if onProgress != nil {
		onProgress(current, total, message)
	}
}

// emitFunc receives every fetched bar in time order.
type emitFunc func(data types.MarketData) error

// downloadInto runs fetch against the writer and finalizes it. The writer is always closed.
func downloadInto(w writer.MarketDataWriter, log *logger.Logger, ticker string, fetch func(emit emitFunc) (int, error)) (path string, err error) {
	if w == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "no writer configured, call ConfigWriter first")
	}

	if err := w.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	defer func() {
		if cerr := w.Close(); cerr != nil {
			if err == nil {
				err = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "error closing writer", cerr)
			} else {
				log.Warn("Error closing writer after another error", zap.Error(cerr))
			}
		}
	}()

	count, err := fetch(w.Write)
	if err != nil {
		return "", err
	}

	path, err = w.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	log.Info("Finished download",
		zap.String("ticker", ticker),
		zap.Int("bars", count),
		zap.String("path", path),
	)

	return path, nil
}

// collectPrices runs fetch into memory. An empty result is a no data error.
func collectPrices(symbol string, start time.Time, end time.Time, fetch func(emit emitFunc) (int, error)) ([]types.MarketData, error) {
	var bars []types.MarketData

	_, err := fetch(func(data types.MarketData) error {
		bars = append(bars, data)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars for %s between %s and %s",
			symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	return bars, nil
}
