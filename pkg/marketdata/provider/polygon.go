package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/writer"
)

const polygonPageLimit = 50000

// PolygonAggsIterator is the subset of the polygon aggregates iterator we use.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the polygon REST client we use.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient PolygonAPIClient
	writer    writer.MarketDataWriter
	logger    *logger.Logger
}

func NewPolygonClient(apiKey string, log *logger.Logger) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "apiKey is required")
	}

	client := NewPolygonClientWithAPI(&polygonAPIAdapter{client: polygon.New(apiKey)})
	if log != nil {
		client.logger = log
	}

	return client, nil
}

// NewPolygonClientWithAPI creates a client over an existing API implementation.
func NewPolygonClientWithAPI(api PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient: api,
		writer:    nil,
		logger:    logger.NewNopLogger(),
	}
}

func (c *PolygonClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download implements Provider.
func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (string, error) {
	return downloadInto(c.writer, c.logger, ticker, func(emit emitFunc) (int, error) {
		return c.fetch(ctx, ticker, startDate, endDate, multiplier, timespan, emit, onProgress)
	})
}

// GetPrices implements marketdata.PriceProvider with daily aggregates.
func (c *PolygonClient) GetPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	return collectPrices(symbol, start, end, func(emit emitFunc) (int, error) {
		return c.fetch(ctx, symbol, start, end, 1, models.Day, emit, nil)
	})
}

func (c *PolygonClient) fetch(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, emit emitFunc, onProgress OnDownloadProgress) (int, error) {
	totalDays := endDate.Sub(startDate).Hours()/24 + 1
	message := fmt.Sprintf("Downloading %s", ticker)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(polygonPageLimit)

	iter := c.apiClient.ListAggs(ctx, params)

	count := 0

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		agg := iter.Item()
		barTime := time.Time(agg.Timestamp).UTC()

		err := emit(types.MarketData{
			Id:     "",
			Symbol: ticker,
			Time:   barTime,
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
		if err != nil {
			return count, errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write data", err)
		}

		count++

		reportProgress(onProgress, barTime.Sub(startDate).Hours()/24, totalDays, message)
	}

	if err := iter.Err(); err != nil {
		return count, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", err)
	}

	reportProgress(onProgress, totalDays, totalDays, message)

	return count, nil
}
