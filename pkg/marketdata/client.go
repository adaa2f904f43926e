// Package marketdata downloads bars from a remote provider into parquet files
// that the backtest data source can read.
package marketdata

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/writer"
	"go.uber.org/zap"
)

type ProviderType = provider.ProviderType

const (
	ProviderPolygon = provider.ProviderPolygon
	ProviderBinance = provider.ProviderBinance
)

// WriterType defines the type of market data writer.
type WriterType string

const (
	WriterDuckDB WriterType = "duckdb"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  ProviderType `validate:"required,oneof=polygon binance"`
	WriterType    WriterType   `validate:"required,oneof=duckdb"`
	DataPath      string       `validate:"required"`
	PolygonApiKey string       `validate:"required_if=ProviderType polygon"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker     string          `validate:"required"`
	StartDate  time.Time       `validate:"required"`
	EndDate    time.Time       `validate:"required,gtfield=StartDate"`
	Multiplier int             `validate:"required,min=1"`
	Timespan   models.Timespan `validate:"required"`
}

// OutputFileName is TICKER_START_END_MULTIPLIER_TIMESPAN.parquet.
func (p DownloadParams) OutputFileName() string {
	return fmt.Sprintf("%s_%s_%s_%d_%s.parquet",
		p.Ticker,
		p.StartDate.Format("2006-01-02"),
		p.EndDate.Format("2006-01-02"),
		p.Multiplier,
		p.Timespan)
}

// Client downloads data from a provider and stores it with a writer.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
	newWriter  func(path string) writer.MarketDataWriter
	logger     *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, config.PolygonApiKey, log)
	if err != nil {
		return nil, err
	}

	return newClientWithProvider(config, marketProvider, onProgress, log), nil
}

func newClientWithProvider(config ClientConfig, p provider.Provider, onProgress provider.OnDownloadProgress, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:   p,
		config:     config,
		validate:   validator.New(),
		onProgress: onProgress,
		newWriter: func(path string) writer.MarketDataWriter {
			return writer.NewDuckDBWriter(path, log)
		},
		logger: log,
	}
}

// Download fetches the requested bars and returns the parquet path they were written to.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	outputPath := filepath.Join(c.config.DataPath, params.OutputFileName())
	c.provider.ConfigWriter(c.newWriter(outputPath))

	c.logger.Info("Starting market data download",
		zap.String("provider", string(c.config.ProviderType)),
		zap.String("ticker", params.Ticker),
		zap.Time("start", params.StartDate),
		zap.Time("end", params.EndDate),
	)

	path, err := c.provider.Download(
		ctx,
		params.Ticker,
		params.StartDate,
		params.EndDate,
		params.Multiplier,
		params.Timespan,
		c.onProgress,
	)
	if err != nil {
		return "", err
	}

	return path, nil
}

// GetPrices fetches daily bars straight from the provider without writing them.
func (c *Client) GetPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	return c.provider.GetPrices(ctx, symbol, start, end)
}
