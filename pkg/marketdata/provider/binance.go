package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/writer"
)

// binancePageLimit is the number of klines requested per call.
const binancePageLimit = 1000

// BinanceKlinesService is the subset of the binance klines service we use.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Limit(limit int) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient is the subset of the binance client we use.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceAPIAdapter struct {
	client *binance.Client
}

func (a *binanceAPIAdapter) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesAdapter{service: a.client.NewKlinesService()}
}

type binanceKlinesAdapter struct {
	service *binance.KlinesService
}

func (s *binanceKlinesAdapter) Symbol(symbol string) BinanceKlinesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *binanceKlinesAdapter) Interval(interval string) BinanceKlinesService {
	s.service = s.service.Interval(interval)

	return s
}

func (s *binanceKlinesAdapter) StartTime(startTime int64) BinanceKlinesService {
	s.service = s.service.StartTime(startTime)

	return s
}

func (s *binanceKlinesAdapter) EndTime(endTime int64) BinanceKlinesService {
	s.service = s.service.EndTime(endTime)

	return s
}

func (s *binanceKlinesAdapter) Limit(limit int) BinanceKlinesService {
	s.service = s.service.Limit(limit)

	return s
}

func (s *binanceKlinesAdapter) Do(ctx context.Context) ([]*binance.Kline, error) {
	return s.service.Do(ctx)
}

type BinanceClient struct {
	apiClient BinanceAPIClient
	writer    writer.MarketDataWriter
	logger    *logger.Logger
}

// NewBinanceClient creates a client for the public market data API, which needs no key.
func NewBinanceClient(log *logger.Logger) (Provider, error) {
	client := NewBinanceClientWithAPI(&binanceAPIAdapter{client: binance.NewClient("", "")})
	if log != nil {
		client.logger = log
	}

	return client, nil
}

// NewBinanceClientWithAPI creates a client over an existing API implementation.
func NewBinanceClientWithAPI(api BinanceAPIClient) *BinanceClient {
	return &BinanceClient{
		apiClient: api,
		writer:    nil,
		logger:    logger.NewNopLogger(),
	}
}

func (c *BinanceClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download implements Provider.
func (c *BinanceClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (string, error) {
	interval, err := convertTimespanToBinanceInterval(timespan, multiplier)
	if err != nil {
		return "", err
	}

	return downloadInto(c.writer, c.logger, ticker, func(emit emitFunc) (int, error) {
		return c.fetch(ctx, ticker, startDate, endDate, interval, emit, onProgress)
	})
}

// GetPrices implements marketdata.PriceProvider with daily klines.
func (c *BinanceClient) GetPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	return collectPrices(symbol, start, end, func(emit emitFunc) (int, error) {
		return c.fetch(ctx, symbol, start, end, "1d", emit, nil)
	})
}

// fetch pages through the klines using the close time of the last kline as the next start.
func (c *BinanceClient) fetch(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, interval string, emit emitFunc, onProgress OnDownloadProgress) (int, error) {
	startMillis := startDate.UnixMilli()
	endMillis := endDate.UnixMilli()
	total := float64(endMillis - startMillis)
	message := fmt.Sprintf("Downloading %s klines from Binance", ticker)

	count := 0
	current := startMillis

	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		klines, err := c.apiClient.NewKlinesService().
			Symbol(ticker).
			Interval(interval).
			StartTime(current).
			EndTime(endMillis).
			Limit(binancePageLimit).
			Do(ctx)
		if err != nil {
			return count, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err)
		}

		written, err := processKlines(emit, ticker, klines)
		count += written

		if err != nil {
			return count, err
		}

		if len(klines) == 0 {
			break
		}

		current = klines[len(klines)-1].CloseTime + 1

		reportProgress(onProgress, float64(min(current, endMillis)-startMillis), total, message)

		if len(klines) < binancePageLimit || current >= endMillis {
			break
		}
	}

	reportProgress(onProgress, total, total, message)

	return count, nil
}

// processKlines converts klines into bars and emits them. It returns the number emitted.
func processKlines(emit emitFunc, ticker string, klines []*binance.Kline) (int, error) {
	for i, k := range klines {
		values, err := parseKline(k)
		if err != nil {
			return i, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to parse %s kline at %d", ticker, k.OpenTime)
		}

		data := types.MarketData{
			Id:     "",
			Symbol: ticker,
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		}

		if err := emit(data); err != nil {
			return i, errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write market data", err)
		}
	}

	return len(klines), nil
}

// parseKline returns open, high, low, close and volume.
func parseKline(k *binance.Kline) ([5]float64, error) {
	var values [5]float64

	for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return values, err
		}

		values[i] = v
	}

	return values, nil
}

// convertTimespanToBinanceInterval converts the polygon timespan and multiplier to a Binance interval string.
// Binance intervals: 1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M
func convertTimespanToBinanceInterval(timespan models.Timespan, multiplier int) (string, error) {
	switch timespan {
	case models.Minute:
		return fmt.Sprintf("%dm", multiplier), nil
	case models.Hour:
		return fmt.Sprintf("%dh", multiplier), nil
	case models.Day:
		return fmt.Sprintf("%dd", multiplier), nil
	case models.Week:
		if multiplier == 1 {
			return "1w", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported weekly multiplier for Binance: %d", multiplier)
	case models.Month:
		if multiplier == 1 {
			return "1M", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported monthly multiplier for Binance: %d", multiplier)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported timespan for Binance: %s", timespan)
	}
}
