package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// dateLayouts are tried in order when parsing start and end dates.
var dateLayouts = []string{time.RFC3339, time.DateOnly}

// BaseDownloadConfig contains common fields for all download configurations.
type BaseDownloadConfig struct {
	Ticker    string `json:"ticker" yaml:"ticker" jsonschema:"title=Ticker,description=The trading symbol to download data for (e.g. 2330 or BTCUSDT),required" validate:"required"`
	StartDate string `json:"startDate" yaml:"start_date" jsonschema:"title=Start Date,description=Start date as YYYY-MM-DD or RFC3339,required" validate:"required"`
	EndDate   string `json:"endDate" yaml:"end_date" jsonschema:"title=End Date,description=End date as YYYY-MM-DD or RFC3339,required" validate:"required"`
	Interval  string `json:"interval" yaml:"interval" jsonschema:"title=Interval,description=Bar interval,required,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=2h,enum=4h,enum=6h,enum=8h,enum=12h,enum=1d,enum=3d,enum=1w,enum=1M" validate:"required,oneof=1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d 3d 1w 1M"`
}

// PolygonDownloadConfig contains configuration for downloading from Polygon.io.
type PolygonDownloadConfig struct {
	BaseDownloadConfig `yaml:",inline"`

	ApiKey string `json:"apiKey" yaml:"api_key" jsonschema:"title=API Key,description=Polygon.io API key for authentication,required" validate:"required"`
}

// BinanceDownloadConfig contains configuration for downloading from Binance.
// The public market data API does not require authentication.
type BinanceDownloadConfig struct {
	BaseDownloadConfig `yaml:",inline"`
}

// DownloadConfig is implemented by every provider specific configuration.
type DownloadConfig interface {
	Validate() error
	ToDownloadParams() (DownloadParams, error)
	ToClientConfig(dataPath string) ClientConfig
}

func parseDate(field string, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid %s %q, expected YYYY-MM-DD or RFC3339", field, raw)
}

// Validate validates the BaseDownloadConfig fields.
func (c *BaseDownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	start, err := parseDate("startDate", c.StartDate)
	if err != nil {
		return err
	}

	end, err := parseDate("endDate", c.EndDate)
	if err != nil {
		return err
	}

	if !end.After(start) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "endDate %s must be after startDate %s", c.EndDate, c.StartDate)
	}

	return nil
}

// Validate validates the PolygonDownloadConfig.
func (c *PolygonDownloadConfig) Validate() error {
	if c.ApiKey == "" {
		return errors.New(errors.ErrCodeMissingParameter, "invalid config: apiKey is required")
	}

	return c.BaseDownloadConfig.Validate()
}

// ToDownloadParams converts a BaseDownloadConfig to DownloadParams.
func (c *BaseDownloadConfig) ToDownloadParams() (DownloadParams, error) {
	startDate, err := parseDate("startDate", c.StartDate)
	if err != nil {
		return DownloadParams{}, err
	}

	endDate, err := parseDate("endDate", c.EndDate)
	if err != nil {
		return DownloadParams{}, err
	}

	timespan, err := ParseTimespan(c.Interval)
	if err != nil {
		return DownloadParams{}, err
	}

	return DownloadParams{
		Ticker:     c.Ticker,
		StartDate:  startDate,
		EndDate:    endDate,
		Multiplier: timespan.Multiplier(),
		Timespan:   timespan.Timespan(),
	}, nil
}

func (c *PolygonDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  ProviderPolygon,
		WriterType:    WriterDuckDB,
		DataPath:      dataPath,
		PolygonApiKey: c.ApiKey,
	}
}

func (c *BinanceDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  ProviderBinance,
		WriterType:    WriterDuckDB,
		DataPath:      dataPath,
		PolygonApiKey: "",
	}
}

// ParseDownloadConfig parses and validates a JSON configuration for the given provider.
func ParseDownloadConfig(providerName string, jsonConfig []byte) (DownloadConfig, error) {
	var config DownloadConfig

	switch ProviderType(providerName) {
	case ProviderPolygon:
		config = &PolygonDownloadConfig{}
	case ProviderBinance:
		config = &BinanceDownloadConfig{}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	if err := json.Unmarshal(jsonConfig, config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
