// Package config holds the application configuration loaded from YAML.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-quant/internal/advisor"
	engine "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-quant/internal/optimizer"
	"github.com/rxtech-lab/argo-quant/internal/risk"
	"github.com/rxtech-lab/argo-quant/internal/strategy"
	"github.com/rxtech-lab/argo-quant/internal/trace"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DataProvider selects where price history is read from.
type DataProvider string

const (
	DataProviderDuckDB  DataProvider = "duckdb"
	DataProviderPolygon DataProvider = "polygon"
	DataProviderBinance DataProvider = "binance"
)

// ReportType selects the report sink.
type ReportType string

const (
	ReportNone   ReportType = "none"
	ReportDuckDB ReportType = "duckdb"
	ReportYAML   ReportType = "yaml"
)

type Log struct {
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info"`
}

// Data configures the price, benchmark, volatility index and sentiment inputs.
type Data struct {
	Provider DataProvider `yaml:"provider" json:"provider" validate:"required,oneof=duckdb polygon binance" jsonschema:"title=Provider,enum=duckdb,enum=polygon,enum=binance,default=duckdb"`
	// Path is the parquet file or glob read by the duckdb provider.
	Path string `yaml:"path" json:"path" validate:"required_if=Provider duckdb" jsonschema:"title=Path,description=Parquet file or glob read by the duckdb provider"`
	// Interval aggregates stored bars on read. Empty reads them as stored.
	Interval              string             `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Bar interval the duckdb provider aggregates to"`
	BenchmarkSymbol       string             `yaml:"benchmark_symbol" json:"benchmark_symbol" validate:"required" jsonschema:"title=Benchmark Symbol,default=SPY"`
	PairSymbol            string             `yaml:"pair_symbol" json:"pair_symbol" jsonschema:"title=Pair Symbol,description=Second leg of the pair trading strategy"`
	VolatilityIndexSymbol string             `yaml:"volatility_index_symbol" json:"volatility_index_symbol" jsonschema:"title=Volatility Index Symbol,description=Symbol whose latest close is the volatility index"`
	VolatilityIndex       float64            `yaml:"volatility_index" json:"volatility_index" validate:"gte=0" jsonschema:"title=Volatility Index,description=Static volatility index used without a symbol,default=0"`
	Sentiment             map[string]float64 `yaml:"sentiment" json:"sentiment" validate:"dive,gte=-1,lte=1" jsonschema:"title=Sentiment,description=Sentiment score per symbol in [-1 1]"`
	PolygonAPIKeyEnv      string             `yaml:"polygon_api_key_env" json:"polygon_api_key_env" jsonschema:"title=Polygon API Key Env,default=POLYGON_API_KEY"`
	PolygonAPIKey         string             `yaml:"-" json:"-"`
}

type Report struct {
	Type ReportType `yaml:"type" json:"type" validate:"oneof=none duckdb yaml" jsonschema:"title=Type,enum=none,enum=duckdb,enum=yaml,default=none"`
	// Path is the database file of the duckdb sink or the directory of the yaml sink.
	Path string `yaml:"path" json:"path" validate:"required_unless=Type none" jsonschema:"title=Path"`
}

// Config is the root configuration. The backtest risk parameters always mirror the risk section.
type Config struct {
	// Version is the release the file was written for. Newer minor versions are rejected.
	Version   string                        `yaml:"version" json:"version" jsonschema:"title=Version,description=Release the file was written for"`
	Log       Log                           `yaml:"log" json:"log"`
	Trace     trace.Config                  `yaml:"trace" json:"trace"`
	Data      Data                          `yaml:"data" json:"data"`
	Risk      risk.Config                   `yaml:"risk" json:"risk"`
	Strategy  strategy.Config               `yaml:"strategy" json:"strategy"`
	Optimizer optimizer.Config              `yaml:"optimizer" json:"optimizer"`
	Advisor   advisor.Config                `yaml:"advisor" json:"advisor"`
	Backtest  engine.BacktestEngineV1Config `yaml:"backtest" json:"backtest"`
	Report    Report                        `yaml:"report" json:"report"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Trace: trace.Config{
			Enabled:     false,
			ServiceName: "argo-quant",
			PrettyPrint: false,
		},
		Data: Data{
			Provider:         DataProviderDuckDB,
			Path:             "data/*.parquet",
			BenchmarkSymbol:  "SPY",
			Sentiment:        map[string]float64{},
			PolygonAPIKeyEnv: "POLYGON_API_KEY",
		},
		Risk:      risk.DefaultConfig(),
		Strategy:  strategy.DefaultConfig(),
		Optimizer: optimizer.DefaultConfig(),
		Advisor:   advisor.DefaultConfig(),
		Backtest:  engine.EmptyConfig(),
		Report:    Report{Type: ReportNone},
	}
}

// Load reads a YAML file from disk. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		config := Default()
		config.normalize()
		config.resolveSecrets()

		if err := config.Validate(); err != nil {
			return nil, err
		}

		return &config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "open config %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults, resolves secrets from the environment and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "decode yaml", err)
	}

	config.normalize()
	config.resolveSecrets()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Backtest.Risk = c.Risk

	if c.Backtest.BenchmarkSymbol == "" {
		c.Backtest.BenchmarkSymbol = c.Data.BenchmarkSymbol
	}

	if c.Data.Sentiment == nil {
		c.Data.Sentiment = map[string]float64{}
	}
}

// resolveSecrets reads API keys from the environment when the config does not carry them.
func (c *Config) resolveSecrets() {
	if c.Advisor.APIKey == "" && c.Advisor.APIKeyEnv != "" {
		c.Advisor.APIKey = os.Getenv(c.Advisor.APIKeyEnv)
	}

	if c.Data.PolygonAPIKey == "" && c.Data.PolygonAPIKeyEnv != "" {
		c.Data.PolygonAPIKey = os.Getenv(c.Data.PolygonAPIKeyEnv)
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if _, err := datasource.ParseInterval(c.Data.Interval); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Data.Provider == DataProviderPolygon && c.Data.PolygonAPIKey == "" {
		return errors.Newf(errors.ErrCodeMissingParameter, "polygon provider needs an API key in $%s", c.Data.PolygonAPIKeyEnv)
	}

	return nil
}

// GenerateSchemaJSON returns the JSON schema of the configuration file.
func GenerateSchemaJSON() (string, error) {
	return utils.GetSchemaFromConfig(&Config{}, utils.SchemaOptions{
		Title:       "argo-quant-config",
		Description: "Configuration schema for argo-quant",
		Mapper:      engine.SchemaMapper,
		Indent:      true,
	})
}
