package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/risk"
)

const defaultInitialCapital = 10000

type BacktestEngineV1Config struct {
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting cash of every run,minimum=0,default=10000"`
	Broker         commission_fee.Broker      `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time overriding the request"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time overriding the request"`
	// BenchmarkSymbol feeds the benchmark-relative risk metrics of the report
	BenchmarkSymbol string      `yaml:"benchmark_symbol" json:"benchmark_symbol" jsonschema:"title=Benchmark Symbol,description=Symbol the beta and alpha of the report are measured against"`
	Risk            risk.Config `yaml:"risk" json:"risk" jsonschema:"title=Risk,description=Risk parameters for the stop-loss and position size"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		InitialCapital  *float64              `yaml:"initial_capital"`
		Broker          commission_fee.Broker `yaml:"broker"`
		StartTime       *time.Time            `yaml:"start_time"`
		EndTime         *time.Time            `yaml:"end_time"`
		BenchmarkSymbol string                `yaml:"benchmark_symbol"`
		Risk            risk.Config           `yaml:"risk"`
	}

	config := Config{Risk: risk.DefaultConfig()}
	if err := unmarshal(&config); err != nil {
		return err
	}

	*c = EmptyConfig()

	if config.InitialCapital != nil {
		c.InitialCapital = *config.InitialCapital
	}

	if config.Broker != "" {
		c.Broker = config.Broker
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	c.BenchmarkSymbol = config.BenchmarkSymbol
	c.Risk = config.Risk

	return nil
}

// SchemaMapper describes the optional times and the broker enum, which reflection cannot.
func SchemaMapper(t reflect.Type) *jsonschema.Schema {
	if t.String() == "optional.Option[time.Time]" {
		return &jsonschema.Schema{
			Type:   "string",
			Format: "date-time",
		}
	}

	if strings.Contains(t.String(), "commission_fee.Broker") {
		return &jsonschema.Schema{
			Type: "string",
			Enum: commission_fee.AllBrokers,
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper:                     SchemaMapper,
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital:  defaultInitialCapital,
		Broker:          commission_fee.BrokerZero,
		StartTime:       optional.None[time.Time](),
		EndTime:         optional.None[time.Time](),
		BenchmarkSymbol: "",
		Risk:            risk.DefaultConfig(),
	}
}
