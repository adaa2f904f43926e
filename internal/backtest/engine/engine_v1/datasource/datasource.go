package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// DataSource is a price provider backed by parquet files.
type DataSource interface {
	marketdata.PriceProvider
	// Initialize exposes the parquet file (or glob) at path as the market_data view
	Initialize(path string) error
	// GetAllSymbols returns every distinct symbol in the data, sorted
	GetAllSymbols() ([]string, error)
	// Count returns the number of bars of the symbol in the optional time range
	Count(symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
