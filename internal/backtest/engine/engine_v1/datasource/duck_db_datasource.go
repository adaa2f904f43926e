package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

type DuckDBDataSource struct {
	db       *sql.DB
	logger   *logger.Logger
	sq       squirrel.StatementBuilderType
	interval optional.Option[Interval]
}

// Option configures a DuckDBDataSource.
type Option func(*DuckDBDataSource)

// WithInterval aggregates the stored bars into buckets of the given interval on read.
func WithInterval(interval Interval) Option {
	return func(d *DuckDBDataSource) {
		if interval != "" {
			d.interval = optional.Some(interval)
		}
	}
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// The path parameter specifies the DuckDB database file location.
// This is distinct from Initialize() which loads market data into the database.
func NewDataSource(path string, logger *logger.Logger, opts ...Option) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	_, err = db.Exec(`
		SET memory_limit='2GB';
		SET threads=4;
	`)
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to set DuckDB optimizations: %w", err)
	}

	d := &DuckDBDataSource{
		db:       db,
		logger:   logger,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		interval: optional.None[Interval](),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.interval.IsSome() {
		if _, err := d.interval.Unwrap().Minutes(); err != nil {
			db.Close()

			return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid bar interval", err)
		}
	}

	return d, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	// Squirrel does not build CREATE VIEW statements
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT time, symbol, open, high, low, close, volume FROM read_parquet('%s');
	`, strings.ReplaceAll(path, "'", "''"))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load market data from %s", path)
	}

	return nil
}

// GetPrices implements marketdata.PriceProvider.
func (d *DuckDBDataSource) GetPrices(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	query, args, err := d.buildGetPricesQuery(symbol, start, end)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}
	defer rows.Close()

	result := make([]types.MarketData, 0, 256)

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
			symbolResult                   string
		)

		if err := rows.Scan(&timestamp, &symbolResult, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		result = append(result, types.MarketData{
			Id:     "",
			Symbol: symbolResult,
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no market data for %s between %s and %s",
			symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	d.logger.Debug("Read market data",
		zap.String("symbol", symbol),
		zap.Int("bars", len(result)),
	)

	return result, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	conditions := squirrel.And{squirrel.Eq{"symbol": symbol}}

	if start.IsSome() {
		conditions = append(conditions, squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		conditions = append(conditions, squirrel.LtOrEq{"time": end.Unwrap()})
	}

	query, args, err := d.sq.Select("COUNT(*)").From("market_data").Where(conditions).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	return count, nil
}

// GetAllSymbols returns all distinct symbols from the market data.
func (d *DuckDBDataSource) GetAllSymbols() ([]string, error) {
	rows, err := d.db.Query("SELECT DISTINCT symbol FROM market_data ORDER BY symbol")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to get symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}

		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}

// buildGetPricesQuery constructs the SQL query for GetPrices.
func (d *DuckDBDataSource) buildGetPricesQuery(symbol string, start time.Time, end time.Time) (string, []interface{}, error) {
	if d.interval.IsNone() {
		query, args, err := d.sq.
			Select("time", "symbol", "open", "high", "low", "close", "volume").
			From("market_data").
			Where(squirrel.And{
				squirrel.Eq{"symbol": symbol},
				squirrel.GtOrEq{"time": start},
				squirrel.LtOrEq{"time": end},
			}).
			OrderBy("time ASC").
			ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("failed to build query: %w", err)
		}

		return query, args, nil
	}

	minutes, err := d.interval.Unwrap().Minutes()
	if err != nil {
		return "", nil, err
	}

	// Squirrel has no support for window functions
	query := fmt.Sprintf(`
		WITH time_buckets AS MATERIALIZED (
			SELECT
				time_bucket(INTERVAL '%d minutes', time) as bucket_time,
				symbol,
				FIRST_VALUE(open) OVER (PARTITION BY time_bucket(INTERVAL '%d minutes', time), symbol ORDER BY time) as open,
				MAX(high) OVER (PARTITION BY time_bucket(INTERVAL '%d minutes', time), symbol) as high,
				MIN(low) OVER (PARTITION BY time_bucket(INTERVAL '%d minutes', time), symbol) as low,
				LAST_VALUE(close) OVER (PARTITION BY time_bucket(INTERVAL '%d minutes', time), symbol ORDER BY time ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING) as close,
				SUM(volume) OVER (PARTITION BY time_bucket(INTERVAL '%d minutes', time), symbol) as volume
			FROM market_data
			WHERE symbol = $1 AND time >= $2 AND time <= $3
		)
		SELECT DISTINCT
			bucket_time as time,
			symbol,
			open,
			high,
			low,
			close,
			volume
		FROM time_buckets
		ORDER BY bucket_time ASC
	`, minutes, minutes, minutes, minutes, minutes, minutes)

	return query, []interface{}{symbol, start, end}, nil
}
