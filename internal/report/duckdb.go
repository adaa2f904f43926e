package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

const (
	backtestReportsTable     = "backtest_reports"
	compositeDecisionsTable  = "composite_decisions"
	compositeDecisionsMarker = "composite"
)

// DuckDBSink stores reports in a DuckDB database file.
type DuckDBSink struct {
	db     *sql.DB
	sq     squirrel.StatementBuilderType
	logger *logger.Logger
}

// NewDuckDBSink opens (or creates) the database at path and creates the report tables.
// Use ":memory:" for a throwaway database.
func NewDuckDBSink(path string, log *logger.Logger) (*DuckDBSink, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to open report database", err)
	}

	sink := &DuckDBSink{
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: log,
	}

	if err := sink.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return sink, nil
}

func (s *DuckDBSink) initialize() error {
	// The key columns are not declared as a primary key: replacing a row deletes and
	// re-inserts it within one transaction.
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS backtest_reports (
			id TEXT,
			symbol TEXT,
			strategy TEXT,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			created_at TIMESTAMP,
			initial_balance DOUBLE,
			final_value DOUBLE,
			total_return DOUBLE,
			number_of_trades INTEGER,
			position_size INTEGER,
			stop_loss DOUBLE,
			buy_and_hold_return DOUBLE,
			max_equity_drawdown DOUBLE,
			trades TEXT,
			risk_metrics TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to create backtest_reports table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS composite_decisions (
			id TEXT,
			symbol TEXT,
			strategy TEXT,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			created_at TIMESTAMP,
			final_signal TEXT,
			composite_score DOUBLE,
			hybrid_score DOUBLE,
			weight_source TEXT,
			signals TEXT,
			weights TEXT,
			risk_metrics TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to create composite_decisions table", err)
	}

	return nil
}

// WriteBacktestReports implements ReportSink. All reports are written in one transaction.
func (s *DuckDBSink) WriteBacktestReports(ctx context.Context, reports []types.BacktestReport) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to begin transaction", err)
	}

	for _, report := range reports {
		if err := s.replaceReport(ctx, tx, report); err != nil {
			tx.Rollback()

			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to commit backtest reports", err)
	}

	s.logger.Debug("Stored backtest reports", zap.Int("count", len(reports)))

	return nil
}

func (s *DuckDBSink) replaceReport(ctx context.Context, tx *sql.Tx, report types.BacktestReport) error {
	trades, err := json.Marshal(report.Trades)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to encode trades of %s", report.Key())
	}

	metrics, err := encodeMetrics(report.RiskMetrics)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to encode risk metrics of %s", report.Key())
	}

	deleteQuery, args, err := s.sq.
		Delete(backtestReportsTable).
		Where(squirrel.Eq{
			"symbol":     report.Symbol,
			"strategy":   string(report.Strategy),
			"start_date": report.Start,
			"end_date":   report.End,
		}).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to build delete query", err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to replace report %s", report.Key())
	}

	id := report.ID
	if id == "" {
		id = uuid.New().String()
	}

	insertQuery, args, err := s.sq.
		Insert(backtestReportsTable).
		Columns(
			"id", "symbol", "strategy", "start_date", "end_date", "created_at",
			"initial_balance", "final_value", "total_return", "number_of_trades",
			"position_size", "stop_loss", "buy_and_hold_return", "max_equity_drawdown",
			"trades", "risk_metrics",
		).
		Values(
			id, report.Symbol, string(report.Strategy), report.Start, report.End, report.Timestamp,
			report.InitialBalance, report.FinalValue, report.TotalReturn, report.NumberOfTrades,
			report.PositionSize, report.StopLoss, report.BuyAndHoldReturn, report.MaxEquityDrawdown,
			string(trades), metrics,
		).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to build insert query", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to insert report %s", report.Key())
	}

	return nil
}

// WriteDecision implements ReportSink.
func (s *DuckDBSink) WriteDecision(ctx context.Context, decision types.CompositeDecision) error {
	signals, err := json.Marshal(decision.Signals)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to encode signals of %s", decision.Key())
	}

	weights, err := json.Marshal(decision.Weights)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to encode weights of %s", decision.Key())
	}

	metrics, err := encodeMetrics(decision.RiskMetrics)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to encode risk metrics of %s", decision.Key())
	}

	hybrid := sql.NullFloat64{}
	if decision.HybridScore.IsSome() {
		hybrid = sql.NullFloat64{Float64: decision.HybridScore.Unwrap(), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to begin transaction", err)
	}

	deleteQuery, args, err := s.sq.
		Delete(compositeDecisionsTable).
		Where(squirrel.Eq{
			"symbol":     decision.Symbol,
			"strategy":   compositeDecisionsMarker,
			"start_date": decision.Start,
			"end_date":   decision.End,
		}).
		ToSql()
	if err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to build delete query", err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		tx.Rollback()

		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to replace decision %s", decision.Key())
	}

	insertQuery, args, err := s.sq.
		Insert(compositeDecisionsTable).
		Columns(
			"id", "symbol", "strategy", "start_date", "end_date", "created_at",
			"final_signal", "composite_score", "hybrid_score", "weight_source",
			"signals", "weights", "risk_metrics",
		).
		Values(
			uuid.New().String(), decision.Symbol, compositeDecisionsMarker, decision.Start, decision.End, decision.Timestamp,
			string(decision.FinalSignal), decision.CompositeScore, hybrid, string(decision.WeightSource),
			string(signals), string(weights), metrics,
		).
		ToSql()
	if err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to build insert query", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
		tx.Rollback()

		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to insert decision %s", decision.Key())
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to commit decision", err)
	}

	s.logger.Debug("Stored composite decision", zap.String("key", decision.Key()))

	return nil
}

// Close implements ReportSink.
func (s *DuckDBSink) Close() error {
	return s.db.Close()
}

// encodeMetrics writes the available metrics as a JSON object. Non-finite values are dropped.
func encodeMetrics(metrics types.RiskMetrics) (string, error) {
	values := metrics.ToMap()
	for key, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			delete(values, key)
		}
	}

	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
