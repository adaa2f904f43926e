// Package report persists backtest reports and composite decisions.
//
// Sinks are write-only. Writing a document whose key (symbol, strategy, date range)
// already exists replaces the stored document.
package report

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// ReportSink stores engine results.
type ReportSink interface {
	// WriteBacktestReports stores each report under its key.
	WriteBacktestReports(ctx context.Context, reports []types.BacktestReport) error
	// WriteDecision stores the decision under its key.
	WriteDecision(ctx context.Context, decision types.CompositeDecision) error
	Close() error
}

// NopSink discards everything.
type NopSink struct{}

func NewNopSink() ReportSink {
	return NopSink{}
}

func (NopSink) WriteBacktestReports(context.Context, []types.BacktestReport) error {
	return nil
}

func (NopSink) WriteDecision(context.Context, types.CompositeDecision) error {
	return nil
}

func (NopSink) Close() error {
	return nil
}
