package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// YAMLSink writes one YAML file per key into a directory.
type YAMLSink struct {
	dir    string
	logger *logger.Logger
}

// NewYAMLSink creates the output directory if needed.
func NewYAMLSink(dir string, log *logger.Logger) (*YAMLSink, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create report directory %s", dir)
	}

	return &YAMLSink{dir: dir, logger: log}, nil
}

// ReportPath returns the file a report is written to.
func (s *YAMLSink) ReportPath(report types.BacktestReport) string {
	return filepath.Join(s.dir, fmt.Sprintf("backtest_%s.yaml", report.Key()))
}

// DecisionPath returns the file a decision is written to.
func (s *YAMLSink) DecisionPath(decision types.CompositeDecision) string {
	return filepath.Join(s.dir, fmt.Sprintf("decision_%s.yaml", decision.Key()))
}

// WriteBacktestReports implements ReportSink.
func (s *YAMLSink) WriteBacktestReports(ctx context.Context, reports []types.BacktestReport) error {
	for _, report := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := s.ReportPath(report)
		if err := types.WriteBacktestReports(path, []types.BacktestReport{report}); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write report %s", report.Key())
		}

		s.logger.Debug("Wrote backtest report", zap.String("path", path))
	}

	return nil
}

// WriteDecision implements ReportSink.
func (s *YAMLSink) WriteDecision(ctx context.Context, decision types.CompositeDecision) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(decision)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to marshal decision %s", decision.Key())
	}

	path := s.DecisionPath(decision)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write decision %s", decision.Key())
	}

	s.logger.Debug("Wrote composite decision", zap.String("path", path))

	return nil
}

func (s *YAMLSink) Close() error {
	return nil
}
