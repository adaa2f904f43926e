package quant

import (
	"io"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/advisor"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/marketdata"
	"github.com/rxtech-lab/argo-quant/internal/report"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/provider"
	"go.uber.org/zap"
)

// NewServiceFromConfig builds every collaborator described by the configuration.
// The returned service owns them; call Close when done.
func NewServiceFromConfig(cfg *config.Config, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	var closers []io.Closer

	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	prices, closer, err := newPriceProvider(cfg.Data, log)
	if err != nil {
		return nil, err
	}

	if closer != nil {
		closers = append(closers, closer)
	}

	adv, err := newAdvisor(cfg.Advisor, log)
	if err != nil {
		closeAll()

		return nil, err
	}

	sink, err := newReportSink(cfg.Report, log)
	if err != nil {
		closeAll()

		return nil, err
	}

	deps := Dependencies{
		Prices:          prices,
		Sentiment:       marketdata.NewStaticSentiment(cfg.Data.Sentiment, optional.None[float64]()),
		VolatilityIndex: newVolatilityIndex(cfg.Data, prices),
		Advisor:         adv,
		Sink:            sink,
		Closers:         closers,
	}

	options := Options{
		Risk:            cfg.Risk,
		Strategy:        cfg.Strategy,
		Optimizer:       cfg.Optimizer,
		Backtest:        cfg.Backtest,
		BenchmarkSymbol: cfg.Data.BenchmarkSymbol,
		PairSymbol:      cfg.Data.PairSymbol,
	}

	log.Debug("Service configured",
		zap.String("data_provider", string(cfg.Data.Provider)),
		zap.String("advisor", string(cfg.Advisor.Provider)),
		zap.String("report", string(cfg.Report.Type)),
	)

	return NewService(options, deps, log)
}

func newPriceProvider(data config.Data, log *logger.Logger) (marketdata.PriceProvider, io.Closer, error) {
	switch data.Provider {
	case config.DataProviderDuckDB:
		interval, err := datasource.ParseInterval(data.Interval)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid data interval", err)
		}

		source, err := datasource.NewDataSource(":memory:", log.Named("datasource"), datasource.WithInterval(interval))
		if err != nil {
			return nil, nil, err
		}

		if err := source.Initialize(data.Path); err != nil {
			source.Close()

			return nil, nil, err
		}

		return source, source, nil
	case config.DataProviderPolygon:
		p, err := provider.NewMarketDataProvider(provider.ProviderPolygon, data.PolygonAPIKey, log.Named("polygon"))

		return p, nil, err
	case config.DataProviderBinance:
		p, err := provider.NewMarketDataProvider(provider.ProviderBinance, "", log.Named("binance"))

		return p, nil, err
	default:
		return nil, nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported data provider: %s", data.Provider)
	}
}

func newVolatilityIndex(data config.Data, prices marketdata.PriceProvider) marketdata.VolatilityIndexProvider {
	if data.VolatilityIndexSymbol != "" {
		// zero lookback accepts closes up to a week old
		return marketdata.NewPriceVolatilityIndex(prices, data.VolatilityIndexSymbol, 0)
	}

	return marketdata.StaticVolatilityIndex(data.VolatilityIndex)
}

func newAdvisor(cfg advisor.Config, log *logger.Logger) (advisor.Advisor, error) {
	switch cfg.Provider {
	case advisor.ProviderLLM:
		return advisor.NewLLMAdvisor(cfg, log.Named("advisor"))
	default:
		return advisor.NewNoopAdvisor(), nil
	}
}

func newReportSink(cfg config.Report, log *logger.Logger) (report.ReportSink, error) {
	switch cfg.Type {
	case config.ReportDuckDB:
		return report.NewDuckDBSink(cfg.Path, log.Named("report"))
	case config.ReportYAML:
		return report.NewYAMLSink(cfg.Path, log.Named("report"))
	default:
		return report.NewNopSink(), nil
	}
}
