package mocks

//go:generate mockgen -destination=./mock_advisor.go -package=mocks github.com/rxtech-lab/argo-quant/internal/advisor Advisor
//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-quant/internal/indicator Indicator
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-quant/internal/strategy Strategy
//go:generate mockgen -destination=./mock_price_provider.go -package=mocks github.com/rxtech-lab/argo-quant/internal/marketdata PriceProvider
//go:generate mockgen -destination=./mock_sentiment_provider.go -package=mocks github.com/rxtech-lab/argo-quant/internal/marketdata SentimentProvider
//go:generate mockgen -destination=./mock_volatility_index_provider.go -package=mocks github.com/rxtech-lab/argo-quant/internal/marketdata VolatilityIndexProvider
//go:generate mockgen -destination=./mock_report_sink.go -package=mocks github.com/rxtech-lab/argo-quant/internal/report ReportSink
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-quant/pkg/marketdata/provider Provider
