package strategy

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// LLMSentimentTrend requires strong sentiment confirmed by the short-term return trend.
type LLMSentimentTrend struct {
	trendWindow int
}

// NewLLMSentimentTrend creates the strategy. WithWindow sets the short trend window, 10 by default.
func NewLLMSentimentTrend(opts ...Option) *LLMSentimentTrend {
	o := options{window: DefaultConfig().TrendWindow}
	for _, opt := range opts {
		opt(&o)
	}

	if o.window < 1 {
		o.window = 1
	}

	return &LLMSentimentTrend{trendWindow: o.window}
}

func (s *LLMSentimentTrend) Name() types.StrategyName {
	return types.StrategyLLMSentimentTrend
}

func (s *LLMSentimentTrend) Evaluate(_ context.Context, input Input) types.Signal {
	if input.Sentiment.IsNone() {
		return types.NeutralSignal(s.Name())
	}

	closes := types.Closes(input.Prices)
	if len(closes) < s.trendWindow+1 {
		return types.NeutralSignal(s.Name())
	}

	sentiment := input.Sentiment.Unwrap()
	trend := windowMean(pctChange(closes), s.trendWindow)

	switch {
	case sentiment > sentimentStrongThreshold && trend > 0:
		return types.NewSignal(s.Name(), types.DirectionBuy, sentimentTrendReturn)
	case sentiment < -sentimentStrongThreshold && trend < 0:
		return types.NewSignal(s.Name(), types.DirectionSell, sentimentTrendReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}

// SentimentStatArb trades against the rolling mean when sentiment disagrees with the price.
type SentimentStatArb struct {
	window int
}

func NewSentimentStatArb(opts ...Option) *SentimentStatArb {
	return &SentimentStatArb{window: applyOptions(opts).window}
}

func (s *SentimentStatArb) Name() types.StrategyName {
	return types.StrategySentimentStatArb
}

func (s *SentimentStatArb) Evaluate(_ context.Context, input Input) types.Signal {
	if input.Sentiment.IsNone() {
		return types.NeutralSignal(s.Name())
	}

	closes := types.Closes(input.Prices)
	if len(closes) < s.window {
		return types.NeutralSignal(s.Name())
	}

	sentiment := input.Sentiment.Unwrap()
	mean := windowMean(closes, s.window)
	price := last(closes)

	switch {
	case sentiment > sentimentStrongThreshold && price < mean:
		return types.NewSignal(s.Name(), types.DirectionBuy, sentimentStatArbReturn)
	case sentiment < -sentimentStrongThreshold && price > mean:
		return types.NewSignal(s.Name(), types.DirectionSell, sentimentStatArbReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}
