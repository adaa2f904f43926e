package optimizer

import "time"

// Config holds the regime rules, decision thresholds and advisor retry policy.
type Config struct {
	// VolatilityIndexThreshold enables the high volatility multipliers when exceeded.
	VolatilityIndexThreshold float64 `yaml:"volatility_index_threshold" json:"volatility_index_threshold" jsonschema:"title=Volatility Index Threshold,default=20"`
	// SentimentThreshold enables the sentiment multipliers when |sentiment| exceeds it.
	SentimentThreshold float64 `yaml:"sentiment_threshold" json:"sentiment_threshold" validate:"gte=0,lte=1" jsonschema:"title=Sentiment Threshold,default=0.5"`
	// DecisionThreshold is the composite score above which the decision is buy and below whose negative it is sell.
	DecisionThreshold float64 `yaml:"decision_threshold" json:"decision_threshold" validate:"gte=0" jsonschema:"title=Decision Threshold,default=0.5"`
	// HybridWeights weight up to three model predictions in the hybrid score.
	HybridWeights []float64 `yaml:"hybrid_weights" json:"hybrid_weights" validate:"max=3,dive,gt=0" jsonschema:"title=Hybrid Weights,default=[0.3 0.3 0.4]"`
	// AdvisorAttempts is the total number of advisor calls before falling back.
	AdvisorAttempts int `yaml:"advisor_attempts" json:"advisor_attempts" validate:"gte=1" jsonschema:"title=Advisor Attempts,default=3"`
	// AdvisorTimeout bounds a single advisor call.
	AdvisorTimeout time.Duration `yaml:"advisor_timeout" json:"advisor_timeout" validate:"gt=0" jsonschema:"title=Advisor Timeout,type=string,default=10s"`
	// AdvisorBackoff is the initial delay between advisor attempts.
	AdvisorBackoff time.Duration `yaml:"advisor_backoff" json:"advisor_backoff" validate:"gte=0" jsonschema:"title=Advisor Backoff,type=string,default=500ms"`
}

// DefaultConfig returns the standard rule thresholds.
func DefaultConfig() Config {
	return Config{
		VolatilityIndexThreshold: 20,
		SentimentThreshold:       0.5,
		DecisionThreshold:        0.5,
		HybridWeights:            []float64{0.3, 0.3, 0.4},
		AdvisorAttempts:          3,
		AdvisorTimeout:           10 * time.Second,
		AdvisorBackoff:           500 * time.Millisecond,
	}
}
