package marketdata

import (
	"context"
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// StaticSentiment serves fixed scores per symbol with an optional default for unknown symbols.
// Scores are clamped to [-1, 1].
type StaticSentiment struct {
	scores   map[string]float64
	fallback optional.Option[float64]
}

func NewStaticSentiment(scores map[string]float64, fallback optional.Option[float64]) *StaticSentiment {
	clamped := make(map[string]float64, len(scores))
	for symbol, score := range scores {
		clamped[symbol] = ClampSentiment(score)
	}

	if fallback.IsSome() {
		fallback = optional.Some(ClampSentiment(fallback.Unwrap()))
	}

	return &StaticSentiment{
		scores:   clamped,
		fallback: fallback,
	}
}

func (s *StaticSentiment) GetSentiment(_ context.Context, symbol string, _ time.Time) (float64, error) {
	if score, ok := s.scores[symbol]; ok {
		return score, nil
	}

	if s.fallback.IsSome() {
		return s.fallback.Unwrap(), nil
	}

	return 0, errors.Newf(errors.ErrCodeNoDataFound, "no sentiment for symbol %s", symbol)
}

// ClampSentiment limits a score to [-1, 1]. NaN becomes 0.
func ClampSentiment(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}

	return math.Max(-1, math.Min(1, score))
}

// LookupSentiment asks the provider for a score and reports None when the provider
// is nil or has no score.
func LookupSentiment(ctx context.Context, provider SentimentProvider, symbol string, date time.Time) optional.Option[float64] {
	if provider == nil {
		return optional.None[float64]()
	}

	score, err := provider.GetSentiment(ctx, symbol, date)
	if err != nil {
		return optional.None[float64]()
	}

	return optional.Some(ClampSentiment(score))
}
