// Package advisor holds the external weight advisors consulted by the optimizer.
package advisor

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// RegimeContext carries the market regime inputs the rule layer used.
type RegimeContext struct {
	VolatilityIndex optional.Option[float64]
	Sentiment       optional.Option[float64]
}

// Request is everything an advisor sees when refining weights.
type Request struct {
	Symbol      string
	Signals     []types.Signal
	RiskMetrics types.RiskMetrics
	// Weights are the rule-adjusted weights.
	Weights types.WeightVector
	Regime  RegimeContext
}

// Advisor proposes a replacement weight vector.
// Implementations return an error with code ErrCodeAdvisorUnavailable when they cannot answer
// and ErrCodeAdvisorNotConfigured when they never will.
type Advisor interface {
	RefineWeights(ctx context.Context, request Request) (types.WeightVector, error)
}

// NoopAdvisor is used when no advisor is configured.
type NoopAdvisor struct{}

func NewNoopAdvisor() *NoopAdvisor {
	return &NoopAdvisor{}
}

func (NoopAdvisor) RefineWeights(context.Context, Request) (types.WeightVector, error) {
	return nil, errors.New(errors.ErrCodeAdvisorNotConfigured, "no advisor configured")
}

// StaticAdvisor answers every request with the same weights.
type StaticAdvisor struct {
	weights types.WeightVector
}

func NewStaticAdvisor(weights types.WeightVector) *StaticAdvisor {
	return &StaticAdvisor{weights: weights.Clone()}
}

func (a *StaticAdvisor) RefineWeights(context.Context, Request) (types.WeightVector, error) {
	return a.weights.Clone(), nil
}
