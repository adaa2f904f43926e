package strategy

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// QuantumFluctuation is a randomized baseline. Each evaluation draws one standard
// normal value and signals only when the draw falls outside one sigma. It carries
// no predictive content and exists to diversify the panel.
type QuantumFluctuation struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuantumFluctuation creates the strategy with a seeded source. A zero seed uses the clock.
func NewQuantumFluctuation(seed int64) *QuantumFluctuation {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &QuantumFluctuation{rng: rand.New(rand.NewSource(seed))}
}

func (s *QuantumFluctuation) Name() types.StrategyName {
	return types.StrategyQuantumFluctuation
}

func (s *QuantumFluctuation) Evaluate(_ context.Context, input Input) types.Signal {
	if len(input.Prices) == 0 {
		return types.NeutralSignal(s.Name())
	}

	s.mu.Lock()
	draw := s.rng.NormFloat64()
	s.mu.Unlock()

	switch {
	case draw > quantumSigmaThreshold:
		return types.NewSignal(s.Name(), types.DirectionBuy, quantumFluctuationReturn)
	case draw < -quantumSigmaThreshold:
		return types.NewSignal(s.Name(), types.DirectionSell, quantumFluctuationReturn)
	default:
		return types.NeutralSignal(s.Name())
	}
}
