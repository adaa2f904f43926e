// Package optimizer combines the panel signals into one weighted decision.
//
// A Session moves through Initialized, RuleAdjusted, ExternallyRefined and
// Finalized. The advisor step never fails a session: when the advisor is
// unavailable or answers with unusable weights, the rule-adjusted weights are kept.
package optimizer

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/advisor"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/trace"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// State is the position of a session in the optimization pipeline.
type State string

const (
	StateInitialized       State = "initialized"
	StateRuleAdjusted      State = "rule_adjusted"
	StateExternallyRefined State = "externally_refined"
	StateFinalized         State = "finalized"
)

// Inputs are the per-instrument values one optimization works on.
type Inputs struct {
	Symbol          string
	Signals         []types.Signal
	RiskMetrics     types.RiskMetrics
	VolatilityIndex optional.Option[float64]
	Sentiment       optional.Option[float64]
	// Predictions are optional model forecasts blended into the hybrid score.
	Predictions []float64
}

// Optimizer creates sessions sharing one configuration and advisor.
type Optimizer struct {
	config  Config
	rules   []Rule
	advisor advisor.Advisor
	log     *logger.Logger
	now     func() time.Time
}

// NewOptimizer creates an optimizer. A nil advisor behaves like advisor.NoopAdvisor.
func NewOptimizer(config Config, adv advisor.Advisor, log *logger.Logger) *Optimizer {
	if adv == nil {
		adv = advisor.NewNoopAdvisor()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Optimizer{
		config:  config,
		rules:   config.Rules(),
		advisor: adv,
		log:     log,
		now:     time.Now,
	}
}

// Optimize runs a full session and returns the decision.
func (o *Optimizer) Optimize(ctx context.Context, inputs Inputs) (types.CompositeDecision, error) {
	ctx, span := trace.StartSpan(ctx, "optimizer.optimize")
	defer span.End()

	session := o.NewSession(inputs)

	if err := session.AdjustRules(); err != nil {
		return types.CompositeDecision{}, err
	}

	if err := session.Refine(ctx); err != nil {
		return types.CompositeDecision{}, err
	}

	decision, err := session.Finalize()
	if err != nil {
		return types.CompositeDecision{}, err
	}

	span.SetAttributes(
		attribute.String("symbol", decision.Symbol),
		attribute.String("final_signal", string(decision.FinalSignal)),
		attribute.String("weight_source", string(decision.WeightSource)),
	)

	return decision, nil
}

// Session is one pass through the state machine. It is not safe for concurrent use.
type Session struct {
	optimizer *Optimizer
	inputs    Inputs
	state     State
	weights   types.WeightVector
	source    types.WeightSource
	fired     []string
}

// NewSession starts a session with every weight at 1.0.
func (o *Optimizer) NewSession(inputs Inputs) *Session {
	return &Session{
		optimizer: o,
		inputs:    inputs,
		state:     StateInitialized,
		weights:   types.UniformWeights(),
		source:    types.WeightSourceRules,
	}
}

func (s *Session) State() State {
	return s.state
}

// Weights returns a copy of the current weights.
func (s *Session) Weights() types.WeightVector {
	return s.weights.Clone()
}

// FiredRules returns the names of the regime rules applied by AdjustRules.
func (s *Session) FiredRules() []string {
	return s.fired
}

func (s *Session) transition(from State, to State) error {
	if s.state != from {
		return errors.Newf(errors.ErrCodeInvalidState, "cannot move to %s from %s, expected %s", to, s.state, from)
	}

	s.state = to

	return nil
}

// AdjustRules applies the regime multipliers.
func (s *Session) AdjustRules() error {
	if err := s.transition(StateInitialized, StateRuleAdjusted); err != nil {
		return err
	}

	s.weights, s.fired = ApplyRules(s.optimizer.rules, s.weights, s.inputs.VolatilityIndex, s.inputs.Sentiment)

	s.optimizer.log.Debug("Applied regime rules",
		zap.String("symbol", s.inputs.Symbol),
		zap.Strings("rules", s.fired),
	)

	return nil
}

// Refine asks the advisor for replacement weights. Advisor failures are logged and the
// rule-adjusted weights are kept; only a wrong state returns an error.
func (s *Session) Refine(ctx context.Context) error {
	if err := s.transition(StateRuleAdjusted, StateExternallyRefined); err != nil {
		return err
	}

	request := advisor.Request{
		Symbol:      s.inputs.Symbol,
		Signals:     s.inputs.Signals,
		RiskMetrics: s.inputs.RiskMetrics,
		Weights:     s.weights.Clone(),
		Regime: advisor.RegimeContext{
			VolatilityIndex: s.inputs.VolatilityIndex,
			Sentiment:       s.inputs.Sentiment,
		},
	}

	weights, err := s.optimizer.consultAdvisor(ctx, request)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeAdvisorNotConfigured) {
			s.optimizer.log.Debug("No advisor configured, keeping rule weights", zap.String("symbol", s.inputs.Symbol))
		} else {
			s.optimizer.log.Warn("Advisor unavailable, keeping rule weights",
				zap.String("symbol", s.inputs.Symbol),
				zap.Error(err),
			)
		}

		return nil
	}

	s.weights = weights
	s.source = types.WeightSourceAdvisor

	return nil
}

// Finalize computes the composite score and the decision.
func (s *Session) Finalize() (types.CompositeDecision, error) {
	if err := s.transition(StateExternallyRefined, StateFinalized); err != nil {
		return types.CompositeDecision{}, err
	}

	config := s.optimizer.config
	score := CompositeScore(s.inputs.Signals, s.weights)

	if len(s.inputs.Predictions) > len(config.HybridWeights) {
		s.optimizer.log.Warn("Extra model predictions ignored",
			zap.Int("predictions", len(s.inputs.Predictions)),
			zap.Int("weights", len(config.HybridWeights)),
		)
	}

	signals := make([]types.Signal, len(s.inputs.Signals))
	copy(signals, s.inputs.Signals)

	decision := types.CompositeDecision{
		Symbol:         s.inputs.Symbol,
		FinalSignal:    Classify(score, config.DecisionThreshold),
		CompositeScore: score,
		HybridScore:    HybridScore(s.inputs.Predictions, config.HybridWeights),
		Signals:        signals,
		Weights:        s.weights.Clone(),
		RiskMetrics:    s.inputs.RiskMetrics,
		WeightSource:   s.source,
		Timestamp:      s.optimizer.now(),
	}

	s.optimizer.log.Info("Composite decision",
		zap.String("symbol", decision.Symbol),
		zap.String("final_signal", string(decision.FinalSignal)),
		zap.Float64("composite_score", decision.CompositeScore),
		zap.String("weight_source", string(decision.WeightSource)),
	)

	return decision, nil
}

// consultAdvisor calls the advisor with a per-call timeout and exponential backoff.
// Responses that do not give every strategy a positive finite weight count as failed attempts.
func (o *Optimizer) consultAdvisor(ctx context.Context, request advisor.Request) (types.WeightVector, error) {
	ctx, span := trace.StartSpan(ctx, "optimizer.consult_advisor")
	defer span.End()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.config.AdvisorBackoff
	policy.MaxElapsedTime = 0
	policy.Reset()

	attempts := max(o.config.AdvisorAttempts, 1)
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx)

	var (
		result types.WeightVector
		tries  int
	)

	operation := func() error {
		tries++

		callCtx, cancel := context.WithTimeout(ctx, o.config.AdvisorTimeout)
		defer cancel()

		weights, err := o.advisor.RefineWeights(callCtx, request)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeAdvisorNotConfigured) {
				return backoff.Permanent(err)
			}

			return err
		}

		if !validWeights(weights) {
			return errors.New(errors.ErrCodeAdvisorResponseInvalid, "advisor weights must cover every strategy with a positive value")
		}

		result = make(types.WeightVector, len(types.AllStrategies()))
		for _, name := range types.AllStrategies() {
			result[name] = weights[name]
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		o.log.Debug("Retrying advisor",
			zap.String("symbol", request.Symbol),
			zap.Int("attempt", tries),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(operation, retry, notify)
	span.SetAttributes(attribute.Int("attempts", tries))

	if err != nil {
		return nil, err
	}

	return result, nil
}
