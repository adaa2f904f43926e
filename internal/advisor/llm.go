package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/trace"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const systemPrompt = "You are a portfolio strategist. You receive the signals of ten trading strategies " +
	"and return positive weights for each of them. Respond ONLY with a compact JSON object " +
	"mapping every strategy name to its weight."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// LLMAdvisor asks an OpenAI compatible chat completions endpoint for weights.
type LLMAdvisor struct {
	client *resty.Client
	config Config
	log    *logger.Logger
}

func NewLLMAdvisor(config Config, log *logger.Logger) (*LLMAdvisor, error) {
	if config.APIKey == "" {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "advisor api key missing, set %s", config.APIKeyEnv)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(config.BaseURL, "/")).
		SetAuthToken(config.APIKey).
		SetHeader("Content-Type", "application/json")

	return &LLMAdvisor{
		client: client,
		config: config,
		log:    log,
	}, nil
}

func (a *LLMAdvisor) RefineWeights(ctx context.Context, request Request) (types.WeightVector, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.refine_weights")
	defer span.End()

	span.SetAttributes(attribute.String("symbol", request.Symbol), attribute.String("model", a.config.Model))

	prompt, err := BuildPrompt(request)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: a.config.Model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
			Temperature: a.config.Temperature,
			MaxTokens:   a.config.MaxTokens,
		}).
		SetResult(&chatResponse{}).
		Post("/chat/completions")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAdvisorUnavailable, "advisor request failed", err)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeAdvisorUnavailable, "advisor http %d", resp.StatusCode())
	}

	result, ok := resp.Result().(*chatResponse)
	if !ok || len(result.Choices) == 0 {
		return nil, errors.New(errors.ErrCodeAdvisorResponseInvalid, "advisor returned no choices")
	}

	weights, err := ParseWeights(result.Choices[0].Message.Content)
	if err != nil {
		a.log.Warn("Advisor reply could not be parsed",
			zap.String("symbol", request.Symbol),
			zap.String("content", result.Choices[0].Message.Content),
			zap.Error(err),
		)

		return nil, err
	}

	return weights, nil
}

type promptState struct {
	Symbol          string             `json:"symbol"`
	Signals         map[string]int     `json:"signals"`
	ExpectedReturns map[string]float64 `json:"expected_returns"`
	InitialWeights  map[string]float64 `json:"initial_weights"`
	RiskMetrics     map[string]float64 `json:"risk_metrics"`
	VIX             *float64           `json:"vix,omitempty"`
	Sentiment       *float64           `json:"sentiment_score,omitempty"`
}

// BuildPrompt renders the request as the user message sent to the model.
func BuildPrompt(request Request) (string, error) {
	state := promptState{
		Symbol:          request.Symbol,
		Signals:         make(map[string]int, len(request.Signals)),
		ExpectedReturns: make(map[string]float64, len(request.Signals)),
		InitialWeights:  make(map[string]float64, len(request.Weights)),
		RiskMetrics:     request.RiskMetrics.ToMap(),
	}

	for _, s := range request.Signals {
		state.Signals[string(s.Strategy)] = int(s.Direction)
		state.ExpectedReturns[string(s.Strategy)] = s.ExpectedReturn
	}

	for name, w := range request.Weights {
		state.InitialWeights[string(name)] = w
	}

	if request.Regime.VolatilityIndex.IsSome() {
		v := request.Regime.VolatilityIndex.Unwrap()
		state.VIX = &v
	}

	if request.Regime.Sentiment.IsSome() {
		v := request.Regime.Sentiment.Unwrap()
		state.Sentiment = &v
	}

	body, err := json.Marshal(state)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAdvisorResponseInvalid, "failed to encode advisor state", err)
	}

	return fmt.Sprintf("Optimize weights for trading strategies based on signals, expected returns, "+
		"the volatility index, the sentiment score and the risk metrics. Return a JSON object with optimized weights.\n"+
		"State:%s", body), nil
}

// ParseWeights reads the first JSON object in content. It accepts either a flat
// strategy to weight object or one nested under a "weights" key. Unknown strategy
// names are ignored.
func ParseWeights(content string) (types.WeightVector, error) {
	start := strings.Index(content, "{")
	if start < 0 {
		return nil, errors.New(errors.ErrCodeAdvisorResponseInvalid, "advisor reply contains no JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(strings.NewReader(content[start:])).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAdvisorResponseInvalid, "failed to decode advisor reply", err)
	}

	if nested, ok := raw["weights"]; ok {
		raw = nil
		if err := json.Unmarshal(nested, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeAdvisorResponseInvalid, "failed to decode advisor weights", err)
		}
	}

	weights := make(types.WeightVector, len(raw))

	for key, value := range raw {
		name, err := types.ParseStrategyName(key)
		if err != nil {
			continue
		}

		var w float64
		if err := json.Unmarshal(value, &w); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeAdvisorResponseInvalid, err, "weight of %s is not a number", key)
		}

		weights[name] = w
	}

	if len(weights) == 0 {
		return nil, errors.New(errors.ErrCodeAdvisorResponseInvalid, "advisor reply names no known strategy")
	}

	return weights, nil
}
