package strategy

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/cache"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"go.uber.org/zap"
)

// LSTMMomentum predicts the next close with a short-horizon regressor trained on the
// instrument's own history and follows the predicted direction.
//
// The model for an instrument is trained once, on the first evaluation with enough
// history, and reused from the cache afterwards. Inputs without a symbol are never cached.
type LSTMMomentum struct {
	window       int
	lags         int
	epochs       int
	learningRate float64
	models       *cache.ModelCache[*Regressor]
	log          *logger.Logger
}

func NewLSTMMomentum(config Config, models *cache.ModelCache[*Regressor], log *logger.Logger) *LSTMMomentum {
	if models == nil {
		models = cache.NewModelCache[*Regressor]()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	window := config.Window
	if window < config.Lags+3 {
		window = config.Lags + 3
	}

	return &LSTMMomentum{
		window:       window,
		lags:         config.Lags,
		epochs:       config.Epochs,
		learningRate: config.LearningRate,
		models:       models,
		log:          log,
	}
}

func (s *LSTMMomentum) Name() types.StrategyName {
	return types.StrategyLSTMMomentum
}

func (s *LSTMMomentum) Evaluate(_ context.Context, input Input) types.Signal {
	closes := types.Closes(input.Prices)
	if len(closes) < s.window {
		return types.NeutralSignal(s.Name())
	}

	train := func() (*Regressor, error) {
		return TrainRegressor(closes, s.lags, s.epochs, s.learningRate)
	}

	var (
		model *Regressor
		err   error
	)

	if input.Symbol == "" {
		model, err = train()
	} else {
		var cached bool

		model, cached, err = s.models.GetOrCreate(input.Symbol, train)
		if err == nil && !cached {
			s.log.Debug("Trained price model", zap.String("symbol", input.Symbol), zap.Int("bars", len(closes)))
		}
	}

	if err != nil {
		s.log.Warn("Failed to train price model", zap.String("symbol", input.Symbol), zap.Error(err))

		return types.NeutralSignal(s.Name())
	}

	predicted, err := model.Predict(closes)
	if err != nil {
		return types.NeutralSignal(s.Name())
	}

	if predicted > last(closes) {
		return types.NewSignal(s.Name(), types.DirectionBuy, lstmMomentumReturn)
	}

	return types.NewSignal(s.Name(), types.DirectionSell, lstmMomentumReturn)
}
