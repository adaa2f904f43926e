package strategy

// Config holds the window lengths and model parameters of the panel.
type Config struct {
	// Window is the default lookback of every windowed strategy.
	Window int `yaml:"window" json:"window" validate:"gte=2" jsonschema:"title=Window,description=Default lookback in bars,default=20"`
	// TrendWindow is the lookback of the short trend used by llm_sentiment_trend.
	TrendWindow int `yaml:"trend_window" json:"trend_window" validate:"gte=1" jsonschema:"title=Trend Window,default=10"`
	// Lags is the number of past prices the lstm_momentum regressor reads.
	Lags int `yaml:"lags" json:"lags" validate:"gte=1" jsonschema:"title=Model Lags,default=5"`
	// Epochs is the number of gradient descent passes when training the regressor.
	Epochs int `yaml:"epochs" json:"epochs" validate:"gte=1" jsonschema:"title=Training Epochs,default=200"`
	// LearningRate is the gradient descent step size.
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate" validate:"gt=0" jsonschema:"title=Learning Rate,default=0.05"`
	// Seed seeds quantum_fluctuation. Zero seeds from the clock.
	Seed int64 `yaml:"seed" json:"seed" jsonschema:"title=Random Seed,description=Seed for the randomized strategy; 0 uses the current time"`
	// Parallelism bounds the number of strategies evaluated concurrently. Zero or less means unbounded.
	Parallelism int `yaml:"parallelism" json:"parallelism" jsonschema:"title=Parallelism,default=0"`
}

// DefaultConfig returns the standard panel parameters.
func DefaultConfig() Config {
	return Config{
		Window:       20,
		TrendWindow:  10,
		Lags:         5,
		Epochs:       200,
		LearningRate: 0.05,
		Seed:         0,
		Parallelism:  0,
	}
}
