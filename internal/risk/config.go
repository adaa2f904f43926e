package risk

// Config holds the tunables of the risk calculator.
type Config struct {
	// RiskFreeRate is the annual risk-free rate.
	RiskFreeRate float64 `yaml:"risk_free_rate" json:"risk_free_rate" validate:"gte=0,lt=1" jsonschema:"title=Risk Free Rate,description=Annual risk-free rate,default=0.01"`
	// TradingDays is the number of trading days in a year, used for annualization.
	TradingDays int `yaml:"trading_days" json:"trading_days" validate:"gt=0" jsonschema:"title=Trading Days,description=Trading days per year,default=252"`
	// Confidence is the VaR confidence level.
	Confidence float64 `yaml:"confidence" json:"confidence" validate:"gt=0,lt=1" jsonschema:"title=Confidence,description=VaR confidence level,default=0.95"`
	// StopLossPercent is the distance of the stop-loss below the latest price.
	StopLossPercent float64 `yaml:"stop_loss_percent" json:"stop_loss_percent" validate:"gte=0,lt=1" jsonschema:"title=Stop Loss Percent,default=0.05"`
	// RiskPerTrade is the fraction of the balance put at risk per trade.
	RiskPerTrade float64 `yaml:"risk_per_trade" json:"risk_per_trade" validate:"gt=0,lte=1" jsonschema:"title=Risk Per Trade,default=0.01"`
	// Balance is the account balance used for position sizing.
	Balance float64 `yaml:"balance" json:"balance" validate:"gt=0" jsonschema:"title=Balance,default=10000"`
}

// DefaultConfig returns the standard risk parameters.
func DefaultConfig() Config {
	return Config{
		RiskFreeRate:    0.01,
		TradingDays:     252,
		Confidence:      0.95,
		StopLossPercent: 0.05,
		RiskPerTrade:    0.01,
		Balance:         10000,
	}
}

// Alert thresholds.
const (
	VaRAlertThreshold         = -0.05
	VolatilityAlertThreshold  = 0.3
	MaxDrawdownAlertThreshold = -0.2
)
