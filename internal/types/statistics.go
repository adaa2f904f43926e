package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TradeAction is the kind of a backtest trade.
type TradeAction string

const (
	TradeActionBuy          TradeAction = "buy"
	TradeActionSell         TradeAction = "sell"
	TradeActionStopLossSell TradeAction = "stop_loss_sell"
)

// TradeRecord is one entry of the backtest trade log.
type TradeRecord struct {
	Action   TradeAction `yaml:"action" json:"action"`
	Price    float64     `yaml:"price" json:"price"`
	Quantity int         `yaml:"quantity" json:"quantity"`
	Time     time.Time   `yaml:"time" json:"time"`
}

// BacktestReport summarizes one backtest run of a single strategy over one instrument.
type BacktestReport struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when the run finished.
	Timestamp time.Time    `yaml:"timestamp" json:"timestamp"`
	Symbol    string       `yaml:"symbol" json:"symbol"`
	Strategy  StrategyName `yaml:"strategy" json:"strategy"`
	Start     time.Time    `yaml:"start" json:"start"`
	End       time.Time    `yaml:"end" json:"end"`
	// InitialBalance is the cash at the first bar.
	InitialBalance float64 `yaml:"initial_balance" json:"initial_balance"`
	// FinalValue is balance + shares x last price.
	FinalValue float64 `yaml:"final_value" json:"final_value"`
	// TotalReturn is (FinalValue - InitialBalance) / InitialBalance.
	TotalReturn    float64       `yaml:"total_return" json:"total_return"`
	NumberOfTrades int           `yaml:"number_of_trades" json:"number_of_trades"`
	Trades         []TradeRecord `yaml:"trades" json:"trades"`
	// PositionSize is the number of shares traded per signal.
	PositionSize int `yaml:"position_size" json:"position_size"`
	// StopLoss is the static stop-loss price used for the whole run.
	StopLoss    float64     `yaml:"stop_loss" json:"stop_loss"`
	RiskMetrics RiskMetrics `yaml:"risk_metrics" json:"-"`
	// BuyAndHoldReturn is the return of buying at the first close and holding to the last.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return" json:"buy_and_hold_return"`
	// MaxEquityDrawdown is the worst peak-to-trough drop of the equity curve, <= 0.
	MaxEquityDrawdown float64 `yaml:"max_equity_drawdown" json:"max_equity_drawdown"`
}

// Key returns the persistence key (symbol, strategy, date range) of the report.
func (r BacktestReport) Key() string {
	return fmt.Sprintf("%s_%s_%s_%s", r.Symbol, r.Strategy, r.Start.Format("20060102"), r.End.Format("20060102"))
}

// WriteBacktestReports writes the reports to a YAML file.
func WriteBacktestReports(path string, reports []BacktestReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest reports to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest reports to file: %w", err)
	}

	return nil
}
