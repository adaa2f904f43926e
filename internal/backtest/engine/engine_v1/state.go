package engine

import (
	"time"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/shopspring/decimal"
)

// BacktestState is the account of a single run: cash, shares held and the trade log.
// Cash is kept as a decimal so repeated fills do not accumulate rounding error.
type BacktestState struct {
	balance decimal.Decimal
	shares  int
	trades  []types.TradeRecord
	equity  []float64
}

func NewBacktestState(initialBalance float64) *BacktestState {
	state := &BacktestState{}
	state.Reset(initialBalance)

	return state
}

// Reset empties the account and sets the cash to initialBalance.
func (s *BacktestState) Reset(initialBalance float64) {
	s.balance = decimal.NewFromFloat(initialBalance)
	s.shares = 0
	s.trades = nil
	s.equity = nil
}

func (s *BacktestState) Balance() decimal.Decimal {
	return s.balance
}

func (s *BacktestState) Shares() int {
	return s.shares
}

// Trades returns a copy of the trade log.
func (s *BacktestState) Trades() []types.TradeRecord {
	trades := make([]types.TradeRecord, len(s.trades))
	copy(trades, s.trades)

	return trades
}

// Value is cash plus the shares marked at price.
func (s *BacktestState) Value(price float64) decimal.Decimal {
	return s.balance.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(s.shares))))
}

// Mark appends the account value at price to the equity curve.
func (s *BacktestState) Mark(price float64) {
	s.equity = append(s.equity, s.Value(price).InexactFloat64())
}

// EquityCurve returns the marked account values in bar order.
func (s *BacktestState) EquityCurve() []float64 {
	curve := make([]float64, len(s.equity))
	copy(curve, s.equity)

	return curve
}

func (s *BacktestState) record(action types.TradeAction, price float64, quantity int, at time.Time) {
	s.trades = append(s.trades, types.TradeRecord{
		Action:   action,
		Price:    price,
		Quantity: quantity,
		Time:     at,
	})
}
