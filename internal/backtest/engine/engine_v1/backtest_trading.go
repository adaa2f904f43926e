package engine

import (
	"time"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/shopspring/decimal"
)

// BacktestTrading fills market orders against a BacktestState at the bar close.
type BacktestTrading struct {
	state      *BacktestState
	commission commission_fee.CommissionFee
}

func NewBacktestTrading(state *BacktestState, commission commission_fee.CommissionFee) *BacktestTrading {
	if commission == nil {
		commission = commission_fee.NewZeroCommissionFee()
	}

	return &BacktestTrading{
		state:      state,
		commission: commission,
	}
}

// Buy adds quantity shares at price when the cash covers the cost and the commission.
// It reports whether the order was filled.
func (b *BacktestTrading) Buy(price float64, quantity int, at time.Time) bool {
	if quantity <= 0 || price <= 0 {
		return false
	}

	cost := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Add(b.commission.Calculate(price, quantity))
	if b.state.balance.LessThan(cost) {
		return false
	}

	b.state.balance = b.state.balance.Sub(cost)
	b.state.shares += quantity
	b.state.record(types.TradeActionBuy, price, quantity, at)

	return true
}

// Sell removes quantity shares at price when at least that many are held.
// The commission is taken from the proceeds and never drives the cash below zero.
func (b *BacktestTrading) Sell(price float64, quantity int, at time.Time) bool {
	if quantity <= 0 || b.state.shares < quantity {
		return false
	}

	b.sell(types.TradeActionSell, price, quantity, at)

	return true
}

// Liquidate sells every share held at price. It reports whether anything was sold.
func (b *BacktestTrading) Liquidate(price float64, at time.Time) bool {
	if b.state.shares <= 0 {
		return false
	}

	b.sell(types.TradeActionStopLossSell, price, b.state.shares, at)

	return true
}

func (b *BacktestTrading) sell(action types.TradeAction, price float64, quantity int, at time.Time) {
	proceeds := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
	fee := decimal.Min(b.commission.Calculate(price, quantity), proceeds.Add(b.state.balance))

	b.state.balance = b.state.balance.Add(proceeds).Sub(fee)
	b.state.shares -= quantity
	b.state.record(action, price, quantity, at)
}
