package commission_fee

import "github.com/shopspring/decimal"

// ZeroCommissionFee is the default schedule of a backtest.
type ZeroCommissionFee struct{}

func NewZeroCommissionFee() CommissionFee {
	return &ZeroCommissionFee{}
}

func (c *ZeroCommissionFee) Calculate(float64, int) decimal.Decimal {
	return decimal.Zero
}
