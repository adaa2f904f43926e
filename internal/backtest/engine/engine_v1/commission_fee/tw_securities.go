package commission_fee

import "github.com/shopspring/decimal"

var (
	twSecuritiesRate    = decimal.RequireFromString("0.001425")
	twSecuritiesMinimum = decimal.NewFromInt(20)
)

// TaiwanSecuritiesCommissionFee charges 0.1425% of the trade value with a minimum of 20 per order,
// rounded down to whole currency units.
type TaiwanSecuritiesCommissionFee struct{}

func NewTaiwanSecuritiesCommissionFee() CommissionFee {
	return &TaiwanSecuritiesCommissionFee{}
}

func (c *TaiwanSecuritiesCommissionFee) Calculate(price float64, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}

	return decimal.Max(notional(price, quantity).Mul(twSecuritiesRate).Floor(), twSecuritiesMinimum)
}
