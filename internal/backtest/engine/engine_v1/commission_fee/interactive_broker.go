package commission_fee

import "github.com/shopspring/decimal"

var (
	perShareRate   = decimal.RequireFromString("0.005")
	perShareFloor  = decimal.NewFromInt(1)
	perShareCapPct = decimal.RequireFromString("0.01")
)

// InteractiveBrokerCommissionFee is the fixed per-share schedule: 0.005 per share,
// at least 1.0 per order and never more than 1% of the trade value.
type InteractiveBrokerCommissionFee struct{}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{}
}

func (c *InteractiveBrokerCommissionFee) Calculate(price float64, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}

	fee := decimal.Max(perShareRate.Mul(decimal.NewFromInt(int64(quantity))), perShareFloor)

	// the cap only binds when it is above the floor
	if ceiling := notional(price, quantity).Mul(perShareCapPct); ceiling.GreaterThan(perShareFloor) {
		fee = decimal.Min(fee, ceiling)
	}

	return fee
}
