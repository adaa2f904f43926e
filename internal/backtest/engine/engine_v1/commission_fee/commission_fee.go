// Package commission_fee prices the broker commission charged on simulated trades.
package commission_fee

import "github.com/shopspring/decimal"

// CommissionFee prices a single fill.
type CommissionFee interface {
	// Calculate returns the commission in account currency for a fill of quantity shares at price.
	Calculate(price float64, quantity int) decimal.Decimal
}

// Broker names a commission schedule in the backtest config.
type Broker string

const (
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerTaiwanSecurities  Broker = "tw_securities"
	BrokerZero              Broker = "zero_commission"
)

// AllBrokers backs the enum of the broker field in the config schema.
var AllBrokers = []any{
	BrokerInteractiveBroker,
	BrokerTaiwanSecurities,
	BrokerZero,
}

// GetCommissionFeeHandler returns the fee model of the broker. Unknown brokers trade commission free.
func GetCommissionFeeHandler(broker Broker) CommissionFee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerTaiwanSecurities:
		return NewTaiwanSecuritiesCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}

func notional(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}
