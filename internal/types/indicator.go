package types

// IndicatorType identifies a technical indicator in the registry.
type IndicatorType string

const (
	IndicatorTypeSMA             IndicatorType = "sma"
	IndicatorTypeEMA             IndicatorType = "ema"
	IndicatorTypeRSI             IndicatorType = "rsi"
	IndicatorTypeStochastic      IndicatorType = "stochastic"
	IndicatorTypeMACD            IndicatorType = "macd"
	IndicatorTypeBollingerBands  IndicatorType = "bollinger_bands"
	IndicatorTypeATR             IndicatorType = "atr"
	IndicatorTypeCCI             IndicatorType = "cci"
	IndicatorTypeMomentum        IndicatorType = "momentum"
	IndicatorTypeROC             IndicatorType = "roc"
	IndicatorTypeSTD             IndicatorType = "std"
	IndicatorTypeWilliamsR       IndicatorType = "williams_r"
	IndicatorTypeVWMA            IndicatorType = "vwma"
	IndicatorTypeADLine          IndicatorType = "ad_line"
	IndicatorTypeOBV             IndicatorType = "obv"
	IndicatorTypeDonchianChannel IndicatorType = "donchian_channel"
	IndicatorTypeKeltnerChannel  IndicatorType = "keltner_channel"
	IndicatorTypeADX             IndicatorType = "adx"
	IndicatorTypeParabolicSAR    IndicatorType = "psar"
	IndicatorTypeAroon           IndicatorType = "aroon"
	IndicatorTypeIchimoku        IndicatorType = "ichimoku"
)

// AllIndicatorTypes lists every indicator the library knows, in reporting order.
func AllIndicatorTypes() []IndicatorType {
	return []IndicatorType{
		IndicatorTypeSMA,
		IndicatorTypeEMA,
		IndicatorTypeRSI,
		IndicatorTypeStochastic,
		IndicatorTypeMACD,
		IndicatorTypeBollingerBands,
		IndicatorTypeATR,
		IndicatorTypeCCI,
		IndicatorTypeMomentum,
		IndicatorTypeROC,
		IndicatorTypeSTD,
		IndicatorTypeWilliamsR,
		IndicatorTypeVWMA,
		IndicatorTypeADLine,
		IndicatorTypeOBV,
		IndicatorTypeDonchianChannel,
		IndicatorTypeKeltnerChannel,
		IndicatorTypeADX,
		IndicatorTypeParabolicSAR,
		IndicatorTypeAroon,
		IndicatorTypeIchimoku,
	}
}

// IndicatorValue holds the latest fully computed component values of an indicator,
// keyed by component name (e.g. "upper", "middle", "lower" for Bollinger Bands).
type IndicatorValue map[string]float64

// Get returns the named component or 0 when it is absent.
func (v IndicatorValue) Get(component string) float64 {
	if v == nil {
		return 0
	}

	return v[component]
}
