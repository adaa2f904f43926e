package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type LibraryTestSuite struct {
	suite.Suite
	library *Library
}

func TestLibrarySuite(t *testing.T) {
	suite.Run(t, new(LibraryTestSuite))
}

func (suite *LibraryTestSuite) SetupTest() {
	suite.library = NewLibrary(NewDefaultIndicatorRegistry(), logger.NewNopLogger())
}

func (suite *LibraryTestSuite) TestParseOriginalSpellings() {
	cases := map[string]types.IndicatorType{
		"SMA":              types.IndicatorTypeSMA,
		"EMA":              types.IndicatorTypeEMA,
		"RSI":              types.IndicatorTypeRSI,
		"Stochastic":       types.IndicatorTypeStochastic,
		"MACD":             types.IndicatorTypeMACD,
		"Bollinger_Bands":  types.IndicatorTypeBollingerBands,
		"ATR":              types.IndicatorTypeATR,
		"CCI":              types.IndicatorTypeCCI,
		"Momentum":         types.IndicatorTypeMomentum,
		"ROC":              types.IndicatorTypeROC,
		"STD":              types.IndicatorTypeSTD,
		"Williams_R":       types.IndicatorTypeWilliamsR,
		"VWMA":             types.IndicatorTypeVWMA,
		"AD_Line":          types.IndicatorTypeADLine,
		"OBV":              types.IndicatorTypeOBV,
		"Donchian_Channel": types.IndicatorTypeDonchianChannel,
		"Keltner_Channel":  types.IndicatorTypeKeltnerChannel,
		"ADX":              types.IndicatorTypeADX,
		"PSAR":             types.IndicatorTypeParabolicSAR,
		"Aroon":            types.IndicatorTypeAroon,
		"Ichimoku":         types.IndicatorTypeIchimoku,
		"bollinger-bands":  types.IndicatorTypeBollingerBands,
		" parabolic sar ":  types.IndicatorTypeParabolicSAR,
	}

	for name, expected := range cases {
		parsed, ok := ParseIndicatorType(name)
		suite.True(ok, name)
		suite.Equal(expected, parsed, name)
	}

	_, ok := ParseIndicatorType("Supertrend")
	suite.False(ok)
}

func (suite *LibraryTestSuite) TestCalculateWithParams() {
	data := barsWithSpread(0, sequence(1, 20)...)

	value := suite.library.Calculate("SMA", data, 4)
	suite.InDelta(18.5, value.Get(ValueKey), 1e-12)
}

func (suite *LibraryTestSuite) TestUnknownIndicatorReturnsEmptyValue() {
	value := suite.library.Calculate("Supertrend", barsWithSpread(0, sequence(1, 20)...))
	suite.Empty(value)

	_, err := suite.library.TryCalculate("Supertrend", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *LibraryTestSuite) TestInsufficientDataReturnsNeutralValue() {
	value := suite.library.Calculate("Bollinger_Bands", barsWithSpread(0, 1, 2, 3))
	suite.Equal(types.IndicatorValue{"upper": 0, "middle": 0, "lower": 0}, value)

	_, err := suite.library.TryCalculate("Bollinger_Bands", barsWithSpread(0, 1, 2, 3))
	suite.True(errors.IsInsufficientDataError(err))
	suite.True(errors.IsNoData(err))
}

func (suite *LibraryTestSuite) TestBadParamsReturnNeutralValue() {
	value := suite.library.Calculate("RSI", barsWithSpread(0, sequence(1, 30)...), "fourteen")
	suite.Equal(types.IndicatorValue{ValueKey: 0}, value)
}

func (suite *LibraryTestSuite) TestCalculateAll() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 50 + 5*math.Cos(float64(i)/3)
	}

	all := suite.library.CalculateAll(barsWithSpread(0.5, closes...))
	suite.Len(all, len(types.AllIndicatorTypes()))

	for name, value := range all {
		suite.NotEmpty(value, string(name))
	}
}
