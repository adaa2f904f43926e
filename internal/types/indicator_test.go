package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestIndicatorTypeConstants() {
	suite.Equal(IndicatorType("sma"), IndicatorTypeSMA)
	suite.Equal(IndicatorType("bollinger_bands"), IndicatorTypeBollingerBands)
	suite.Equal(IndicatorType("williams_r"), IndicatorTypeWilliamsR)
	suite.Equal(IndicatorType("ad_line"), IndicatorTypeADLine)
	suite.Equal(IndicatorType("psar"), IndicatorTypeParabolicSAR)
	suite.Equal(IndicatorType("ichimoku"), IndicatorTypeIchimoku)
}

func (suite *IndicatorTestSuite) TestAllIndicatorTypesUnique() {
	all := AllIndicatorTypes()
	suite.Len(all, 21)

	seen := make(map[IndicatorType]bool)
	for _, t := range all {
		suite.False(seen[t], "duplicate indicator %s", t)
		seen[t] = true
	}
}

func (suite *IndicatorTestSuite) TestIndicatorValueGet() {
	value := IndicatorValue{"upper": 110, "lower": 90}
	suite.Equal(110.0, value.Get("upper"))
	suite.Equal(0.0, value.Get("middle"))

	var empty IndicatorValue
	suite.Equal(0.0, empty.Get("value"))
}
