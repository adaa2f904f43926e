package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

// barsWithSpread builds bars whose high and low sit spread above and below the close.
func barsWithSpread(spread float64, closes ...float64) []types.MarketData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := make([]types.MarketData, len(closes))

	for i, c := range closes {
		data[i] = types.MarketData{
			Symbol: "0050",
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + spread,
			Low:    c - spread,
			Close:  c,
			Volume: 1000,
		}
	}

	return data
}

func sequence(from, to float64) []float64 {
	out := make([]float64, 0, int(to-from)+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}

	return out
}

func constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}

	return out
}

func (suite *IndicatorTestSuite) calc(ind Indicator, data []types.MarketData) types.IndicatorValue {
	value, err := ind.Calculate(data)
	suite.Require().NoError(err)

	return value
}

func (suite *IndicatorTestSuite) TestSMA() {
	value := suite.calc(NewSMA(), barsWithSpread(0, sequence(1, 20)...))
	suite.InDelta(10.5, value.Get(ValueKey), 1e-12)

	_, err := NewSMA().Calculate(barsWithSpread(0, sequence(1, 19)...))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestEMA() {
	ema := NewEMA()
	suite.NoError(ema.Config(3))

	value := suite.calc(ema, barsWithSpread(0, 1, 2, 3))
	suite.InDelta(2.25, value.Get(ValueKey), 1e-12)

	value = suite.calc(NewEMA(), barsWithSpread(0, constant(50, 30)...))
	suite.InDelta(50.0, value.Get(ValueKey), 1e-12)
}

func (suite *IndicatorTestSuite) TestRSI() {
	suite.InDelta(100.0, suite.calc(NewRSI(), barsWithSpread(0, sequence(1, 15)...)).Get(ValueKey), 1e-12)
	suite.InDelta(50.0, suite.calc(NewRSI(), barsWithSpread(0, constant(10, 15)...)).Get(ValueKey), 1e-12)

	alternating := make([]float64, 15)
	for i := range alternating {
		alternating[i] = 10 + float64(i%2)
	}

	suite.InDelta(50.0, suite.calc(NewRSI(), barsWithSpread(0, alternating...)).Get(ValueKey), 1e-12)

	_, err := NewRSI().Calculate(barsWithSpread(0, sequence(1, 14)...))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestStochastic() {
	value := suite.calc(NewStochastic(), barsWithSpread(1, sequence(1, 16)...))
	suite.InDelta(1400.0/15.0, value.Get("k"), 1e-9)
	suite.InDelta(1400.0/15.0, value.Get("d"), 1e-9)

	_, err := NewStochastic().Calculate(barsWithSpread(1, sequence(1, 15)...))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestMACDFlatSeries() {
	value := suite.calc(NewMACD(), barsWithSpread(0, constant(100, 40)...))
	suite.InDelta(0.0, value.Get("macd"), 1e-9)
	suite.InDelta(0.0, value.Get("signal"), 1e-9)
	suite.InDelta(0.0, value.Get("histogram"), 1e-9)

	uptrend := suite.calc(NewMACD(), barsWithSpread(0, sequence(1, 40)...))
	suite.Greater(uptrend.Get("macd"), 0.0)

	_, err := NewMACD().Calculate(barsWithSpread(0, sequence(1, 33)...))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestBollingerBands() {
	value := suite.calc(NewBollingerBands(), barsWithSpread(0, sequence(1, 20)...))
	suite.InDelta(10.5, value.Get("middle"), 1e-12)
	suite.InDelta(10.5+2*math.Sqrt(35), value.Get("upper"), 1e-9)
	suite.InDelta(10.5-2*math.Sqrt(35), value.Get("lower"), 1e-9)
}

func (suite *IndicatorTestSuite) TestATRAndKeltner() {
	data := barsWithSpread(1, constant(100, 25)...)

	suite.InDelta(2.0, suite.calc(NewATR(), data).Get(ValueKey), 1e-12)

	keltner := suite.calc(NewKeltnerChannel(), data)
	suite.InDelta(100.0, keltner.Get("middle"), 1e-9)
	suite.InDelta(104.0, keltner.Get("upper"), 1e-9)
	suite.InDelta(96.0, keltner.Get("lower"), 1e-9)
}

func (suite *IndicatorTestSuite) TestCCI() {
	suite.InDelta(0.0, suite.calc(NewCCI(), barsWithSpread(1, constant(100, 20)...)).Get(ValueKey), 1e-12)
	suite.Greater(suite.calc(NewCCI(), barsWithSpread(1, sequence(1, 20)...)).Get(ValueKey), 0.0)
}

func (suite *IndicatorTestSuite) TestMomentumAndROC() {
	suite.InDelta(10.0, suite.calc(NewMomentum(), barsWithSpread(0, sequence(1, 11)...)).Get(ValueKey), 1e-12)
	suite.InDelta(10.0, suite.calc(NewROC(), barsWithSpread(0, sequence(100, 110)...)).Get(ValueKey), 1e-9)

	_, err := NewMomentum().Calculate(barsWithSpread(0, sequence(1, 10)...))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestSTD() {
	suite.InDelta(math.Sqrt(35), suite.calc(NewSTD(), barsWithSpread(0, sequence(1, 20)...)).Get(ValueKey), 1e-9)
}

func (suite *IndicatorTestSuite) TestWilliamsR() {
	data := barsWithSpread(0, sequence(1, 14)...)
	suite.InDelta(0.0, suite.calc(NewWilliamsR(), data).Get(ValueKey), 1e-12)

	down := barsWithSpread(0, sequence(1, 14)...)
	for i := range down {
		down[i].Close = 15 - down[i].Close
		down[i].High = down[i].Close
		down[i].Low = down[i].Close
	}

	suite.InDelta(-100.0, suite.calc(NewWilliamsR(), down).Get(ValueKey), 1e-12)
	suite.InDelta(-50.0, suite.calc(NewWilliamsR(), barsWithSpread(0, constant(3, 14)...)).Get(ValueKey), 1e-12)
}

func (suite *IndicatorTestSuite) TestVWMA() {
	vwma := NewVWMA()
	suite.NoError(vwma.Config(2))

	data := barsWithSpread(0, 10, 20)
	data[0].Volume = 1
	data[1].Volume = 3

	suite.InDelta(17.5, suite.calc(vwma, data).Get(ValueKey), 1e-12)

	data[0].Volume = 0
	data[1].Volume = 0
	_, err := vwma.Calculate(data)
	suite.Error(err)
}

func (suite *IndicatorTestSuite) TestVolumeIndicators() {
	data := barsWithSpread(1, 10, 11, 10.5)
	// close at the high: full accumulation on the first bar
	data[0].High = 10

	suite.InDelta(1000.0, suite.calc(NewADLine(), data).Get(ValueKey), 1e-9)
	suite.InDelta(0.0, suite.calc(NewOBV(), data).Get(ValueKey), 1e-12)

	up := barsWithSpread(1, 10, 11, 12)
	suite.InDelta(2000.0, suite.calc(NewOBV(), up).Get(ValueKey), 1e-12)
}

func (suite *IndicatorTestSuite) TestDonchianChannel() {
	value := suite.calc(NewDonchianChannel(), barsWithSpread(1, sequence(1, 25)...))
	suite.InDelta(26.0, value.Get("upper"), 1e-12)
	suite.InDelta(5.0, value.Get("lower"), 1e-12)
}

func (suite *IndicatorTestSuite) TestADXStrongUptrend() {
	value := suite.calc(NewADX(), barsWithSpread(1, sequence(1, 40)...))
	suite.InDelta(100.0, value.Get(ValueKey), 1e-9)
	suite.Greater(value.Get("plus_di"), value.Get("minus_di"))

	_, err := NewADX().Calculate(barsWithSpread(1, sequence(1, 27)...))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestParabolicSAR() {
	data := barsWithSpread(1, sequence(1, 30)...)
	value := suite.calc(NewParabolicSAR(), data)

	suite.Equal(1.0, value.Get("trend"))
	suite.Less(value.Get(ValueKey), data[len(data)-1].Low)

	down := barsWithSpread(1, sequence(1, 30)...)
	for i := range down {
		c := 31 - float64(i)
		down[i].Close, down[i].High, down[i].Low = c, c+1, c-1
	}

	value = suite.calc(NewParabolicSAR(), down)
	suite.Equal(-1.0, value.Get("trend"))
	suite.Greater(value.Get(ValueKey), down[len(down)-1].High)
}

func (suite *IndicatorTestSuite) TestAroon() {
	value := suite.calc(NewAroon(), barsWithSpread(1, sequence(1, 30)...))
	suite.InDelta(100.0, value.Get("up"), 1e-12)
	suite.InDelta(0.0, value.Get("down"), 1e-12)
}

func (suite *IndicatorTestSuite) TestIchimoku() {
	value := suite.calc(NewIchimoku(), barsWithSpread(1, sequence(1, 26)...))
	suite.InDelta(22.0, value.Get("tenkan"), 1e-12)
	suite.InDelta(13.5, value.Get("kijun"), 1e-12)
}

func (suite *IndicatorTestSuite) TestConfigValidation() {
	sma := NewSMA()
	suite.Error(sma.Config("twenty"))
	suite.Error(sma.Config(0))
	suite.Error(sma.Config(-5))
	suite.Error(sma.Config(10, 20))
	suite.NoError(sma.Config(10.0))
	suite.Error(sma.Config(10.5))

	bb := NewBollingerBands()
	suite.NoError(bb.Config(10, 2.5))
	suite.Error(bb.Config(10, -1.0))

	suite.Error(NewOBV().Config(3))
}

func (suite *IndicatorTestSuite) TestNeutralValue() {
	value := NeutralValue(NewMACD())
	suite.Equal(types.IndicatorValue{"macd": 0, "signal": 0, "histogram": 0}, value)
}

func (suite *IndicatorTestSuite) TestNoNaNOnRealisticSeries() {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5)
	}

	data := barsWithSpread(1.5, closes...)
	registry := NewDefaultIndicatorRegistry()

	for _, name := range registry.ListIndicators() {
		ind, err := registry.GetIndicator(name)
		suite.Require().NoError(err)

		value, err := ind.Calculate(data)
		suite.NoError(err, "indicator %s", name)

		for component, v := range value {
			suite.False(math.IsNaN(v) || math.IsInf(v, 0), "indicator %s component %s", name, component)
		}
	}
}
