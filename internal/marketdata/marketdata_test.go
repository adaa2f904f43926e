package marketdata

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MarketDataTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestMarketDataSuite(t *testing.T) {
	suite.Run(t, new(MarketDataTestSuite))
}

func (suite *MarketDataTestSuite) SetupTest() {
	suite.ctx = context.Background()
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func bar(symbol string, d int, close float64) types.MarketData {
	return types.MarketData{Symbol: symbol, Time: day(d), Open: close, High: close, Low: close, Close: close, Volume: 100}
}

func (suite *MarketDataTestSuite) TestMemoryPriceProviderRange() {
	provider := NewMemoryPriceProvider(
		bar("0050", 4, 104),
		bar("0050", 1, 101),
		bar("0050", 3, 103),
		bar("2330", 1, 500),
	)

	data, err := provider.GetPrices(suite.ctx, "0050", day(1), day(3))
	suite.Require().NoError(err)
	suite.Equal([]float64{101, 103}, types.Closes(data))

	data, err = provider.GetPrices(suite.ctx, "0050", day(2), day(30))
	suite.Require().NoError(err)
	suite.Equal([]float64{103, 104}, types.Closes(data))

	suite.Equal([]string{"0050", "2330"}, provider.Symbols())
}

func (suite *MarketDataTestSuite) TestMemoryPriceProviderNoData() {
	provider := NewMemoryPriceProvider(bar("0050", 1, 101))

	_, err := provider.GetPrices(suite.ctx, "0050", day(5), day(9))
	suite.True(errors.IsNoData(err))

	_, err = provider.GetPrices(suite.ctx, "9999", day(1), day(9))
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *MarketDataTestSuite) TestMemoryPriceProviderReplacesDuplicates() {
	provider := NewMemoryPriceProvider(bar("0050", 1, 101))
	provider.Add(bar("0050", 1, 99), bar("0050", 2, 102))

	data, err := provider.GetPrices(suite.ctx, "0050", day(1), day(2))
	suite.Require().NoError(err)
	suite.Equal([]float64{99, 102}, types.Closes(data))
}

func (suite *MarketDataTestSuite) TestMemoryPriceProviderReturnsCopies() {
	provider := NewMemoryPriceProvider(bar("0050", 1, 101))

	data, err := provider.GetPrices(suite.ctx, "0050", day(1), day(1))
	suite.Require().NoError(err)
	data[0].Close = 0

	again, err := provider.GetPrices(suite.ctx, "0050", day(1), day(1))
	suite.Require().NoError(err)
	suite.Equal(101.0, again[0].Close)
}

func (suite *MarketDataTestSuite) TestStaticSentiment() {
	sentiment := NewStaticSentiment(map[string]float64{"0050": 1.7, "2330": -0.4}, optional.None[float64]())

	score, err := sentiment.GetSentiment(suite.ctx, "0050", day(1))
	suite.NoError(err)
	suite.Equal(1.0, score)

	score, err = sentiment.GetSentiment(suite.ctx, "2330", day(1))
	suite.NoError(err)
	suite.Equal(-0.4, score)

	_, err = sentiment.GetSentiment(suite.ctx, "9999", day(1))
	suite.True(errors.IsNoData(err))

	withDefault := NewStaticSentiment(nil, optional.Some(-3.0))
	score, err = withDefault.GetSentiment(suite.ctx, "9999", day(1))
	suite.NoError(err)
	suite.Equal(-1.0, score)
}

func (suite *MarketDataTestSuite) TestLookupSentiment() {
	sentiment := NewStaticSentiment(map[string]float64{"0050": 0.6}, optional.None[float64]())

	suite.Equal(optional.Some(0.6), LookupSentiment(suite.ctx, sentiment, "0050", day(1)))
	suite.True(LookupSentiment(suite.ctx, sentiment, "2330", day(1)).IsNone())
	suite.True(LookupSentiment(suite.ctx, nil, "0050", day(1)).IsNone())
	suite.Equal(0.0, ClampSentiment(math.NaN()))
}

func (suite *MarketDataTestSuite) TestVolatilityIndex() {
	static := StaticVolatilityIndex(18.5)
	level, err := static.GetVolatilityIndex(suite.ctx, day(1))
	suite.NoError(err)
	suite.Equal(18.5, level)

	provider := NewMemoryPriceProvider(bar("VIX", 1, 15), bar("VIX", 4, 24), bar("VIX", 9, 30))
	index := NewPriceVolatilityIndex(provider, "VIX", 0)

	level, err = index.GetVolatilityIndex(suite.ctx, day(6))
	suite.NoError(err)
	suite.Equal(24.0, level)

	_, err = NewPriceVolatilityIndex(provider, "VIX", 24*time.Hour).GetVolatilityIndex(suite.ctx, day(7))
	suite.True(errors.IsNoData(err))
}
