package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func (suite *MarketTestSuite) TestMarketDataStruct() {
	now := time.Now()
	data := MarketData{
		Id:     "test-id-123",
		Symbol: "0050",
		Time:   now,
		Open:   150.0,
		High:   155.0,
		Low:    148.0,
		Close:  152.5,
		Volume: 1000000.0,
	}

	suite.Equal("test-id-123", data.Id)
	suite.Equal("0050", data.Symbol)
	suite.Equal(now, data.Time)
	suite.Equal(152.5, data.Close)
}

func (suite *MarketTestSuite) TestColumnExtraction() {
	data := []MarketData{
		{Time: day(1), High: 11, Low: 9, Close: 10, Volume: 100},
		{Time: day(2), High: 12, Low: 10, Close: 11, Volume: 200},
	}

	suite.Equal([]float64{10, 11}, Closes(data))
	suite.Equal([]float64{11, 12}, Highs(data))
	suite.Equal([]float64{9, 10}, Lows(data))
	suite.Equal([]float64{100, 200}, Volumes(data))
	suite.Empty(Closes(nil))
}

func (suite *MarketTestSuite) TestCopySeriesIsIndependent() {
	data := []MarketData{{Time: day(1), Close: 10}}
	copied := CopySeries(data)
	copied[0].Close = 99

	suite.Equal(10.0, data[0].Close)
	suite.Nil(CopySeries(nil))
}

func (suite *MarketTestSuite) TestAlignByDate() {
	stock := []MarketData{
		{Time: day(1), Close: 10},
		{Time: day(2), Close: 11},
		{Time: day(4), Close: 12},
	}
	market := []MarketData{
		{Time: day(2), Close: 200},
		{Time: day(3), Close: 201},
		{Time: day(4).Add(13 * time.Hour), Close: 202},
	}

	a, b := AlignByDate(stock, market)
	suite.Len(a, 2)
	suite.Len(b, 2)
	suite.Equal([]float64{11, 12}, Closes(a))
	suite.Equal([]float64{200, 202}, Closes(b))
}
