package marketdata

import (
	"testing"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TimespanTestSuite struct {
	suite.Suite
}

func TestTimespanSuite(t *testing.T) {
	suite.Run(t, new(TimespanTestSuite))
}

func (suite *TimespanTestSuite) TestAggregates() {
	tests := []struct {
		timespan   Timespan
		multiplier int
		unit       models.Timespan
	}{
		{TimespanOneMinute, 1, models.Minute},
		{TimespanFifteenMinutes, 15, models.Minute},
		{TimespanThirtyMinutes, 30, models.Minute},
		{TimespanFourHours, 4, models.Hour},
		{TimespanTwelveHours, 12, models.Hour},
		{TimespanOneDay, 1, models.Day},
		{TimespanThreeDays, 3, models.Day},
		{TimespanOneWeek, 1, models.Week},
		{TimespanOneMonth, 1, models.Month},
	}

	for _, tc := range tests {
		suite.Run(string(tc.timespan), func() {
			suite.True(tc.timespan.Valid())
			suite.Equal(tc.multiplier, tc.timespan.Multiplier())
			suite.Equal(tc.unit, tc.timespan.Timespan())
		})
	}
}

func (suite *TimespanTestSuite) TestUnknownFallsBackToOneDay() {
	unknown := Timespan("7x")
	suite.False(unknown.Valid())
	suite.Equal(1, unknown.Multiplier())
	suite.Equal(models.Day, unknown.Timespan())
}

func (suite *TimespanTestSuite) TestParseTimespan() {
	t, err := ParseTimespan("4h")
	suite.NoError(err)
	suite.Equal(TimespanFourHours, t)

	_, err = ParseTimespan("1s")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimespan))
}

func (suite *TimespanTestSuite) TestSupportedTimespansIsSorted() {
	names := SupportedTimespans()
	suite.Len(names, 15)
	suite.IsNonDecreasing(names)
	suite.Contains(names, "1M")
}
