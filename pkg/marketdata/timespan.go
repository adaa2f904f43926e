package marketdata

import (
	"sort"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Timespan is a bar interval such as "15m" or "1d".
type Timespan string

const (
	TimespanOneMinute      Timespan = "1m"
	TimespanThreeMinutes   Timespan = "3m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanTwoHours       Timespan = "2h"
	TimespanFourHours      Timespan = "4h"
	TimespanSixHours       Timespan = "6h"
	TimespanEightHours     Timespan = "8h"
	TimespanTwelveHours    Timespan = "12h"
	TimespanOneDay         Timespan = "1d"
	TimespanThreeDays      Timespan = "3d"
	TimespanOneWeek        Timespan = "1w"
	TimespanOneMonth       Timespan = "1M"
)

type aggregate struct {
	multiplier int
	unit       models.Timespan
}

var timespans = map[Timespan]aggregate{
	TimespanOneMinute:      {1, models.Minute},
	TimespanThreeMinutes:   {3, models.Minute},
	TimespanFiveMinutes:    {5, models.Minute},
	TimespanFifteenMinutes: {15, models.Minute},
	TimespanThirtyMinutes:  {30, models.Minute},
	TimespanOneHour:        {1, models.Hour},
	TimespanTwoHours:       {2, models.Hour},
	TimespanFourHours:      {4, models.Hour},
	TimespanSixHours:       {6, models.Hour},
	TimespanEightHours:     {8, models.Hour},
	TimespanTwelveHours:    {12, models.Hour},
	TimespanOneDay:         {1, models.Day},
	TimespanThreeDays:      {3, models.Day},
	TimespanOneWeek:        {1, models.Week},
	TimespanOneMonth:       {1, models.Month},
}

// ParseTimespan returns the timespan for raw or an InvalidTimespan error.
func ParseTimespan(raw string) (Timespan, error) {
	t := Timespan(raw)
	if !t.Valid() {
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported interval %q, expected one of %v", raw, SupportedTimespans())
	}

	return t, nil
}

// SupportedTimespans lists every known interval in a stable order.
func SupportedTimespans() []string {
	names := make([]string, 0, len(timespans))
	for t := range timespans {
		names = append(names, string(t))
	}

	sort.Strings(names)

	return names
}

func (t Timespan) Valid() bool {
	_, ok := timespans[t]

	return ok
}

// Multiplier is the number of units per bar. Unknown intervals fall back to 1.
func (t Timespan) Multiplier() int {
	if a, ok := timespans[t]; ok {
		return a.multiplier
	}

	return 1
}

// Timespan is the aggregate unit. Unknown intervals fall back to a day.
func (t Timespan) Timespan() models.Timespan {
	if a, ok := timespans[t]; ok {
		return a.unit
	}

	return models.Day
}
