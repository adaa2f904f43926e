package datasource

import (
	"time"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

var intervalDurations = map[Interval]time.Duration{
	Interval1m:  time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  time.Hour,
	Interval4h:  4 * time.Hour,
	Interval6h:  6 * time.Hour,
	Interval8h:  8 * time.Hour,
	Interval12h: 12 * time.Hour,
	Interval1d:  24 * time.Hour,
	Interval1w:  7 * 24 * time.Hour,
}

// Minutes returns the bucket width used by time_bucket.
func (i Interval) Minutes() (int, error) {
	d, ok := intervalDurations[i]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported interval: %s", i)
	}

	return int(d / time.Minute), nil
}

// ParseInterval validates a bar interval name. An empty name means the bars are read as stored.
func ParseInterval(raw string) (Interval, error) {
	if raw == "" {
		return "", nil
	}

	interval := Interval(raw)
	if _, err := interval.Minutes(); err != nil {
		return "", err
	}

	return interval, nil
}
