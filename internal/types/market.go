package types

import "time"

// MarketData is one daily OHLCV bar of an instrument.
type MarketData struct {
	Id     string    `csv:"id" json:"id" yaml:"id"`
	Symbol string    `csv:"symbol" json:"symbol" yaml:"symbol"`
	Time   time.Time `csv:"time" json:"time" yaml:"time"`
	Open   float64   `csv:"open" json:"open" yaml:"open"`
	High   float64   `csv:"high" json:"high" yaml:"high"`
	Low    float64   `csv:"low" json:"low" yaml:"low"`
	Close  float64   `csv:"close" json:"close" yaml:"close"`
	Volume float64   `csv:"volume" json:"volume" yaml:"volume"`
}

// Closes returns the close prices of the series in order.
func Closes(data []MarketData) []float64 {
	closes := make([]float64, len(data))
	for i, d := range data {
		closes[i] = d.Close
	}

	return closes
}

// Highs returns the high prices of the series in order.
func Highs(data []MarketData) []float64 {
	highs := make([]float64, len(data))
	for i, d := range data {
		highs[i] = d.High
	}

	return highs
}

// Lows returns the low prices of the series in order.
func Lows(data []MarketData) []float64 {
	lows := make([]float64, len(data))
	for i, d := range data {
		lows[i] = d.Low
	}

	return lows
}

// Volumes returns the traded volumes of the series in order.
func Volumes(data []MarketData) []float64 {
	volumes := make([]float64, len(data))
	for i, d := range data {
		volumes[i] = d.Volume
	}

	return volumes
}

// CopySeries returns an independent copy of the series so concurrent consumers never share a backing array.
func CopySeries(data []MarketData) []MarketData {
	if data == nil {
		return nil
	}

	out := make([]MarketData, len(data))
	copy(out, data)

	return out
}

// AlignByDate keeps the bars of a and b whose trading day appears in both series.
// The two results have equal length and matching dates.
func AlignByDate(a, b []MarketData) ([]MarketData, []MarketData) {
	index := make(map[string]int, len(b))
	for i, d := range b {
		index[dayKey(d.Time)] = i
	}

	alignedA := make([]MarketData, 0, len(a))
	alignedB := make([]MarketData, 0, len(a))

	for _, d := range a {
		j, ok := index[dayKey(d.Time)]
		if !ok {
			continue
		}

		alignedA = append(alignedA, d)
		alignedB = append(alignedB, b[j])
	}

	return alignedA, alignedB
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
