package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// MACD is the difference of a fast and slow EMA with its signal line and histogram.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{fastPeriod: 12, slowPeriod: 26, signalPeriod: 9}
}

func (m *MACD) Name() types.IndicatorType { return types.IndicatorTypeMACD }

func (m *MACD) Components() []string { return []string{"macd", "signal", "histogram"} }

// Config configures the MACD indicator. Expected parameters: fast (int), slow (int), signal (int).
func (m *MACD) Config(params ...any) error {
	if err := tooManyParams(m.Name(), params, 3); err != nil {
		return err
	}

	targets := []*int{&m.fastPeriod, &m.slowPeriod, &m.signalPeriod}
	names := []string{"fast period", "slow period", "signal period"}

	for i := range params {
		value, err := intParam(params, i, names[i])
		if err != nil {
			return err
		}

		*targets[i] = value
	}

	return nil
}

func (m *MACD) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(m.Name(), data, max(m.fastPeriod, m.slowPeriod)+m.signalPeriod-1); err != nil {
		return nil, err
	}

	closes := types.Closes(data)
	fast := ewm(closes, m.fastPeriod)
	slow := ewm(closes, m.slowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	signal := ewm(line, m.signalPeriod)
	last := len(line) - 1

	return types.IndicatorValue{
		"macd":      line[last],
		"signal":    signal[last],
		"histogram": line[last] - signal[last],
	}, nil
}

// ADX is the average directional index. Directional movement and true range are averaged
// with simple rolling means.
type ADX struct {
	period int
}

// NewADX creates a new ADX indicator with default configuration.
func NewADX() Indicator {
	return &ADX{period: 14}
}

func (a *ADX) Name() types.IndicatorType { return types.IndicatorTypeADX }

func (a *ADX) Components() []string { return []string{ValueKey, "plus_di", "minus_di"} }

// Config configures the ADX indicator. Expected parameters: period (int).
func (a *ADX) Config(params ...any) error {
	return configPeriod(a.Name(), params, &a.period)
}

func (a *ADX) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(a.Name(), data, 2*a.period); err != nil {
		return nil, err
	}

	highs, lows, closes := types.Highs(data), types.Lows(data), types.Closes(data)
	tr := trueRange(highs, lows, closes)
	n := len(closes)

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]

		if up > down && up > 0 {
			plusDM[i] = up
		}

		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	// dx is defined once a full window of directional movement exists.
	dx := make([]float64, 0, n)

	var plusDI, minusDI float64

	for end := a.period; end < n; end++ {
		start := end - a.period + 1
		atr := mean(tr[start : end+1])

		if atr == 0 {
			plusDI, minusDI = 0, 0
		} else {
			plusDI = 100 * mean(plusDM[start:end+1]) / atr
			minusDI = 100 * mean(minusDM[start:end+1]) / atr
		}

		if sum := plusDI + minusDI; sum == 0 {
			dx = append(dx, 0)
		} else {
			dx = append(dx, 100*math.Abs(plusDI-minusDI)/sum)
		}
	}

	return types.IndicatorValue{
		ValueKey:   mean(tail(dx, a.period)),
		"plus_di":  plusDI,
		"minus_di": minusDI,
	}, nil
}

// ParabolicSAR is Wilder's stop-and-reverse level.
type ParabolicSAR struct {
	afStart     float64
	afIncrement float64
	afMax       float64
}

// NewParabolicSAR creates a new Parabolic SAR indicator with default configuration.
func NewParabolicSAR() Indicator {
	return &ParabolicSAR{afStart: 0.02, afIncrement: 0.02, afMax: 0.2}
}

func (p *ParabolicSAR) Name() types.IndicatorType { return types.IndicatorTypeParabolicSAR }

func (p *ParabolicSAR) Components() []string { return []string{ValueKey, "trend"} }

// Config configures the acceleration factor. Expected parameters: start (float64), increment (float64), max (float64).
func (p *ParabolicSAR) Config(params ...any) error {
	if err := tooManyParams(p.Name(), params, 3); err != nil {
		return err
	}

	targets := []*float64{&p.afStart, &p.afIncrement, &p.afMax}
	names := []string{"af start", "af increment", "af max"}

	for i := range params {
		value, err := floatParam(params, i, names[i])
		if err != nil {
			return err
		}

		*targets[i] = value
	}

	return nil
}

// Calculate starts in an uptrend from the first bar's low. trend is +1 for an uptrend and -1 for a downtrend.
func (p *ParabolicSAR) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(p.Name(), data, 2); err != nil {
		return nil, err
	}

	bullish := true
	sar := data[0].Low
	ep := data[0].High
	af := p.afStart

	for i := 1; i < len(data); i++ {
		sar += af * (ep - sar)

		if bullish {
			if data[i].Low < sar {
				bullish = false
				sar = ep
				ep = data[i].Low
				af = p.afStart
			} else if data[i].High > ep {
				ep = data[i].High
				af = math.Min(af+p.afIncrement, p.afMax)
			}

			continue
		}

		if data[i].High > sar {
			bullish = true
			sar = ep
			ep = data[i].High
			af = p.afStart
		} else if data[i].Low < ep {
			ep = data[i].Low
			af = math.Min(af+p.afIncrement, p.afMax)
		}
	}

	trend := 1.0
	if !bullish {
		trend = -1
	}

	return types.IndicatorValue{ValueKey: sar, "trend": trend}, nil
}

// Aroon measures how recently the period high and low occurred, from 0 to 100.
type Aroon struct {
	period int
}

// NewAroon creates a new Aroon indicator with default configuration.
func NewAroon() Indicator {
	return &Aroon{period: 25}
}

func (a *Aroon) Name() types.IndicatorType { return types.IndicatorTypeAroon }

func (a *Aroon) Components() []string { return []string{"up", "down"} }

// Config configures the Aroon indicator. Expected parameters: period (int).
func (a *Aroon) Config(params ...any) error {
	return configPeriod(a.Name(), params, &a.period)
}

// Calculate looks at the last period+1 bars; on ties the most recent extreme wins.
func (a *Aroon) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(a.Name(), data, a.period+1); err != nil {
		return nil, err
	}

	window := data[len(data)-a.period-1:]
	highIdx, lowIdx := 0, 0

	for i, bar := range window {
		if bar.High >= window[highIdx].High {
			highIdx = i
		}

		if bar.Low <= window[lowIdx].Low {
			lowIdx = i
		}
	}

	last := len(window) - 1
	period := float64(a.period)

	return types.IndicatorValue{
		"up":   100 * (period - float64(last-highIdx)) / period,
		"down": 100 * (period - float64(last-lowIdx)) / period,
	}, nil
}

// Ichimoku reports the Tenkan-sen and Kijun-sen lines.
type Ichimoku struct {
	tenkanPeriod int
	kijunPeriod  int
}

// NewIchimoku creates a new Ichimoku indicator with default configuration.
func NewIchimoku() Indicator {
	return &Ichimoku{tenkanPeriod: 9, kijunPeriod: 26}
}

func (i *Ichimoku) Name() types.IndicatorType { return types.IndicatorTypeIchimoku }

func (i *Ichimoku) Components() []string { return []string{"tenkan", "kijun"} }

// Config configures the Ichimoku indicator. Expected parameters: tenkan period (int), kijun period (int).
func (i *Ichimoku) Config(params ...any) error {
	if err := tooManyParams(i.Name(), params, 2); err != nil {
		return err
	}

	targets := []*int{&i.tenkanPeriod, &i.kijunPeriod}
	names := []string{"tenkan period", "kijun period"}

	for idx := range params {
		value, err := intParam(params, idx, names[idx])
		if err != nil {
			return err
		}

		*targets[idx] = value
	}

	return nil
}

func (i *Ichimoku) Calculate(data []types.MarketData) (types.IndicatorValue, error) {
	if err := requireBars(i.Name(), data, max(i.tenkanPeriod, i.kijunPeriod)); err != nil {
		return nil, err
	}

	midpoint := func(period int) float64 {
		window := data[len(data)-period:]

		return (highest(types.Highs(window)) + lowest(types.Lows(window))) / 2
	}

	return types.IndicatorValue{
		"tenkan": midpoint(i.tenkanPeriod),
		"kijun":  midpoint(i.kijunPeriod),
	}, nil
}
