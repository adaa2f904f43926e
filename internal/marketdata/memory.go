package marketdata

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// MemoryPriceProvider serves bars held in memory, indexed by symbol and sorted by time.
type MemoryPriceProvider struct {
	mu   sync.RWMutex
	data map[string][]types.MarketData
}

// NewMemoryPriceProvider creates a provider preloaded with the given bars.
func NewMemoryPriceProvider(data ...types.MarketData) *MemoryPriceProvider {
	p := &MemoryPriceProvider{data: make(map[string][]types.MarketData)}
	p.Add(data...)

	return p
}

// Add indexes more bars. A bar with the same symbol and time as an existing one replaces it.
func (p *MemoryPriceProvider) Add(data ...types.MarketData) {
	p.mu.Lock()
	defer p.mu.Unlock()

	touched := make(map[string]struct{})

	for _, d := range data {
		p.data[d.Symbol] = append(p.data[d.Symbol], d)
		touched[d.Symbol] = struct{}{}
	}

	for symbol := range touched {
		series := p.data[symbol]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Time.Before(series[j].Time)
		})

		deduped := series[:0]
		for i, d := range series {
			if i+1 < len(series) && series[i+1].Time.Equal(d.Time) {
				continue
			}

			deduped = append(deduped, d)
		}

		p.data[symbol] = deduped
	}
}

// Symbols returns the indexed symbols in sorted order.
func (p *MemoryPriceProvider) Symbols() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	symbols := make([]string, 0, len(p.data))
	for symbol := range p.data {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}

func (p *MemoryPriceProvider) GetPrices(_ context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	series := p.data[symbol]
	from := sort.Search(len(series), func(i int) bool {
		return !series[i].Time.Before(start)
	})
	to := sort.Search(len(series), func(i int) bool {
		return series[i].Time.After(end)
	})

	if from >= to {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no data found for symbol %s between %s and %s",
			symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	return types.CopySeries(series[from:to]), nil
}
