package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"RiskRange/internal/cache"
	"RiskRange/internal/model"
	"RiskRange/internal/riskrange"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PriceBar
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, years int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, years*252), nil
}

// GenerateMockBars builds a gently drifting synthetic daily series.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	start := time.Now().UTC().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Snapshot bundles one ticker's full pipeline output.
type Snapshot struct {
	Series *model.PriceSeries
	Rows   []model.RiskRangeRow
	Table  *riskrange.Table
}

// Latest returns the most recent fully defined row, or false if the whole
// series is still inside its warm-up span.
func (s *Snapshot) Latest() (model.RiskRangeRow, bool) {
	for i := len(s.Rows) - 1; i >= 0; i-- {
		if !math.IsNaN(s.Rows[i].WidthPct) {
			return s.Rows[i], true
		}
	}
	return model.RiskRangeRow{}, false
}

// Collector orchestrates data retrieval, caching and the risk range pipeline
// for one ticker at a time. Tickers are independent; callers may run Collect
// for different symbols concurrently.
type Collector struct {
	Fetcher Fetcher
	Cache   cache.Cache
	Years   int
	Params  riskrange.Params
}

// NewCollector creates a Collector. A nil cache disables caching.
func NewCollector(fetcher Fetcher, c cache.Cache, years int, params riskrange.Params) *Collector {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Collector{Fetcher: fetcher, Cache: c, Years: years, Params: params}
}

// Collect fetches (or loads from cache) the raw series for symbol and runs the
// indicator, band and projection stages over it.
func (c *Collector) Collect(ctx context.Context, symbol string) (*Snapshot, error) {
	series, err := c.loadSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	indicators, err := riskrange.ComputeIndicators(series, c.Params)
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", symbol, err)
	}
	rows, err := riskrange.BuildRiskRange(indicators, c.Params)
	if err != nil {
		return nil, fmt.Errorf("build risk range for %s: %w", symbol, err)
	}

	return &Snapshot{
		Series: series,
		Rows:   rows,
		Table:  riskrange.ProjectTable(rows),
	}, nil
}

func (c *Collector) loadSeries(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	if series, ok, err := c.Cache.Load(symbol, c.Years); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("cache load failed")
	} else if ok {
		log.Debug().Str("symbol", symbol).Int("bars", len(series.Bars)).Msg("cache hit")
		return series, nil
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Years)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	series := &model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now().UTC(),
	}
	if err := c.Cache.Store(series, c.Years); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("cache store failed")
	}
	return series, nil
}
