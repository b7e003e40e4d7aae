package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskRange/internal/model"
)

func testSeries(symbol string, fetchedAt time.Time) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, 10)
	for i := range bars {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   100 + float64(i),
			High:   101 + float64(i),
			Low:    99 + float64(i),
			Close:  100.5 + float64(i),
			Volume: 1000 * float64(i+1),
		}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: fetchedAt}
}

func openCache(t *testing.T, ttl time.Duration) *SQLiteCache {
	t.Helper()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "test.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCache_StoreLoad(t *testing.T) {
	c := openCache(t, time.Hour)
	series := testSeries("AAPL", time.Now().UTC())

	require.NoError(t, c.Store(series, 2))

	loaded, ok, err := c.Load("AAPL", 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded.Bars, 10)
	assert.Equal(t, "AAPL", loaded.Symbol)
	assert.Equal(t, series.Bars[3].Close, loaded.Bars[3].Close)
	assert.Equal(t, series.Bars[0].Date, loaded.Bars[0].Date)
	assert.True(t, loaded.Bars[0].Date.Before(loaded.Bars[9].Date))
}

func TestSQLiteCache_MissOnUnknownKey(t *testing.T) {
	c := openCache(t, time.Hour)
	require.NoError(t, c.Store(testSeries("AAPL", time.Now().UTC()), 2))

	_, ok, err := c.Load("AAPL", 5)
	require.NoError(t, err)
	assert.False(t, ok, "a different lookback is a different cache key")

	_, ok, err = c.Load("MSFT", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCache_TTLExpiry(t *testing.T) {
	c := openCache(t, time.Minute)
	stale := testSeries("AAPL", time.Now().UTC().Add(-2*time.Minute))
	require.NoError(t, c.Store(stale, 2))

	_, ok, err := c.Load("AAPL", 2)
	require.NoError(t, err)
	assert.False(t, ok, "entries older than the TTL are misses")
}

func TestSQLiteCache_StoreReplaces(t *testing.T) {
	c := openCache(t, time.Hour)
	require.NoError(t, c.Store(testSeries("AAPL", time.Now().UTC()), 2))

	shorter := testSeries("AAPL", time.Now().UTC())
	shorter.Bars = shorter.Bars[:4]
	require.NoError(t, c.Store(shorter, 2))

	loaded, ok, err := c.Load("AAPL", 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, loaded.Bars, 4, "store must replace, not append")
}

func TestNoop(t *testing.T) {
	n := NewNoop()
	require.NoError(t, n.Store(testSeries("AAPL", time.Now()), 2))
	_, ok, err := n.Load("AAPL", 2)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, n.Close())
}
