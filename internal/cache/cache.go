package cache

import "RiskRange/internal/model"

// Cache stores fetched raw OHLCV series keyed by symbol and lookback years.
// Only raw bars are cached; derived rows are recomputed on every run.
type Cache interface {
	// Load returns the cached series if present and still fresh.
	Load(symbol string, years int) (series *model.PriceSeries, ok bool, err error)
	// Store replaces the cached series for the symbol and lookback.
	Store(series *model.PriceSeries, years int) error
	Close() error
}
