package collector

import (
	"context"

	"RiskRange/internal/model"
)

// Fetcher defines the interface for retrieving daily market data.
type Fetcher interface {
	// FetchDailyBars returns daily OHLCV bars for a symbol covering roughly
	// the given number of years, oldest first.
	FetchDailyBars(ctx context.Context, symbol string, years int) ([]model.PriceBar, error)
	Name() string
}
