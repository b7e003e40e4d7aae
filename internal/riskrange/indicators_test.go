package riskrange

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskRange/internal/model"
)

// constantSeries builds n identical bars: open=close=100, high=101, low=99.
func constantSeries(n int) *model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	for i := range bars {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100,
			Volume: 1000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Bars: bars}
}

// trendingSeries builds n bars with close drifting up 1% per day and volume
// varying so the volume z-score is eventually defined.
func trendingSeries(n int) *model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	price := 100.0
	for i := range bars {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price * 0.998,
			High:   price * 1.012,
			Low:    price * 0.991,
			Close:  price,
			Volume: 1000 + float64(i%7)*120,
		}
		price *= 1.01
	}
	return &model.PriceSeries{Symbol: "TREND", Bars: bars}
}

// variedSeries builds n bars whose returns and volume both vary, so every
// z-score eventually becomes defined.
func variedSeries(n int) *model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	price := 100.0
	for i := range bars {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price * 0.998,
			High:   price * 1.012,
			Low:    price * 0.991,
			Close:  price,
			Volume: 1000 + float64(i%7)*120,
		}
		price *= 1 + 0.012 - 0.005*float64(i%4)
	}
	return &model.PriceSeries{Symbol: "VARIED", Bars: bars}
}

func TestComputeIndicators_LengthAndOrder(t *testing.T) {
	series := trendingSeries(80)
	rows, err := ComputeIndicators(series, DefaultParams())
	require.NoError(t, err)
	require.Len(t, rows, 80, "the indicator engine never drops rows")
	for i, r := range rows {
		assert.Equal(t, series.Bars[i].Date, r.Date)
	}
}

func TestComputeIndicators_Returns(t *testing.T) {
	series := trendingSeries(30)
	rows, err := ComputeIndicators(series, DefaultParams())
	require.NoError(t, err)

	assert.True(t, math.IsNaN(rows[0].Ret))
	assert.True(t, math.IsNaN(rows[0].LogRet))
	for i := 1; i < len(rows); i++ {
		assert.InDelta(t, 0.01, rows[i].Ret, 1e-12)
		assert.InDelta(t, math.Log(1.01), rows[i].LogRet, 1e-12)
		assert.Equal(t, rows[i].Ret, rows[i].ROC1d)
	}
}

func TestComputeIndicators_WarmUp(t *testing.T) {
	p := DefaultParams()
	series := variedSeries(90)
	rows, err := ComputeIndicators(series, p)
	require.NoError(t, err)

	// ATR: true range starts at t=1, window 14 -> defined from t=14
	for i := 0; i < p.ATRWindow; i++ {
		assert.True(t, math.IsNaN(rows[i].ATR), "ATR defined too early at %d", i)
	}
	assert.False(t, math.IsNaN(rows[p.ATRWindow].ATR))

	// volume z-score: defined from t = VolWindow-1
	for i := 0; i < p.VolWindow-1; i++ {
		assert.True(t, math.IsNaN(rows[i].VolZ), "VolZ defined too early at %d", i)
	}
	assert.False(t, math.IsNaN(rows[p.VolWindow-1].VolZ))

	// EWMA vol: defined from the first return onward
	assert.True(t, math.IsNaN(rows[0].VolEWMA))
	assert.False(t, math.IsNaN(rows[1].VolEWMA))

	// ROC20: defined from t=20
	assert.True(t, math.IsNaN(rows[19].ROC20d))
	assert.False(t, math.IsNaN(rows[20].ROC20d))

	// vol-of-vol z: rolling std of a rolling std, two windows deep
	assert.True(t, math.IsNaN(rows[2*p.VoVWindow-2].VoVZ))
	assert.False(t, math.IsNaN(rows[2*p.VoVWindow-1].VoVZ))
}

func TestComputeIndicators_ConstantSeriesValues(t *testing.T) {
	series := constantSeries(60)
	rows, err := ComputeIndicators(series, DefaultParams())
	require.NoError(t, err)

	gk := math.Sqrt(0.5) * math.Log(101.0/99.0)
	for i, r := range rows {
		assert.InDelta(t, gk, r.VolGK, 1e-12, "GK at %d", i)
		if i >= 1 {
			assert.InDelta(t, 0.0, r.VolEWMA, 1e-12, "EWMA vol at %d", i)
		}
		if i >= 14 {
			assert.InDelta(t, 2.0, r.ATR, 1e-9, "ATR at %d", i)
			assert.InDelta(t, 0.02, r.VolATR, 1e-9, "ATR%% at %d", i)
		}
		// zero variance in volume and vol-of-vol leaves both z-scores undefined
		assert.True(t, math.IsNaN(r.VolZ), "VolZ at %d", i)
		assert.True(t, math.IsNaN(r.VoVZ), "VoVZ at %d", i)
		if i >= 20 {
			assert.InDelta(t, 0.0, r.ROC20d, 1e-12)
		}
	}
}

func TestComputeIndicators_InvalidParams(t *testing.T) {
	series := constantSeries(30)

	p := DefaultParams()
	p.ATRWindow = 0
	_, err := ComputeIndicators(series, p)
	require.ErrorIs(t, err, ErrInvalidConfig)

	p = DefaultParams()
	p.HalfLife = -1
	_, err = ComputeIndicators(series, p)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestComputeIndicators_ShortSeries(t *testing.T) {
	// fewer bars than any window: all rolling fields stay NaN, no failure
	series := constantSeries(5)
	rows, err := ComputeIndicators(series, DefaultParams())
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.True(t, math.IsNaN(r.ATR))
		assert.True(t, math.IsNaN(r.VolZ))
		assert.True(t, math.IsNaN(r.VoVZ))
		assert.True(t, math.IsNaN(r.ROC20d))
	}
}
