package riskrange

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTable_DropsWarmUpRows(t *testing.T) {
	p := DefaultParams()
	indicators, err := ComputeIndicators(variedSeries(120), p)
	require.NoError(t, err)
	rows, err := BuildRiskRange(indicators, p)
	require.NoError(t, err)

	tbl := ProjectTable(rows)
	require.NotEmpty(t, tbl.Rows)
	assert.Less(t, len(tbl.Rows), len(rows), "warm-up rows must be dropped")
	for _, row := range tbl.Rows {
		for i, v := range row.Values {
			assert.False(t, math.IsNaN(v), "column %s leaked NaN", tbl.Columns[i])
		}
	}

	// the slowest field governs the first surviving row: VoVZ needs two
	// vov-windows of history
	assert.Equal(t, rows[2*p.VoVWindow-1].Date, tbl.Rows[0].Date)
}

func TestProjectTable_EmptyWhenNeverDefined(t *testing.T) {
	// constant volume keeps VolZ undefined forever, so no row survives
	p := DefaultParams()
	indicators, err := ComputeIndicators(constantSeries(60), p)
	require.NoError(t, err)
	rows, err := BuildRiskRange(indicators, p)
	require.NoError(t, err)

	tbl := ProjectTable(rows)
	assert.Empty(t, tbl.Rows, "insufficient data degrades to an empty table, not an error")
}

func TestProjectTable_PercentRoundTrip(t *testing.T) {
	p := DefaultParams()
	indicators, err := ComputeIndicators(variedSeries(120), p)
	require.NoError(t, err)
	rows, err := BuildRiskRange(indicators, p)
	require.NoError(t, err)
	tbl := ProjectTable(rows)
	require.NotEmpty(t, tbl.Rows)

	byDate := make(map[string]RowValues)
	for _, r := range rows {
		byDate[r.Date.Format("2006-01-02")] = RowValues{
			widthPct: r.WidthPct, volEwma: r.VolEWMA, volGK: r.VolGK,
			volATR: r.VolATR, combined: r.VolCombined, roc1d: r.ROC1d, roc20d: r.ROC20d,
		}
	}

	widths := tbl.Column("Width_%")
	ewmas := tbl.Column("Vol_EWMA_%")
	for i, row := range tbl.Rows {
		src := byDate[row.Date.Format("2006-01-02")]
		assert.InEpsilon(t, src.widthPct, widths[i]/100, 1e-12, "Width_% / 100 must reconstruct the fraction")
		assert.InEpsilon(t, src.volEwma, ewmas[i]/100, 1e-12)
	}
}

// RowValues collects the fractional fields for the round-trip check.
type RowValues struct {
	widthPct, volEwma, volGK, volATR, combined, roc1d, roc20d float64
}

func TestTable_Column(t *testing.T) {
	p := DefaultParams()
	indicators, err := ComputeIndicators(variedSeries(100), p)
	require.NoError(t, err)
	rows, err := BuildRiskRange(indicators, p)
	require.NoError(t, err)
	tbl := ProjectTable(rows)

	closes := tbl.Column("Close")
	require.Len(t, closes, len(tbl.Rows))
	assert.Nil(t, tbl.Column("NoSuchColumn"))
}

func TestTable_Tail(t *testing.T) {
	p := DefaultParams()
	indicators, err := ComputeIndicators(variedSeries(120), p)
	require.NoError(t, err)
	rows, err := BuildRiskRange(indicators, p)
	require.NoError(t, err)
	tbl := ProjectTable(rows)
	require.Greater(t, len(tbl.Rows), 10)

	tail := tbl.Tail(10)
	assert.Len(t, tail.Rows, 10)
	assert.Equal(t, tbl.Rows[len(tbl.Rows)-1].Date, tail.Rows[9].Date)
	assert.Equal(t, tbl, tbl.Tail(len(tbl.Rows)+5), "tail larger than table returns the table")
}
