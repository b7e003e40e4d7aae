package riskrange

import (
	"math"
	"time"

	"RiskRange/internal/model"
)

// Column labels of the projected table, in output order. Fractional fields are
// rescaled to percentage units and carry the "_%" suffix.
var TableColumns = []string{
	"Open", "High", "Low", "Close", "Volume",
	"Upper", "Lower", "Width", "Width_%",
	"Vol_EWMA_%", "Vol_GK_%", "Vol_ATR_%", "Vol_Combined_%",
	"VolZ", "VoV_Z", "ROC_1d_%", "ROC_20d_%",
}

// TableRow is one dated row of the projected table, values aligned with
// TableColumns.
type TableRow struct {
	Date   time.Time
	Values []float64
}

// Table is the read-only projection of a risk range series intended for
// display and export. Warm-up rows are dropped entirely, never zero-filled.
type Table struct {
	Columns []string
	Rows    []TableRow
}

// ProjectTable selects the display fields from a risk range series, drops any
// row where a selected field is NaN and rescales fractional fields by 100.
// Pure projection; nothing is recomputed.
func ProjectTable(rows []model.RiskRangeRow) *Table {
	t := &Table{Columns: TableColumns}
	for _, r := range rows {
		values := []float64{
			r.Open, r.High, r.Low, r.Close, r.Volume,
			r.Upper, r.Lower, r.Width, 100 * r.WidthPct,
			100 * r.VolEWMA, 100 * r.VolGK, 100 * r.VolATR, 100 * r.VolCombined,
			r.VolZ, r.VoVZ, 100 * r.ROC1d, 100 * r.ROC20d,
		}
		if anyNaN(values) {
			continue
		}
		t.Rows = append(t.Rows, TableRow{Date: r.Date, Values: values})
	}
	return t
}

// Column returns the named column's values, or nil if the label is unknown.
func (t *Table) Column(name string) []float64 {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Values[idx]
	}
	return out
}

// Tail returns a table restricted to the last n rows.
func (t *Table) Tail(n int) *Table {
	if n >= len(t.Rows) {
		return t
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[len(t.Rows)-n:]}
}

func anyNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
