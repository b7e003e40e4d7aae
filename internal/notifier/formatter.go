package notifier

import (
	"fmt"
	"strings"

	"RiskRange/internal/model"
)

// FormatSnapshot renders the latest risk range row for one ticker: close,
// band, width and daily momentum.
func FormatSnapshot(symbol string, row model.RiskRangeRow) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", symbol, row.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Close: %.2f\n", row.Close))
	b.WriteString(fmt.Sprintf("Risk Range: %.2f – %.2f\n", row.Lower, row.Upper))
	b.WriteString(fmt.Sprintf("Width: %.2f%%\n", 100*row.WidthPct))
	b.WriteString(fmt.Sprintf("Daily ROC: %+.2f%%\n", 100*row.ROC1d))
	return b.String()
}

// FormatBreach renders an alert for a close that settled outside its band.
func FormatBreach(symbol string, row model.RiskRangeRow) string {
	side := "upper"
	level := row.Upper
	if row.Close < row.Lower {
		side = "lower"
		level = row.Lower
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>%s band breach</b> | %s\n\n", symbol, row.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Close %.2f settled beyond the %s bound %.2f\n", row.Close, side, level))
	b.WriteString(fmt.Sprintf("Range: %.2f – %.2f (width %.2f%%)\n", row.Lower, row.Upper, 100*row.WidthPct))
	return b.String()
}
