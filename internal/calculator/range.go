package calculator

import (
	"math"

	"RiskRange/internal/model"
)

// TrueRanges computes the true range per bar: the largest of high-low,
// |high-prevClose| and |low-prevClose|. The first bar has no previous close
// and yields NaN. Computed as a sequential scan carrying the prior close.
func TrueRanges(bars []model.PriceBar) []float64 {
	out := nanSlice(len(bars))
	for i := 1; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - prevClose)
		lc := math.Abs(bars[i].Low - prevClose)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// GarmanKlass computes the Garman-Klass volatility estimate per bar from the
// intraday high/low/open/close range. The variance is floored at zero before
// the square root to discard negative-variance artifacts of the estimator.
func GarmanKlass(bars []model.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		hl := math.Log(b.High / b.Low)
		co := math.Log(b.Close / b.Open)
		gkVar := 0.5*hl*hl - (2*math.Ln2-1)*co*co
		out[i] = math.Sqrt(math.Max(gkVar, 0))
	}
	return out
}
