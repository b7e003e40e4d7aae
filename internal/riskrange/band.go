package riskrange

import (
	"math"

	"RiskRange/internal/model"
)

// BuildRiskRange blends the volatility estimators into one width, applies the
// volume and vol-of-vol regime adjustments, tilts the center by recent trend
// and derives the upper/lower band. A NaN blended volatility leaves the whole
// band NaN for that row; only the regime z-scores and the tilt ROC substitute
// zero for NaN (a zero z-score means "no adjustment", not "no history").
func BuildRiskRange(rows []model.IndicatorRow, p Params) ([]model.RiskRangeRow, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	wEwma, wGK, wATR := p.blendWeights()

	out := make([]model.RiskRangeRow, len(rows))
	for i, r := range rows {
		combined := wEwma*r.VolEWMA + wGK*r.VolGK + wATR*r.VolATR

		volFactor := 1 + p.VolAdj*zeroIfNaN(r.VolZ)
		vovFactor := 1 + p.VoVAdj*zeroIfNaN(r.VoVZ)

		widthPct := math.Max(0, p.Z*combined*volFactor*vovFactor)
		width := widthPct * r.Close
		center := r.Close + p.TiltGamma*zeroIfNaN(r.ROC20d)*width

		out[i] = model.RiskRangeRow{
			IndicatorRow: r,
			VolCombined:  combined,
			WidthPct:     widthPct,
			Width:        width,
			Center:       center,
			Upper:        center + width,
			Lower:        center - width,
		}
	}
	return out, nil
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
