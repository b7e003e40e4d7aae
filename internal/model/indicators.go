package model

// IndicatorRow extends a PriceBar with derived volatility and momentum fields.
// Fields that lack enough history are NaN, never zero.
type IndicatorRow struct {
	PriceBar

	Ret     float64 // simple daily return
	LogRet  float64 // log daily return
	VolEWMA float64 // exponentially-weighted std of LogRet (fraction)
	ATR     float64 // average true range (price units)
	VolATR  float64 // ATR / Close (fraction)
	VolGK   float64 // Garman-Klass volatility (fraction)
	VolZ    float64 // volume z-score vs its rolling window
	VoVZ    float64 // z-score of the rolling std of VolEWMA
	ROC1d   float64 // 1-day rate of change
	ROC20d  float64 // 20-day rate of change
}

// RiskRangeRow extends an IndicatorRow with the blended band fields.
type RiskRangeRow struct {
	IndicatorRow

	VolCombined float64 // weighted blend of the three vol estimators (fraction)
	WidthPct    float64 // band half-width as a fraction of price, >= 0
	Width       float64 // band half-width in price units
	Center      float64 // trend-tilted midpoint
	Upper       float64 // Center + Width
	Lower       float64 // Center - Width
}
