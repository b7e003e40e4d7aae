package riskrange

import (
	"math"

	"RiskRange/internal/calculator"
	"RiskRange/internal/model"
)

// ComputeIndicators derives returns, volatility estimators, regime z-scores
// and momentum from a raw price series. The output has the same length and
// date order as the input; rows inside a warm-up span carry NaN, never zero.
func ComputeIndicators(series *model.PriceSeries, p Params) ([]model.IndicatorRow, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bars := series.Bars
	n := len(bars)

	ret := make([]float64, n)
	logRet := make([]float64, n)
	volume := make([]float64, n)
	for i, b := range bars {
		volume[i] = b.Volume
		if i == 0 {
			ret[i] = math.NaN()
			logRet[i] = math.NaN()
			continue
		}
		ret[i] = b.Close/bars[i-1].Close - 1
		logRet[i] = math.Log(b.Close) - math.Log(bars[i-1].Close)
	}

	volEwma, err := calculator.EWMAStd(logRet, p.HalfLife)
	if err != nil {
		return nil, err
	}

	atr, err := calculator.RollingMean(calculator.TrueRanges(bars), p.ATRWindow)
	if err != nil {
		return nil, err
	}

	volGK := calculator.GarmanKlass(bars)

	volZ, err := calculator.ZScores(volume, p.VolWindow)
	if err != nil {
		return nil, err
	}

	// vol of vol: plain rolling std of the EWMA vol, then its own z-score
	vov, err := calculator.RollingStd(volEwma, p.VoVWindow)
	if err != nil {
		return nil, err
	}
	vovZ, err := calculator.ZScores(vov, p.VoVWindow)
	if err != nil {
		return nil, err
	}

	rows := make([]model.IndicatorRow, n)
	for i, b := range bars {
		roc20 := math.NaN()
		if i >= 20 {
			roc20 = b.Close/bars[i-20].Close - 1
		}
		rows[i] = model.IndicatorRow{
			PriceBar: b,
			Ret:      ret[i],
			LogRet:   logRet[i],
			VolEWMA:  volEwma[i],
			ATR:      atr[i],
			VolATR:   atr[i] / b.Close,
			VolGK:    volGK[i],
			VolZ:     volZ[i],
			VoVZ:     vovZ[i],
			ROC1d:    ret[i],
			ROC20d:   roc20,
		}
	}
	return rows, nil
}
