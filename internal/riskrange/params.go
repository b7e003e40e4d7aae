package riskrange

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks configuration-level failures. Data-sufficiency
// problems never produce it; they degrade to NaN rows instead.
var ErrInvalidConfig = errors.New("invalid risk range configuration")

// Default blend weights, used verbatim when the caller zeroes all three.
const (
	defaultWEwma = 0.5
	defaultWGK   = 0.3
	defaultWATR  = 0.2
)

// Params holds every tunable of the indicator and band pipeline.
type Params struct {
	HalfLife  int // EWMA volatility half-life, days
	ATRWindow int // ATR rolling window, days
	VolWindow int // volume z-score window, days
	VoVWindow int // vol-of-vol window, days

	Z         float64 // confidence multiplier on the blended volatility
	WEwma     float64 // blend weight: EWMA vol
	WGK       float64 // blend weight: Garman-Klass vol
	WATR      float64 // blend weight: ATR% vol
	VolAdj    float64 // width sensitivity to the volume z-score
	VoVAdj    float64 // width sensitivity to the vol-of-vol z-score
	TiltGamma float64 // center tilt by 20d ROC, signed
}

// DefaultParams returns the stock parameter set.
func DefaultParams() Params {
	return Params{
		HalfLife:  10,
		ATRWindow: 14,
		VolWindow: 20,
		VoVWindow: 20,
		Z:         1.65,
		WEwma:     defaultWEwma,
		WGK:       defaultWGK,
		WATR:      defaultWATR,
		VolAdj:    0.15,
		VoVAdj:    0.10,
		TiltGamma: 0.10,
	}
}

// Validate fails fast on parameters the domain forbids. Zero blend weights are
// deliberately allowed: they fall back to the defaults instead of erroring.
func (p Params) Validate() error {
	if p.HalfLife <= 0 {
		return fmt.Errorf("%w: half-life must be positive, got %d", ErrInvalidConfig, p.HalfLife)
	}
	if p.ATRWindow <= 0 {
		return fmt.Errorf("%w: ATR window must be positive, got %d", ErrInvalidConfig, p.ATRWindow)
	}
	if p.VolWindow <= 0 {
		return fmt.Errorf("%w: volume window must be positive, got %d", ErrInvalidConfig, p.VolWindow)
	}
	if p.VoVWindow <= 0 {
		return fmt.Errorf("%w: vol-of-vol window must be positive, got %d", ErrInvalidConfig, p.VoVWindow)
	}
	if p.Z <= 0 {
		return fmt.Errorf("%w: confidence z must be positive, got %g", ErrInvalidConfig, p.Z)
	}
	if p.WEwma < 0 || p.WGK < 0 || p.WATR < 0 {
		return fmt.Errorf("%w: blend weights must be non-negative, got (%g, %g, %g)",
			ErrInvalidConfig, p.WEwma, p.WGK, p.WATR)
	}
	return nil
}

// blendWeights normalizes the three vol weights to sum to 1, falling back to
// the defaults when all three are zero.
func (p Params) blendWeights() (wEwma, wGK, wATR float64) {
	wEwma, wGK, wATR = p.WEwma, p.WGK, p.WATR
	sum := wEwma + wGK + wATR
	if sum == 0 {
		return defaultWEwma, defaultWGK, defaultWATR
	}
	return wEwma / sum, wGK / sum, wATR / sum
}
