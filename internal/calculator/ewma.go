package calculator

import (
	"errors"
	"math"
)

// EWMAStd computes the exponentially-weighted standard deviation of values with
// the given half-life: the weight on an observation halves every halfLife steps
// (alpha = 1 - 0.5^(1/halfLife), the recursive adjust=false form).
//
// Convention: the variance is the de-meaned population variance about the
// running EWMA mean. The estimate is defined from the first non-NaN input
// onward (value 0 at that first point); leading NaNs yield NaN.
func EWMAStd(values []float64, halfLife int) ([]float64, error) {
	if halfLife <= 0 {
		return nil, errors.New("half-life must be positive")
	}
	alpha := 1 - math.Pow(0.5, 1/float64(halfLife))

	out := nanSlice(len(values))
	var mean, variance float64
	started := false
	for i, v := range values {
		if math.IsNaN(v) {
			if started {
				// a gap inside the series leaves the estimate undefined from here on
				started = false
			}
			continue
		}
		if !started {
			mean = v
			variance = 0
			started = true
			out[i] = 0
			continue
		}
		delta := v - mean
		mean += alpha * delta
		variance = (1 - alpha) * (variance + alpha*delta*delta)
		out[i] = math.Sqrt(variance)
	}
	return out, nil
}
