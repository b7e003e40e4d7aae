package calculator

import (
	"errors"
	"math"
)

// RollingMean computes the simple moving average of values over the given window.
// Positions with fewer than window preceding values, or with any NaN inside the
// window, yield NaN. The result has the same length as the input.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out, nil
}

// RollingStd computes the rolling sample standard deviation (ddof=1) of values.
// Partial windows and windows containing NaN yield NaN. A window of 1 yields
// NaN everywhere, matching the sample convention.
func RollingStd(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := nanSlice(len(values))
	if window == 1 {
		return out, nil
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if !ok {
			continue
		}
		mean := sum / float64(window)
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(window-1))
	}
	return out, nil
}

// ZScores computes (value - rollingMean) / rollingStd per position. A zero or
// undefined rolling std yields NaN, never infinity.
func ZScores(values []float64, window int) ([]float64, error) {
	means, err := RollingMean(values, window)
	if err != nil {
		return nil, err
	}
	stds, err := RollingStd(values, window)
	if err != nil {
		return nil, err
	}
	out := nanSlice(len(values))
	for i := range values {
		if math.IsNaN(means[i]) || math.IsNaN(stds[i]) || stds[i] == 0 {
			continue
		}
		out[i] = (values[i] - means[i]) / stds[i]
	}
	return out, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
