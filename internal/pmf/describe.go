package pmf

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Moments are the descriptive statistics printed for each count column.
type Moments struct {
	N        int
	Mean     float64
	Variance float64
	Std      float64
}

// Describe returns the mean and the Bessel-corrected variance of obs. With
// fewer than two observations the variance is 0.
func Describe(obs []int) (Moments, error) {
	if len(obs) == 0 {
		return Moments{}, ErrEmptyInput
	}
	x := make([]float64, len(obs))
	for i, v := range obs {
		x[i] = float64(v)
	}
	m := Moments{N: len(x)}
	if len(x) < 2 {
		m.Mean = x[0]
		return m, nil
	}
	m.Mean, m.Variance = stat.MeanVariance(x, nil)
	m.Std = math.Sqrt(m.Variance)
	return m, nil
}

// ErrInvalidReference is returned when the reference run cannot be used to
// scale exposure times.
var ErrInvalidReference = errors.New("pmf: invalid reference run")

// Scales maps a unit prefix to its size in seconds.
var Scales = map[string]float64{
	"nano":  1e-9,
	"micro": 1e-6,
	"mili":  1e-3,
	"":      1,
}

// ExposureTime returns how long to acquire, in the given scale, to expect
// target photons per window when a reference window of referenceTimeUs
// microseconds averaged referenceMean photons.
func ExposureTime(target, referenceMean, referenceTimeUs float64, scale string) (float64, error) {
	unit, ok := Scales[scale]
	if !ok {
		return 0, fmt.Errorf("unknown time scale %q", scale)
	}
	if referenceMean <= 0 || referenceTimeUs <= 0 || math.IsNaN(referenceMean) {
		return 0, fmt.Errorf("%w: mean %v over %v us", ErrInvalidReference, referenceMean, referenceTimeUs)
	}
	seconds := target * referenceTimeUs * 1e-6 / referenceMean
	return seconds / unit, nil
}
