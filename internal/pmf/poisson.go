package pmf

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidRate is returned for a negative or non-finite Poisson rate.
var ErrInvalidRate = errors.New("pmf: invalid poisson rate")

// Overlay is the theoretical Poisson PMF evaluated over 0..max observed.
type Overlay struct {
	Mu            float64
	Values        []int
	Probabilities []float64
}

// Poisson evaluates the Poisson PMF at rate mu over [0, p.Max()]. A nil mu
// uses the sample mean. The empirical PMF is left untouched.
func (p PMF) Poisson(mu *float64) (Overlay, error) {
	if p.N == 0 {
		return Overlay{}, ErrEmptyInput
	}
	rate := p.Mean()
	if mu != nil {
		rate = *mu
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return Overlay{}, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	kmax := p.Max()
	o := Overlay{
		Mu:            rate,
		Values:        make([]int, kmax+1),
		Probabilities: make([]float64, kmax+1),
	}
	for k := 0; k <= kmax; k++ {
		o.Values[k] = k
		o.Probabilities[k] = poissonProb(rate, k)
	}
	return o, nil
}

func poissonProb(mu float64, k int) float64 {
	if mu == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	return distuv.Poisson{Lambda: mu}.Prob(float64(k))
}
