// Package pmf estimates photon-number distributions from count columns and
// compares them with the Poisson model.
package pmf

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptyInput is returned when no valid observation remains.
var ErrEmptyInput = errors.New("pmf: no valid observations")

// MaxCount is the largest photon number Coerce accepts. The Poisson overlay
// spans 0..max, so larger cells are treated as corrupt.
const MaxCount = 1_000_000

// PMF is the empirical probability mass function of a set of counts. Values
// are ascending and unique; the other slices are parallel to Values.
type PMF struct {
	N             int
	Values        []int
	Counts        []int
	Probabilities []float64
	// Errors holds the counting uncertainty sqrt(n_k)/N of each probability.
	Errors []float64
}

// Coerce converts raw cells into photon counts. Cells that are blank, not
// numeric, negative, non-finite or above MaxCount are dropped and counted
// in dropped.
// Fractional values are truncated toward zero.
func Coerce(cells []string) (obs []int, dropped int) {
	obs = make([]int, 0, len(cells))
	for _, c := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxCount {
			dropped++
			continue
		}
		obs = append(obs, int(v))
	}
	return obs, dropped
}

// Estimate builds the empirical PMF of obs.
func Estimate(obs []int) (PMF, error) {
	if len(obs) == 0 {
		return PMF{}, ErrEmptyInput
	}

	freq := make(map[int]int)
	for _, k := range obs {
		freq[k]++
	}
	values := make([]int, 0, len(freq))
	for k := range freq {
		values = append(values, k)
	}
	sort.Ints(values)

	n := float64(len(obs))
	p := PMF{
		N:             len(obs),
		Values:        values,
		Counts:        make([]int, len(values)),
		Probabilities: make([]float64, len(values)),
		Errors:        make([]float64, len(values)),
	}
	for i, k := range values {
		c := freq[k]
		p.Counts[i] = c
		p.Probabilities[i] = float64(c) / n
		p.Errors[i] = math.Sqrt(float64(c)) / n
	}
	return p, nil
}

// Mean is the sample mean of the underlying observations.
func (p PMF) Mean() float64 {
	if p.N == 0 {
		return math.NaN()
	}
	var sum float64
	for i, k := range p.Values {
		sum += float64(k) * float64(p.Counts[i])
	}
	return sum / float64(p.N)
}

// Sum adds up the probabilities.
func (p PMF) Sum() float64 {
	var s float64
	for _, v := range p.Probabilities {
		s += v
	}
	return s
}

// Max returns the largest observed value.
func (p PMF) Max() int {
	if len(p.Values) == 0 {
		return 0
	}
	return p.Values[len(p.Values)-1]
}

// Min returns the smallest observed value.
func (p PMF) Min() int {
	if len(p.Values) == 0 {
		return 0
	}
	return p.Values[0]
}
