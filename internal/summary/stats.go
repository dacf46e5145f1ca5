// Package summary reduces per-row g2 readings into per-session statistics
// and drives batch runs over a samples tree.
package summary

import (
	"gonum.org/v1/gonum/stat"
)

// Stats is the mean, Bessel-corrected standard deviation and standard error
// of a set of values.
type Stats struct {
	N    int
	Mean float64
	Std  float64
	SEM  float64
}

// Describe summarizes values. With fewer than two values Std and SEM are
// exactly 0. An empty input gives a zero Stats with N 0.
func Describe(values []float64) Stats {
	switch len(values) {
	case 0:
		return Stats{}
	case 1:
		return Stats{N: 1, Mean: values[0]}
	}
	mean, std := stat.MeanStdDev(values, nil)
	return Stats{
		N:    len(values),
		Mean: mean,
		Std:  std,
		SEM:  stat.StdErr(std, float64(len(values))),
	}
}
