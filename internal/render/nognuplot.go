//go:build !gnuplot

package render

import "errors"

// ErrNoGnuplot is returned by Preview in builds without the gnuplot tag.
var ErrNoGnuplot = errors.New("render: built without gnuplot support, rebuild with -tags gnuplot")

// Preview is unavailable without the gnuplot build tag: glot requires a
// gnuplot binary on PATH as soon as it is linked in.
func Preview(h Histogram, file string, persist bool) error {
	return ErrNoGnuplot
}
