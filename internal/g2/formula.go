package g2

import (
	"math"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
)

// Reading is one row's g2 estimate. Rows whose denominator vanishes or whose
// cells cannot be read are kept as invalid readings instead of NaN.
type Reading struct {
	Value float64
	Valid bool
}

// Valid keeps the values of valid readings, in row order.
func Valid(readings []Reading) []float64 {
	out := make([]float64, 0, len(readings))
	for _, r := range readings {
		if r.Valid {
			out = append(out, r.Value)
		}
	}
	return out
}

// Formula is the per-row estimator for one mode. Required lists the columns
// eval receives, in order.
type Formula struct {
	Mode     Mode
	Required []string
	eval     func(vals []float64, info measurement.Info) Reading
}

// Eval applies the formula to one row of values ordered as Required.
func (f Formula) Eval(vals []float64, info measurement.Info) Reading {
	return f.eval(vals, info)
}

var formulas = map[Mode]Formula{
	TwoDetector: {
		Mode:     TwoDetector,
		Required: []string{"NT", "NR", "NTR"},
		eval: func(v []float64, info measurement.Info) Reading {
			nt, nr, ntr := v[0], v[1], v[2]
			return ratio(ntr, nt*nr, info.Factor())
		},
	},
	ThreeDetector: {
		Mode:     ThreeDetector,
		Required: []string{"NG", "NGT", "NGR", "NGTR"},
		eval: func(v []float64, _ measurement.Info) Reading {
			ng, ngt, ngr, ngtr := v[0], v[1], v[2], v[3]
			return ratio(ngtr*ng, ngt*ngr, 1)
		},
	},
}

// FormulaFor returns the estimator of mode m.
func FormulaFor(m Mode) (Formula, bool) {
	f, ok := formulas[m]
	return f, ok
}

func ratio(num, den, factor float64) Reading {
	if !(den > 0) {
		return Reading{}
	}
	g := num / den * factor
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return Reading{}
	}
	return Reading{Value: g, Valid: true}
}
