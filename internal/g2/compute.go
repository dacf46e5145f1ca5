package g2

import (
	"fmt"
	"math"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/table"
)

// Names of a file-provided g2 column, compared with spaces removed.
var preferredFileColumns = []string{"g2(0)", "g2(0.0)"}

// Series holds the per-row readings of one table. File is only set when
// HasFile is true and then carries the table's own g2 column unchanged.
type Series struct {
	Mode       Mode
	Counts     []Reading
	File       []Reading
	HasFile    bool
	FileColumn string
}

// Compute evaluates mode's formula on every row of t. A missing required
// column fails with *table.MissingColumnError.
func Compute(t *table.Table, mode Mode, info measurement.Info) (Series, error) {
	f, ok := FormulaFor(mode)
	if !ok {
		return Series{}, fmt.Errorf("no g2 formula for %v", mode)
	}

	idx := t.Index()
	cols := make([]int, len(f.Required))
	for i, name := range f.Required {
		c, err := idx.Lookup(name)
		if err != nil {
			return Series{}, err
		}
		cols[i] = c
	}

	s := Series{
		Mode:   mode,
		Counts: make([]Reading, t.Len()),
	}
	vals := make([]float64, len(cols))
	for row := 0; row < t.Len(); row++ {
		if readRow(t, row, cols, vals) {
			s.Counts[row] = f.Eval(vals, info)
		}
	}

	if c, ok := idx.Like("g2", preferredFileColumns...); ok {
		s.HasFile = true
		s.FileColumn = idx.Name(c)
		s.File = make([]Reading, t.Len())
		for row := 0; row < t.Len(); row++ {
			v, ok := t.Float(row, c)
			if ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
				s.File[row] = Reading{Value: v, Valid: true}
			}
		}
	}
	return s, nil
}

func readRow(t *table.Table, row int, cols []int, dst []float64) bool {
	for i, c := range cols {
		v, ok := t.Float(row, c)
		if !ok {
			return false
		}
		dst[i] = v
	}
	return true
}
