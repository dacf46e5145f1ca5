//go:build gnuplot

package render

import (
	"fmt"

	"github.com/Arafatk/glot"
)

// Preview sends a PMF and its overlays to gnuplot. With file set the figure
// is also written there; persist keeps the gnuplot window open.
func Preview(h Histogram, file string, persist bool) error {
	plot, err := glot.NewPlot(2, persist, false)
	if err != nil {
		return fmt.Errorf("start gnuplot: %w", err)
	}
	defer plot.Close()

	x := make([]float64, len(h.PMF.Values))
	for i, k := range h.PMF.Values {
		x[i] = float64(k)
	}
	if err := plot.AddPointGroup("data", "impulses", [][]float64{x, h.PMF.Probabilities}); err != nil {
		return err
	}

	for _, c := range h.Curves {
		ox := make([]float64, len(c.Overlay.Values))
		for i, k := range c.Overlay.Values {
			ox[i] = float64(k)
		}
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("poisson %.3g", c.Overlay.Mu)
		}
		if err := plot.AddPointGroup(name, "linepoints", [][]float64{ox, c.Overlay.Probabilities}); err != nil {
			return err
		}
	}

	plot.SetTitle(h.Label)
	plot.SetXLabel("k")
	plot.SetYLabel("P(k)")

	if file != "" {
		if err := plot.SavePlot(file); err != nil {
			return fmt.Errorf("save %s: %w", file, err)
		}
	}
	return nil
}
