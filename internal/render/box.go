package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/summary"
)

// BoxPlot draws one box of per-row g2(0) values from counts per session.
// Sessions without valid readings are left out.
func BoxPlot(mode g2.Mode, results []summary.Result) (*plot.Plot, error) {
	p := prepPlot(fmt.Sprintf("g2(0) per row (%d detectors)", mode.Detectors()), "", "g2(0)")

	var names []string
	for _, res := range results {
		if len(res.Counts) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(len(names)), plotter.Values(res.Counts))
		if err != nil {
			return nil, err
		}
		box.FillColor = palette(len(names), false)
		p.Add(box)
		names = append(names, res.Summary.SessionName)
	}
	if len(names) == 0 {
		return nil, ErrNothingToPlot
	}

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(names)) - 0.5

	return p, nil
}
