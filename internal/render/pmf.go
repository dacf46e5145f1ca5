package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/pmf"
)

// Curve is a Poisson overlay drawn on top of a PMF.
type Curve struct {
	Name    string
	Overlay pmf.Overlay
	Dashed  bool
}

// Histogram is one dataset's empirical PMF and the models drawn over it.
type Histogram struct {
	Label  string
	PMF    pmf.PMF
	Curves []Curve
}

// HistogramOptions tune how PMF figures are drawn.
type HistogramOptions struct {
	// Connect joins overlay points with a line.
	Connect bool
	Dark    bool
}

// PMFPlot draws bars of unit width at each observed k with sqrt(n_k)/N
// error bars, plus every overlay curve.
func PMFPlot(
	h Histogram,
	brush int,
	opts HistogramOptions,
) (
	*plot.Plot,
	error,
) {

	if h.PMF.N == 0 {
		return nil, pmf.ErrEmptyInput
	}

	p := prepPlot(h.Label, "Photon number k", "P(k)")

	bins := make([]plotter.HistogramBin, len(h.PMF.Values))
	x := make([]float64, len(h.PMF.Values))
	for i, k := range h.PMF.Values {
		bins[i] = plotter.HistogramBin{
			Min:    float64(k) - 0.5,
			Max:    float64(k) + 0.5,
			Weight: h.PMF.Probabilities[i],
		}
		x[i] = float64(k)
	}

	bars := &plotter.Histogram{
		Bins:      bins,
		Width:     1,
		FillColor: palette(brush, opts.Dark),
		LineStyle: plotter.DefaultLineStyle,
	}
	bars.LineStyle.Width = vg.Points(0.75)
	p.Add(bars)
	p.Legend.Add(fmt.Sprintf("Data (N=%d)", h.PMF.N), bars)

	pts := errorPoints{
		XYs:     buildData(x, h.PMF.Probabilities),
		YErrors: buildErrors(h.PMF.Errors),
	}
	e, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, err
	}
	e.LineStyle.Width = vg.Points(1)
	e.CapWidth = vg.Points(8)
	p.Add(e)

	for i, c := range h.Curves {
		if err := addCurve(p, c, i, opts.Connect); err != nil {
			return nil, err
		}
	}

	p.X.Min = float64(h.PMF.Min()) - 0.5
	p.X.Max = float64(h.PMF.Max()) + 0.5
	for _, c := range h.Curves {
		if len(c.Overlay.Values) > 0 && float64(c.Overlay.Values[0])-0.5 < p.X.Min {
			p.X.Min = float64(c.Overlay.Values[0]) - 0.5
		}
	}
	p.Y.Min = 0

	return p, nil
}

func addCurve(p *plot.Plot, c Curve, index int, connect bool) error {
	x := make([]float64, len(c.Overlay.Values))
	for i, k := range c.Overlay.Values {
		x[i] = float64(k)
	}
	xy := buildData(x, c.Overlay.Probabilities)

	s, err := plotter.NewScatter(xy)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = overlay
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	if index > 0 {
		s.GlyphStyle.Shape = draw.TriangleGlyph{}
	}
	p.Add(s)

	name := c.Name
	if name == "" {
		name = fmt.Sprintf("Poisson μ=%.3g", c.Overlay.Mu)
	}

	if !connect && !c.Dashed {
		p.Legend.Add(name, s)
		return nil
	}

	l, err := plotter.NewLine(xy)
	if err != nil {
		return err
	}
	l.LineStyle.Color = overlay
	l.LineStyle.Width = vg.Points(1.25)
	if c.Dashed {
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
	p.Add(l)
	p.Legend.Add(name, s, l)
	return nil
}

// PMFGrid lays the PMF plots out in rows of at most three.
func PMFGrid(plots []*plot.Plot) [][]*plot.Plot {
	if len(plots) == 0 {
		return nil
	}
	cols := len(plots)
	if cols > 3 {
		cols = 3
	}
	rows := (len(plots) + cols - 1) / cols

	grid := make([][]*plot.Plot, rows)
	for j := range grid {
		grid[j] = make([]*plot.Plot, cols)
		for i := range grid[j] {
			if n := j*cols + i; n < len(plots) {
				grid[j][i] = plots[n]
			}
		}
	}
	return grid
}
