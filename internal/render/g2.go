package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/summary"
)

// ErrNothingToPlot is returned when a figure would have no data.
var ErrNothingToPlot = errors.New("render: nothing to plot")

// Source picks which g2 statistics a summary figure shows.
type Source int

const (
	FromCounts Source = iota
	FromFile
)

func (s Source) String() string {
	if s == FromFile {
		return "file"
	}
	return "counts"
}

// SummaryPlot draws mean g2(0) per session with SEM error bars. With
// FromFile, sessions without file statistics are left out.
func SummaryPlot(
	mode g2.Mode,
	summaries []summary.G2Summary,
	src Source,
) (
	*plot.Plot,
	error,
) {

	var (
		names   []string
		x, y, σ []float64
	)
	for _, s := range summaries {
		st := s.Counts()
		if src == FromFile {
			var ok bool
			if st, ok = s.File(); !ok {
				continue
			}
		}
		x = append(x, float64(len(names)))
		names = append(names, s.SessionName)
		y = append(y, st.Mean)
		σ = append(σ, st.SEM)
	}
	if len(names) == 0 {
		return nil, ErrNothingToPlot
	}

	title := fmt.Sprintf("g2(0) from counts (%d detectors)", mode.Detectors())
	if src == FromFile {
		title = fmt.Sprintf("g2(0) from file (%d detectors)", mode.Detectors())
	}
	p := prepPlot(title, "", "g2(0)")

	pts := errorPoints{
		XYs:     buildData(x, y),
		YErrors: buildErrors(σ),
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = color.Black
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	e, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, err
	}
	e.LineStyle.Color = color.Black
	e.CapWidth = vg.Points(8)

	p.Add(s, e)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(names)) - 0.5

	return p, nil
}

// G2Histogram draws the density of per-row g2(0) values for one session
// with the mean, a mean±SEM band and the summary statistics in the legend.
func G2Histogram(
	title string,
	values []float64,
	bins int,
) (
	*plot.Plot,
	error,
) {

	if len(values) == 0 {
		return nil, ErrNothingToPlot
	}
	if bins <= 0 {
		bins = 30
	}

	st := summary.Describe(values)
	p := prepPlot(title, "g2(0)", "Probability density")

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	h.Normalize(1)
	h.FillColor = palette(2, false)
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)

	ymax := 0.0
	for _, b := range h.Bins {
		ymax = math.Max(ymax, b.Weight)
	}
	if ymax == 0 {
		ymax = 1
	}

	if st.SEM > 0 {
		band, err := plotter.NewPolygon(plotter.XYs{
			{X: st.Mean - st.SEM, Y: 0},
			{X: st.Mean + st.SEM, Y: 0},
			{X: st.Mean + st.SEM, Y: ymax},
			{X: st.Mean - st.SEM, Y: ymax},
		})
		if err != nil {
			return nil, err
		}
		band.Color = color.NRGBA{R: 128, G: 128, B: 128, A: 51}
		band.LineStyle.Width = 0
		p.Add(band)
	}

	mean, err := plotter.NewLine(plotter.XYs{{X: st.Mean, Y: 0}, {X: st.Mean, Y: ymax}})
	if err != nil {
		return nil, err
	}
	mean.LineStyle.Color = color.Black
	mean.LineStyle.Width = vg.Points(1)
	mean.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(mean)

	p.Legend.Add(fmt.Sprintf("n=%d", st.N))
	p.Legend.Add(fmt.Sprintf("mean=%.6g", st.Mean), mean)
	p.Legend.Add(fmt.Sprintf("std=%.6g", st.Std))
	p.Legend.Add(fmt.Sprintf("SEM=%.6g", st.SEM))
	p.Y.Min = 0

	return p, nil
}
