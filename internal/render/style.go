// Package render draws photon-statistics and g2 figures with gonum/plot.
package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// prepPlot returns a plot with the shared typeface, axis weights and legend
// placement.
func prepPlot(
	title, xlabel, ylabel string,
) (
	*plot.Plot,
) {

	p := plot.New()
	p.BackgroundColor = color.RGBA{A: 0}
	p.Title.Text = title
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = 16
	p.Title.Padding = font.Length(10)

	p.X.Label.Text = xlabel
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = 13
	p.X.Label.Padding = font.Length(6)
	p.X.LineStyle.Width = vg.Points(1.5)
	p.X.Tick.LineStyle.Width = vg.Points(1.5)
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = 11

	p.Y.Label.Text = ylabel
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = 13
	p.Y.Label.Padding = font.Length(6)
	p.Y.LineStyle.Width = vg.Points(1.5)
	p.Y.Tick.LineStyle.Width = vg.Points(1.5)
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = 11

	p.Legend.TextStyle.Font.Variant = "Sans"
	p.Legend.TextStyle.Font.Size = 10
	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)
	p.Legend.Padding = vg.Points(4)
	p.Legend.ThumbnailWidth = vg.Points(25)

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Vertical.Color = color.Gray{Y: 200}
	grid.Horizontal.Color = color.Gray{Y: 200}
	p.Add(grid)

	return p
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func buildData(
	x, y []float64,
) (
	plotter.XYs,
) {

	xy := make(plotter.XYs, len(x))

	for i := range xy {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}

	return xy
}

func buildErrors(
	σ []float64,
) (
	plotter.YErrors,
) {

	errs := make(plotter.YErrors, len(σ))

	for i := range errs {
		errs[i].Low, errs[i].High = σ[i], σ[i]
	}

	return errs
}
