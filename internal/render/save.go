package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/config"
)

// Saver writes figures into Dir, once per configured format.
type Saver struct {
	Dir  string
	Plot config.Plot
}

// Save writes p as name.<format> for every format and returns the paths.
func (s Saver) Save(p *plot.Plot, name string) ([]string, error) {
	w := vg.Length(s.Plot.WidthIn) * vg.Inch
	h := vg.Length(s.Plot.HeightIn) * vg.Inch
	return s.write(name, w, h, p.Draw)
}

// SaveGrid draws the plots of a grid into one figure. Nil cells stay blank.
func (s Saver) SaveGrid(plots [][]*plot.Plot, name string) ([]string, error) {
	rows := len(plots)
	if rows == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	cols := len(plots[0])

	// Each tile gets three quarters of a single figure.
	w := vg.Length(s.Plot.WidthIn*0.75*float64(cols)) * vg.Inch
	h := vg.Length(s.Plot.HeightIn*0.75*float64(rows)) * vg.Inch

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	return s.write(name, w, h, func(dc draw.Canvas) {
		canvases := plot.Align(plots, tiles, dc)
		for j := range plots {
			for i, p := range plots[j] {
				if p != nil {
					p.Draw(canvases[j][i])
				}
			}
		}
	})
}

func (s Saver) write(
	name string,
	w, h vg.Length,
	drawFn func(draw.Canvas),
) (
	[]string,
	error,
) {

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	var paths []string
	for _, format := range s.Plot.Formats {
		format = strings.ToLower(format)
		c, err := s.canvas(w, h, format)
		if err != nil {
			return paths, err
		}
		drawFn(draw.New(c))

		path := filepath.Join(s.Dir, name+"."+format)
		f, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		if _, err := c.WriteTo(f); err != nil {
			f.Close()
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s Saver) canvas(w, h vg.Length, format string) (vg.CanvasWriterTo, error) {
	if format == "png" && s.Plot.DPI > 0 {
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(s.Plot.DPI))}, nil
	}
	return draw.NewFormattedCanvas(w, h, format)
}
