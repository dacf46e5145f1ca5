package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/config"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/pmf"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/summary"
)

func testSaver(t *testing.T, formats ...string) Saver {
	t.Helper()
	cfg := config.Default().Plot
	cfg.DPI = 50
	cfg.Formats = formats
	return Saver{Dir: filepath.Join(t.TempDir(), "out"), Plot: cfg}
}

func testHistogram(t *testing.T) Histogram {
	t.Helper()
	p, err := pmf.Estimate([]int{1, 2, 2, 3, 3, 3, 4, 6})
	require.NoError(t, err)
	o, err := p.Poisson(nil)
	require.NoError(t, err)
	return Histogram{Label: "run A", PMF: p, Curves: []Curve{{Overlay: o}}}
}

func assertFiles(t *testing.T, paths []string) {
	t.Helper()
	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}

func TestPMFPlotSaves(t *testing.T) {
	h := testHistogram(t)
	for _, connect := range []bool{false, true} {
		p, err := PMFPlot(h, 0, HistogramOptions{Connect: connect})
		require.NoError(t, err)
		assert.Equal(t, -0.5, p.X.Min)
		assert.Equal(t, 6.5, p.X.Max)

		s := testSaver(t, "png", "svg")
		paths, err := s.Save(p, "pmf")
		require.NoError(t, err)
		require.Len(t, paths, 2)
		assert.Equal(t, filepath.Join(s.Dir, "pmf.svg"), paths[1])
		assertFiles(t, paths)
	}
}

func TestPMFPlotEmpty(t *testing.T) {
	_, err := PMFPlot(Histogram{}, 0, HistogramOptions{})
	assert.ErrorIs(t, err, pmf.ErrEmptyInput)
}

func TestSaveUnknownFormat(t *testing.T) {
	p, err := PMFPlot(testHistogram(t), 1, HistogramOptions{})
	require.NoError(t, err)
	_, err = testSaver(t, "bmp").Save(p, "pmf")
	assert.Error(t, err)
}

func TestPMFGrid(t *testing.T) {
	plots := make([]*plot.Plot, 5)
	for i := range plots {
		plots[i] = plot.New()
	}
	grid := PMFGrid(plots)
	require.Len(t, grid, 2)
	require.Len(t, grid[0], 3)
	assert.Same(t, plots[4], grid[1][1])
	assert.Nil(t, grid[1][2])

	assert.Len(t, PMFGrid(plots[:2])[0], 2)
	assert.Nil(t, PMFGrid(nil))
}

func TestSaveGrid(t *testing.T) {
	h := testHistogram(t)
	var plots []*plot.Plot
	for i := 0; i < 4; i++ {
		p, err := PMFPlot(h, i, HistogramOptions{})
		require.NoError(t, err)
		plots = append(plots, p)
	}
	paths, err := testSaver(t, "png").SaveGrid(PMFGrid(plots), "combined")
	require.NoError(t, err)
	assertFiles(t, paths)
}

func TestSummaryPlot(t *testing.T) {
	mean, std, sem := 1.1, 0.2, 0.1
	sums := []summary.G2Summary{
		{SessionName: "a", Mode: g2.TwoDetector, G2CountsMean: 0.9, G2CountsSEM: 0.05},
		{SessionName: "b", Mode: g2.TwoDetector, G2CountsMean: 1.2, G2CountsSEM: 0.1,
			G2FileMean: &mean, G2FileStd: &std, G2FileSEM: &sem},
	}

	p, err := SummaryPlot(g2.TwoDetector, sums, FromCounts)
	require.NoError(t, err)
	assert.Equal(t, 1.5, p.X.Max)

	p, err = SummaryPlot(g2.TwoDetector, sums, FromFile)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.X.Max)
	paths, err := testSaver(t, "png").Save(p, "plot_g2_2D_file")
	require.NoError(t, err)
	assertFiles(t, paths)

	_, err = SummaryPlot(g2.ThreeDetector, sums[:1], FromFile)
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestG2Histogram(t *testing.T) {
	p, err := G2Histogram("a (2D)", []float64{0.9, 1.0, 1.0, 1.1, 1.3}, 0)
	require.NoError(t, err)
	paths, err := testSaver(t, "png").Save(p, "hist")
	require.NoError(t, err)
	assertFiles(t, paths)

	_, err = G2Histogram("single", []float64{1}, 10)
	require.NoError(t, err)

	_, err = G2Histogram("none", nil, 10)
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestAnimate(t *testing.T) {
	h := testHistogram(t)
	s := testSaver(t, "png")
	var frames []string
	for i := 0; i < 3; i++ {
		p, err := PMFPlot(h, i, HistogramOptions{})
		require.NoError(t, err)
		paths, err := s.Save(p, "frame"+string(rune('0'+i)))
		require.NoError(t, err)
		frames = append(frames, paths...)
	}

	out := filepath.Join(s.Dir, "pmf.gif")
	require.NoError(t, Animate(frames, out, 50))
	assertFiles(t, []string{out})

	assert.Error(t, Animate(nil, out, 50))
	assert.Error(t, Animate([]string{filepath.Join(s.Dir, "missing.png")}, out, 50))
}

func TestPalette(t *testing.T) {
	assert.Equal(t, palette(0, false), palette(len(lightColors), false))
	assert.NotEqual(t, palette(0, false), palette(0, true))
	assert.Equal(t, palette(3, true), palette(-3, true))
}

func TestBoxPlot(t *testing.T) {
	results := []summary.Result{
		{Summary: summary.G2Summary{SessionName: "a"}, Counts: []float64{0.9, 1.0, 1.2, 1.1}},
		{Summary: summary.G2Summary{SessionName: "empty"}},
		{Summary: summary.G2Summary{SessionName: "b"}, Counts: []float64{1.4}},
	}
	p, err := BoxPlot(g2.TwoDetector, results)
	require.NoError(t, err)
	assert.Equal(t, 1.5, p.X.Max)
	paths, err := testSaver(t, "png").Save(p, "box_g2_2D")
	require.NoError(t, err)
	assertFiles(t, paths)

	_, err = BoxPlot(g2.ThreeDetector, results[1:2])
	assert.ErrorIs(t, err, ErrNothingToPlot)
}
