package summary

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/session"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/table"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.Std, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0)/math.Sqrt(8), s.SEM, 1e-12)
}

func TestDescribeSingleValue(t *testing.T) {
	s := Describe([]float64{1.25})
	assert.Equal(t, Stats{N: 1, Mean: 1.25}, s)
	assert.Equal(t, Stats{}, Describe(nil))
}

func TestSummarizeFiltersInvalidRows(t *testing.T) {
	tb, err := table.Read(strings.NewReader(
		"NT,NR,NTR\n" +
			"1,1,1\n0,1,1\n1,2,2\n1,0,3\n2,2,4\n" +
			"1,1,2\n0,0,0\n1,1,3\n1,4,4\n2,1,6\n"))
	require.NoError(t, err)
	info := measurement.Info{TestTimeUs: 1, CoincidenceWindowNs: 1000}

	series, err := g2.Compute(tb, g2.TwoDetector, info)
	require.NoError(t, err)
	valid := g2.Valid(series.Counts)
	require.Len(t, valid, 7)

	s, err := Summarize("run", g2.TwoDetector, tb.Len(), series, info)
	require.NoError(t, err)
	assert.Equal(t, 10, s.NRows)

	want := Describe([]float64{1, 1, 1, 2, 3, 1, 3})
	assert.Equal(t, 7, want.N)
	assert.InDelta(t, want.Mean, s.G2CountsMean, 1e-12)
	assert.InDelta(t, want.Std, s.G2CountsStd, 1e-12)
	assert.InDelta(t, want.SEM, s.G2CountsSEM, 1e-12)
	assert.Nil(t, s.G2FileMean)
	assert.Equal(t, 1.0, s.TestTimeUs)
}

func TestSummarizeSingleRow(t *testing.T) {
	series := g2.Series{Counts: []g2.Reading{{Value: 0.8, Valid: true}}}
	s, err := Summarize("one", g2.ThreeDetector, 1, series, measurement.Defaults())
	require.NoError(t, err)
	assert.Equal(t, 0.8, s.G2CountsMean)
	assert.Equal(t, 0.0, s.G2CountsStd)
	assert.Equal(t, 0.0, s.G2CountsSEM)
}

func TestSummarizeFileColumn(t *testing.T) {
	series := g2.Series{
		Counts:  []g2.Reading{{Value: 1, Valid: true}, {Value: 3, Valid: true}},
		HasFile: true,
		File:    []g2.Reading{{Value: 0.5, Valid: true}, {}},
	}
	s, err := Summarize("f", g2.TwoDetector, 2, series, measurement.Defaults())
	require.NoError(t, err)

	f, ok := s.File()
	require.True(t, ok)
	assert.Equal(t, Stats{Mean: 0.5}, f)

	series.File = []g2.Reading{{}, {}}
	s, err = Summarize("f", g2.TwoDetector, 2, series, measurement.Defaults())
	require.NoError(t, err)
	_, ok = s.File()
	assert.False(t, ok)
}

func TestSummarizeNoValidData(t *testing.T) {
	series := g2.Series{Counts: []g2.Reading{{}, {}}}
	_, err := Summarize("dead", g2.TwoDetector, 2, series, measurement.Defaults())

	var nv *NoValidDataError
	require.True(t, errors.As(err, &nv))
	assert.Equal(t, 2, nv.Rows)
}

func TestAnalyzeMissingColumn(t *testing.T) {
	tb, err := table.Read(strings.NewReader("NT,NTR\n1,1\n"))
	require.NoError(t, err)

	_, _, err = Analyze("s1", g2.TwoDetector, tb, measurement.Defaults())

	var se *SessionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "s1", se.Session)
	assert.Equal(t, g2.TwoDetector, se.Mode)

	var missing *table.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "NR", missing.Column)
	assert.Contains(t, err.Error(), "s1")
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "b", "HBT_2D.csv"), "NT,NR,NTR,g2(0)\n10,10,1,0.9\n10,10,2,1.1\n")
	write(t, filepath.Join(root, "b", "infoMedicion.txt"),
		"Tiempo de Prueba : 100 us\nVentana de Coincidencia : 100 ns\n")
	write(t, filepath.Join(root, "b", "HBT_3D.csv"), "NG,NGT\n1,1\n")
	write(t, filepath.Join(root, "a", "HBT_3D.csv"), "NG,NGT,NGR,NGTR\n100,50,40,10\n")
	write(t, filepath.Join(root, "c", "HBT_2D.csv"), "")

	sessions, err := session.Discover(root, map[g2.Mode]string{
		g2.TwoDetector:   "HBT_2D.csv",
		g2.ThreeDetector: "HBT_3D.csv",
	})
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	rep := Run(sessions, Options{InfoFile: "infoMedicion.txt", Defaults: measurement.Defaults()}, logger)

	require.Len(t, rep.Errors, 2)
	assert.Equal(t, 2, rep.Len())

	two := rep.Summaries(g2.TwoDetector)
	require.Len(t, two, 1)
	assert.Equal(t, "b", two[0].SessionName)
	assert.Equal(t, 100.0, two[0].TestTimeUs)
	// factor 100/(100e-3) = 1000
	assert.InDelta(t, 15.0, two[0].G2CountsMean, 1e-9)
	require.NotNil(t, two[0].G2FileMean)
	assert.InDelta(t, 1.0, *two[0].G2FileMean, 1e-12)

	three := rep.Summaries(g2.ThreeDetector)
	require.Len(t, three, 1)
	assert.Equal(t, "a", three[0].SessionName)
	assert.Equal(t, 0.5, three[0].G2CountsMean)
	assert.Equal(t, measurement.DefaultTestTimeUs, three[0].TestTimeUs)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)

	var missing *table.MissingColumnError
	assert.True(t, errors.As(rep.Errors[0], &missing) || errors.As(rep.Errors[1], &missing))
}

func TestWriteCSV(t *testing.T) {
	mean, std, sem := 1.0, 0.5, 0.25
	rows := []G2Summary{
		{
			SessionName: "a", Mode: g2.TwoDetector, NRows: 3,
			G2FileMean: &mean, G2FileStd: &std, G2FileSEM: &sem,
			G2CountsMean: 1.5, G2CountsStd: 0.1, G2CountsSEM: 0.05,
			TestTimeUs: 1e6, CoincidenceWindowNs: 5,
		},
		{
			SessionName: "b", Mode: g2.ThreeDetector, NRows: 1,
			G2CountsMean: 0.5,
			TestTimeUs:   1e6, CoincidenceWindowNs: 5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	want := "session_name,mode,n_rows,g2_file_mean,g2_file_std,g2_file_sem," +
		"g2_counts_mean,g2_counts_std,g2_counts_sem,test_time_us,coincidence_window_ns\n" +
		"a,2D,3,1,0.5,0.25,1.5,0.1,0.05,1e+06,5\n" +
		"b,3D,1,,,,0.5,0,0,1e+06,5\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary_2D.csv")
	require.NoError(t, WriteCSVFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "session_name,mode,"))
}
