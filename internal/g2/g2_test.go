package g2

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/table"
)

func mustTable(t *testing.T, csv string) *table.Table {
	t.Helper()
	tb, err := table.Read(strings.NewReader(csv))
	require.NoError(t, err)
	return tb
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("2d")
	require.NoError(t, err)
	assert.Equal(t, TwoDetector, m)

	m, err = ParseMode(" 3D ")
	require.NoError(t, err)
	assert.Equal(t, ThreeDetector, m)
	assert.Equal(t, "3D", m.String())
	assert.Equal(t, 3, m.Detectors())

	_, err = ParseMode("4D")
	assert.Error(t, err)
}

func TestTwoDetectorFactor(t *testing.T) {
	tb := mustTable(t, "NT,NR,NTR\n1000,2000,1\n")
	s, err := Compute(tb, TwoDetector, measurement.Defaults())
	require.NoError(t, err)

	require.Len(t, s.Counts, 1)
	require.True(t, s.Counts[0].Valid)
	// 1/(1000*2000) * 1e6/(5e-3) = 100
	assert.InEpsilon(t, 100.0, s.Counts[0].Value, 1e-12)
	assert.False(t, s.HasFile)
}

func TestTwoDetectorScaleInvariance(t *testing.T) {
	info := measurement.Info{TestTimeUs: 500000, CoincidenceWindowNs: 2}
	tb := mustTable(t, "NT,NR,NTR\n300,400,6\n900,1200,54\n")
	s, err := Compute(tb, TwoDetector, info)
	require.NoError(t, err)

	v := Valid(s.Counts)
	require.Len(t, v, 2)
	assert.InEpsilon(t, v[0], v[1], 1e-12)
}

func TestThreeDetector(t *testing.T) {
	tb := mustTable(t, "NG,NGT,NGR,NGTR\n100,50,40,10\n")
	s, err := Compute(tb, ThreeDetector, measurement.Defaults())
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, Valid(s.Counts))
}

func TestLowercaseColumnsResolve(t *testing.T) {
	tb := mustTable(t, "nr, nt ,Ntr\n2,4,8\n")
	s, err := Compute(tb, TwoDetector, measurement.Info{TestTimeUs: 1, CoincidenceWindowNs: 1000})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, Valid(s.Counts))
}

func TestZeroDenominatorIsInvalid(t *testing.T) {
	tb := mustTable(t, "NT,NR,NTR\n0,5,1\n5,0,1\n,5,1\n5,5,x\n5,5,1\n")
	s, err := Compute(tb, TwoDetector, measurement.Info{TestTimeUs: 1, CoincidenceWindowNs: 1000})
	require.NoError(t, err)

	require.Len(t, s.Counts, 5)
	for i := 0; i < 4; i++ {
		assert.False(t, s.Counts[i].Valid, "row %d", i)
	}
	assert.Equal(t, []float64{0.04}, Valid(s.Counts))
}

func TestMissingColumn(t *testing.T) {
	tb := mustTable(t, "NG,NGT,NGR\n1,2,3\n")
	_, err := Compute(tb, ThreeDetector, measurement.Defaults())

	var missing *table.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "NGTR", missing.Column)
	assert.Equal(t, []string{"NG", "NGT", "NGR"}, missing.Available)
}

func TestFileColumnCarriedThrough(t *testing.T) {
	tb := mustTable(t, "NG,NGT,NGR,NGTR,g2 raw,G2 (0)\n100,50,40,10,9,0.7\n100,50,40,0,9,\n")
	s, err := Compute(tb, ThreeDetector, measurement.Defaults())
	require.NoError(t, err)

	require.True(t, s.HasFile)
	assert.Equal(t, "G2 (0)", s.FileColumn)
	assert.Equal(t, []float64{0.7}, Valid(s.File))
	assert.Equal(t, []float64{0.5, 0}, Valid(s.Counts))
}

func TestFileColumnFirstCandidate(t *testing.T) {
	tb := mustTable(t, "NT,NR,NTR,g2_a,g2_b\n1,1,1,3,4\n")
	s, err := Compute(tb, TwoDetector, measurement.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "g2_a", s.FileColumn)
	assert.Equal(t, []float64{3}, Valid(s.File))
}
