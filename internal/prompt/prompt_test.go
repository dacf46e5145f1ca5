package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRates(t *testing.T) {
	rates, err := ParseRates(" 1.5, 2;0  3 ", 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 0, 3}, rates)
}

func TestParseRatesCountMismatch(t *testing.T) {
	rates, err := ParseRates("1,2", 3)
	assert.ErrorIs(t, err, ErrRateCount)
	assert.Equal(t, []float64{1, 2}, rates)

	_, err = ParseRates("", 1)
	assert.ErrorIs(t, err, ErrRateCount)
}

func TestParseRatesInvalid(t *testing.T) {
	for _, in := range []string{"x", "-1", "NaN", "Inf"} {
		_, err := ParseRates(in, 1)
		assert.Error(t, err, in)
		assert.NotErrorIs(t, err, ErrRateCount, in)
	}
}

func TestInteractiveRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, Interactive(f))
}

func TestParseList(t *testing.T) {
	v, err := ParseList("1 5,10;100")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5, 10, 100}, v)

	v, err = ParseList("")
	require.NoError(t, err)
	assert.Empty(t, v)
}
