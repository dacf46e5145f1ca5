// Package measurement reads per-session acquisition metadata.
package measurement

import (
	"math"
	"os"
	"regexp"
	"strconv"
)

const (
	// DefaultTestTimeUs is used when the info file has no test time.
	DefaultTestTimeUs = 1_000_000.0
	// DefaultCoincidenceWindowNs is used when the info file has no coincidence window.
	DefaultCoincidenceWindowNs = 5.0
)

var (
	testTimeRe = regexp.MustCompile(`(?i)Tiempo\s*de\s*Prueba\s*:\s*([0-9]*\.?[0-9]+)\s*us`)
	windowRe   = regexp.MustCompile(`(?i)Ventana\s*de\s*Coincidencia\s*:\s*([0-9]*\.?[0-9]+)\s*ns`)
)

// Info holds the detector settings of one session.
type Info struct {
	TestTimeUs          float64
	CoincidenceWindowNs float64
}

// Defaults returns the fallback Info.
func Defaults() Info {
	return Info{
		TestTimeUs:          DefaultTestTimeUs,
		CoincidenceWindowNs: DefaultCoincidenceWindowNs,
	}
}

// Parse extracts the test time and coincidence window from an info file body
// such as
//
//	Tiempo de Prueba        : 1000000.0 us
//	Ventana de Coincidencia : 5 ns
//
// Each field that is missing, unparsable or not positive takes its value
// from defaults.
func Parse(text string, defaults Info) Info {
	info := defaults
	if v, ok := match(testTimeRe, text); ok && v > 0 {
		info.TestTimeUs = v
	}
	if v, ok := match(windowRe, text); ok && v > 0 {
		info.CoincidenceWindowNs = v
	}
	return info
}

// Read parses the info file at path. A missing or unreadable file yields defaults.
func Read(path string, defaults Info) Info {
	if path == "" {
		return defaults
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}
	return Parse(string(raw), defaults)
}

// Factor returns T/τ with the coincidence window converted to microseconds.
func (i Info) Factor() float64 {
	tauUs := i.CoincidenceWindowNs * 1e-3
	if tauUs <= 0 {
		return math.NaN()
	}
	return i.TestTimeUs / tauUs
}

func match(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
