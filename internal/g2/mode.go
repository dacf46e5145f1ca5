// Package g2 computes per-row second-order coherence g2(0) estimates from
// Hanbury Brown-Twiss coincidence tables.
package g2

import (
	"fmt"
	"strings"
)

// Mode selects the detector layout of a measurement.
type Mode int

const (
	TwoDetector Mode = iota
	ThreeDetector
)

// Modes lists every mode in processing order.
var Modes = []Mode{TwoDetector, ThreeDetector}

func (m Mode) String() string {
	switch m {
	case TwoDetector:
		return "2D"
	case ThreeDetector:
		return "3D"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Detectors is the number of detectors the mode uses.
func (m Mode) Detectors() int {
	if m == ThreeDetector {
		return 3
	}
	return 2
}

// ParseMode accepts "2D" or "3D" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2D":
		return TwoDetector, nil
	case "3D":
		return ThreeDetector, nil
	}
	return 0, fmt.Errorf("unknown g2 mode %q", s)
}
