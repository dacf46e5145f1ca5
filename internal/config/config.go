// Package config holds the resolved settings of a photons run and the
// TOML/.env layers they are read from.
package config

import (
	"fmt"
	"strings"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
)

// Config is the single settings value passed into every command.
type Config struct {
	SamplesDir string
	OutputDir  string

	Files    Files
	Defaults measurement.Info
	Plot     Plot
}

// Files are the per-session file names looked up inside each session.
type Files struct {
	TwoDetector   string
	ThreeDetector string
	Info          string
}

// Plot controls figure output.
type Plot struct {
	WidthIn  float64
	HeightIn float64
	DPI      int
	Formats  []string
	Dark     bool
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		SamplesDir: "samples",
		OutputDir:  "plots",
		Files: Files{
			TwoDetector:   "HBT_2D.csv",
			ThreeDetector: "HBT_3D.csv",
			Info:          "infoMedicion.txt",
		},
		Defaults: measurement.Defaults(),
		Plot: Plot{
			WidthIn:  8,
			HeightIn: 5,
			DPI:      200,
			Formats:  []string{"png"},
		},
	}
}

// TableFiles maps each mode to its CSV name.
func (c Config) TableFiles() map[g2.Mode]string {
	return map[g2.Mode]string{
		g2.TwoDetector:   c.Files.TwoDetector,
		g2.ThreeDetector: c.Files.ThreeDetector,
	}
}

var validFormats = map[string]bool{"png": true, "svg": true, "pdf": true, "eps": true, "jpg": true, "tiff": true}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.SamplesDir == "" {
		return fmt.Errorf("samples dir is empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir is empty")
	}
	if c.Files.TwoDetector == "" && c.Files.ThreeDetector == "" {
		return fmt.Errorf("no table file names configured")
	}
	if !(c.Defaults.TestTimeUs > 0) {
		return fmt.Errorf("default test time must be positive, got %v", c.Defaults.TestTimeUs)
	}
	if !(c.Defaults.CoincidenceWindowNs > 0) {
		return fmt.Errorf("default coincidence window must be positive, got %v", c.Defaults.CoincidenceWindowNs)
	}
	if c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0 {
		return fmt.Errorf("plot size must be positive, got %vx%v in", c.Plot.WidthIn, c.Plot.HeightIn)
	}
	if c.Plot.DPI <= 0 {
		return fmt.Errorf("plot dpi must be positive, got %d", c.Plot.DPI)
	}
	if len(c.Plot.Formats) == 0 {
		return fmt.Errorf("no plot formats configured")
	}
	for _, f := range c.Plot.Formats {
		if !validFormats[strings.ToLower(f)] {
			return fmt.Errorf("unsupported plot format %q", f)
		}
	}
	return nil
}
