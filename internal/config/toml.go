package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil.
type FileConfig struct {
	Paths    PathsConfig    `toml:"paths"`
	Files    FilesConfig    `toml:"files"`
	Defaults DefaultsConfig `toml:"defaults"`
	Plot     PlotConfig     `toml:"plot"`
}

// PathsConfig maps the [paths] table.
type PathsConfig struct {
	Samples *string `toml:"samples"`
	Output  *string `toml:"output"`
}

// FilesConfig maps the [files] table.
type FilesConfig struct {
	HBT2D *string `toml:"hbt-2d"`
	HBT3D *string `toml:"hbt-3d"`
	Info  *string `toml:"info"`
}

// DefaultsConfig maps the [defaults] table.
type DefaultsConfig struct {
	TestTimeUs          *float64 `toml:"test-time-us"`
	CoincidenceWindowNs *float64 `toml:"coincidence-window-ns"`
}

// PlotConfig maps the [plot] table.
type PlotConfig struct {
	Width   *float64 `toml:"width"`
	Height  *float64 `toml:"height"`
	DPI     *int     `toml:"dpi"`
	Formats []string `toml:"formats"`
	Dark    *bool    `toml:"dark"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the keys set in fc onto c.
func (c *Config) Apply(fc FileConfig) {
	setString(&c.SamplesDir, fc.Paths.Samples)
	setString(&c.OutputDir, fc.Paths.Output)
	setString(&c.Files.TwoDetector, fc.Files.HBT2D)
	setString(&c.Files.ThreeDetector, fc.Files.HBT3D)
	setString(&c.Files.Info, fc.Files.Info)
	setFloat(&c.Defaults.TestTimeUs, fc.Defaults.TestTimeUs)
	setFloat(&c.Defaults.CoincidenceWindowNs, fc.Defaults.CoincidenceWindowNs)
	setFloat(&c.Plot.WidthIn, fc.Plot.Width)
	setFloat(&c.Plot.HeightIn, fc.Plot.Height)
	if fc.Plot.DPI != nil {
		c.Plot.DPI = *fc.Plot.DPI
	}
	if len(fc.Plot.Formats) > 0 {
		c.Plot.Formats = append([]string(nil), fc.Plot.Formats...)
	}
	if fc.Plot.Dark != nil {
		c.Plot.Dark = *fc.Plot.Dark
	}
}

func setString(target, value *string) {
	if value != nil {
		*target = *value
	}
}

func setFloat(target, value *float64) {
	if value != nil {
		*target = *value
	}
}

// DefaultTemplate is the commented config printed by `photons config`.
func DefaultTemplate() string {
	d := Default()
	return fmt.Sprintf(`# photons configuration
# Uncomment a value to enable it. Environment and CLI flags override config values.

[paths]
# samples = %q           # One subdirectory per session
# output = %q              # Plots, summaries and log.txt

[files]
# hbt-2d = %q
# hbt-3d = %q
# info = %q

[defaults]
# test-time-us = %g         # Used when the info file has no test time
# coincidence-window-ns = %g       # Used when the info file has no window

[plot]
# width = %g                     # Inches
# height = %g
# dpi = %d
# formats = ["png"]              # png, svg, pdf, eps, jpg, tiff
# dark = false
`,
		d.SamplesDir, d.OutputDir,
		d.Files.TwoDetector, d.Files.ThreeDetector, d.Files.Info,
		d.Defaults.TestTimeUs, d.Defaults.CoincidenceWindowNs,
		d.Plot.WidthIn, d.Plot.HeightIn, d.Plot.DPI,
	)
}
