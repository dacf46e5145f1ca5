package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvSamplesDir        = "PHOTONS_SAMPLES_DIR"
	EnvOutputDir         = "PHOTONS_OUTPUT_DIR"
	EnvTestTimeUs        = "PHOTONS_TEST_TIME_US"
	EnvCoincidenceWindow = "PHOTONS_COINCIDENCE_WINDOW_NS"
	EnvPlotFormats       = "PHOTONS_PLOT_FORMATS"
)

// LoadDotEnv loads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays PHOTONS_* variables read through getenv onto c.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvSamplesDir); v != "" {
		c.SamplesDir = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := getenv(EnvTestTimeUs); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTestTimeUs, err)
		}
		c.Defaults.TestTimeUs = f
	}
	if v := getenv(EnvCoincidenceWindow); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCoincidenceWindow, err)
		}
		c.Defaults.CoincidenceWindowNs = f
	}
	if v := getenv(EnvPlotFormats); v != "" {
		var formats []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				formats = append(formats, f)
			}
		}
		c.Plot.Formats = formats
	}
	return nil
}

// Load resolves defaults, then the TOML file at path, then the .env file and
// environment.
func Load(path, dotenv string) (Config, error) {
	cfg := Default()
	if path != "" {
		fc, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Apply(fc)
	}
	if dotenv != "" {
		if err := LoadDotEnv(dotenv); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "photons", "config.toml")
}
