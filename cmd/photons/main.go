// Package main provides the CLI entrypoint for photons.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/config"
)

var (
	configPath string
	envPath    string
	verbose    bool

	samplesDir  string
	outputDir   string
	plotFormats []string
	plotDPI     int
	plotDark    bool
	stamp       bool
	note        string

	configWrite bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:           "photons",
		Short:         "Photon statistics and g2(0) analysis",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultConfigPath(), "TOML config file")
	pf.StringVar(&envPath, "env", ".env", "dotenv file with PHOTONS_* overrides")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&samplesDir, "samples", defaults.SamplesDir, "samples directory, one subdirectory per session")
	pf.StringVar(&outputDir, "output", defaults.OutputDir, "output directory for figures, tables and log.txt")
	pf.StringSliceVar(&plotFormats, "format", defaults.Plot.Formats, "figure formats (png, svg, pdf, eps, jpg, tiff)")
	pf.IntVar(&plotDPI, "dpi", defaults.Plot.DPI, "png resolution")
	pf.BoolVar(&plotDark, "dark", defaults.Plot.Dark, "darker palette")
	pf.BoolVar(&stamp, "stamp", false, "write into a dated subfolder of the output directory")
	pf.StringVar(&note, "note", "", "note appended to the dated folder name and the run log")

	rootCmd.AddCommand(newG2Cmd())
	rootCmd.AddCommand(newPMFCmd())
	rootCmd.AddCommand(newExposureCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(cmd *cobra.Command) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// resolveConfig layers defaults, the TOML file, .env and the environment,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	applyStringFlag(cmd, "samples", &cfg.SamplesDir, samplesDir)
	applyStringFlag(cmd, "output", &cfg.OutputDir, outputDir)
	applyIntFlag(cmd, "dpi", &cfg.Plot.DPI, plotDPI)
	applyBoolFlag(cmd, "dark", &cfg.Plot.Dark, plotDark)
	if cmd.Flags().Changed("format") {
		cfg.Plot.Formats = plotFormats
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	log.WithFields(log.Fields{
		"config":  configPath,
		"samples": cfg.SamplesDir,
		"output":  cfg.OutputDir,
		"formats": strings.Join(cfg.Plot.Formats, ","),
	}).Debug("configuration resolved")

	return cfg, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default config, or write it with --write",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configWrite, "write", false, "create the config file at --config if it does not exist")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	if !configWrite {
		fmt.Fprint(cmd.OutOrStdout(), config.DefaultTemplate())
		return nil
	}

	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
	return nil
}

// fileLabel names a dataset after its directory and file.
func fileLabel(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Base(filepath.Dir(path))
	if dir == "." || dir == string(filepath.Separator) {
		return base
	}
	return dir + "/" + base
}

// safeName turns a label into a file name.
func safeName(label string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "-")
	return r.Replace(label)
}
