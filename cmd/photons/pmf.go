package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/pmf"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/prompt"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/render"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/report"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/table"
)

var (
	pmfColumn      string
	pmfOverlay     bool
	pmfRates       string
	pmfConnect     bool
	pmfFit         bool
	pmfLayout      string
	pmfInteractive bool
	pmfGIF         bool
	pmfGIFDelay    int
	pmfPreview     bool
)

func newPMFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pmf <csv|dir>...",
		Short: "Photon-number histograms with a Poisson overlay",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPMFCmd,
	}
	cmd.Flags().StringVar(&pmfColumn, "column", "", "count column (default: first)")
	cmd.Flags().BoolVar(&pmfOverlay, "poisson", true, "overlay the Poisson distribution")
	cmd.Flags().StringVar(&pmfRates, "mu", "", "custom Poisson rates, one per dataset (default: sample means)")
	cmd.Flags().BoolVar(&pmfConnect, "connect", false, "connect the Poisson points with a line")
	cmd.Flags().BoolVar(&pmfFit, "fit", false, "fit the Poisson rate by weighted least squares and draw it")
	cmd.Flags().StringVar(&pmfLayout, "layout", prompt.LayoutSeparate, "separate or combined")
	cmd.Flags().BoolVarP(&pmfInteractive, "interactive", "i", false, "ask for the histogram options")
	cmd.Flags().BoolVar(&pmfGIF, "gif", false, "animate the separate png histograms into pmf.gif")
	cmd.Flags().IntVar(&pmfGIFDelay, "gif-delay", 100, "gif frame delay in 1/100 s")
	cmd.Flags().BoolVar(&pmfPreview, "preview", false, "open each histogram in gnuplot (builds with -tags gnuplot)")
	return cmd
}

type dataset struct {
	Label   string
	Path    string
	Obs     []int
	Dropped int
}

func runPMFCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := expandInputs(args)
	if err != nil {
		return err
	}

	var datasets []dataset
	for _, path := range paths {
		ds, err := loadDataset(path, pmfColumn)
		if err != nil {
			log.WithFields(log.Fields{"file": path}).Warnf("skipping: %v", err)
			continue
		}
		datasets = append(datasets, ds)
	}

	answers := prompt.Answers{
		Overlay: pmfOverlay,
		Custom:  pmfRates != "",
		Rates:   pmfRates,
		Connect: pmfConnect,
		Layout:  pmfLayout,
	}
	if pmfInteractive {
		if !prompt.Interactive(os.Stdin) {
			return fmt.Errorf("--interactive needs a terminal on stdin")
		}
		labels := make([]string, len(datasets))
		for i, ds := range datasets {
			labels[i] = ds.Label
		}
		if answers, err = prompt.Ask(labels, answers, nil, nil); err != nil {
			return err
		}
	}
	if answers.Layout != prompt.LayoutSeparate && answers.Layout != prompt.LayoutCombined {
		return fmt.Errorf("--layout must be %q or %q", prompt.LayoutSeparate, prompt.LayoutCombined)
	}

	var rates []float64
	if answers.Overlay && answers.Custom {
		rates, err = prompt.ParseRates(answers.Rates, len(datasets))
		if err != nil {
			log.Warnf("%v, using sample means", err)
			rates = nil
		}
	}

	now := time.Now()
	outDir := report.OutputDir(cfg.OutputDir, stamp, note, now)
	saver := render.Saver{Dir: outDir, Plot: cfg.Plot}
	opts := render.HistogramOptions{Connect: answers.Connect, Dark: cfg.Plot.Dark}

	var (
		rows   []report.CountsRow
		plots  []*plot.Plot
		frames []string
	)
	for i, ds := range datasets {
		fields := log.Fields{"dataset": ds.Label}

		p, err := pmf.Estimate(ds.Obs)
		if errors.Is(err, pmf.ErrEmptyInput) {
			log.WithFields(fields).Warn("no valid counts, skipping")
			continue
		}
		if err != nil {
			return err
		}
		m, err := pmf.Describe(ds.Obs)
		if err != nil {
			return err
		}

		h := render.Histogram{Label: ds.Label, PMF: p}
		row := report.CountsRow{
			Label:    ds.Label,
			N:        m.N,
			Dropped:  ds.Dropped,
			Mean:     m.Mean,
			Variance: m.Variance,
			Std:      m.Std,
			Rate:     m.Mean,
		}

		if answers.Overlay {
			var mu *float64
			if rates != nil {
				mu = &rates[i]
			}
			o, err := p.Poisson(mu)
			if err != nil {
				log.WithFields(fields).Warnf("poisson overlay: %v", err)
			} else {
				row.Rate = o.Mu
				h.Curves = append(h.Curves, render.Curve{Overlay: o})
			}
		}

		if pmfFit {
			μ, err := pmf.FitRate(p)
			if err != nil {
				log.WithFields(fields).Warnf("fit: %v", err)
			} else {
				row.Fit = &μ
				if o, err := p.Poisson(&μ); err == nil {
					h.Curves = append(h.Curves, render.Curve{
						Name:    fmt.Sprintf("Poisson fit μ=%.3g", μ),
						Overlay: o,
						Dashed:  true,
					})
				}
			}
		}
		rows = append(rows, row)

		log.WithFields(fields).WithFields(log.Fields{
			"n":       m.N,
			"dropped": ds.Dropped,
			"mean":    m.Mean,
			"var":     m.Variance,
		}).Debug("estimated pmf")

		fig, err := render.PMFPlot(h, i, opts)
		if err != nil {
			return err
		}
		plots = append(plots, fig)

		if answers.Layout == prompt.LayoutSeparate {
			saved, err := saver.Save(fig, "pmf_"+safeName(ds.Label))
			if err != nil {
				return err
			}
			for _, s := range saved {
				if strings.HasSuffix(s, ".png") {
					frames = append(frames, s)
				}
			}
		}

		if pmfPreview {
			if err := render.Preview(h, "", true); err != nil {
				log.WithFields(fields).Warnf("preview: %v", err)
			}
		}
	}

	if len(rows) == 0 {
		return fmt.Errorf("no dataset had valid counts")
	}

	if answers.Layout == prompt.LayoutCombined {
		if _, err := saver.SaveGrid(render.PMFGrid(plots), "all_histograms"); err != nil {
			return err
		}
	}

	if pmfGIF {
		switch {
		case answers.Layout != prompt.LayoutSeparate:
			log.Warn("--gif needs the separate layout, skipping")
		case len(frames) == 0:
			log.Warn("--gif needs png output, skipping")
		default:
			gifPath := filepath.Join(outDir, "pmf.gif")
			if err := render.Animate(frames, gifPath, pmfGIFDelay); err != nil {
				return err
			}
			log.Infof("wrote %s", gifPath)
		}
	}

	counts := report.CountsTable(rows)
	fmt.Fprintln(cmd.OutOrStdout(), counts)

	runLog := report.NewRunLog("pmf", note, now)
	runLog.Printf("Datasets: %s\n", strings.Join(paths, ", "))
	runLog.Printf("Layout: %s\n\n", answers.Layout)
	runLog.Block(counts)
	if _, err := runLog.Write(outDir); err != nil {
		log.Warnf("run log: %v", err)
	}
	return nil
}

// expandInputs replaces each directory argument with the CSV files inside
// it, sorted by name.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.csv"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no csv files in %s", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func loadDataset(path, column string) (dataset, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return dataset{}, err
	}
	col := 0
	if column != "" {
		if col, err = t.Index().Lookup(column); err != nil {
			return dataset{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	obs, dropped := pmf.Coerce(t.Column(col))
	if dropped > 0 {
		log.WithFields(log.Fields{"file": path, "dropped": dropped}).Debug("dropped invalid cells")
	}
	return dataset{Label: fileLabel(path), Path: path, Obs: obs, Dropped: dropped}, nil
}
