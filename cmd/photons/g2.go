package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/render"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/report"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/session"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/summary"
)

var (
	g2Histograms bool
	g2Bins       int
)

func newG2Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "g2 [samples-dir]",
		Short: "Summarize g2(0) for every session of a samples directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runG2Cmd,
	}
	cmd.Flags().BoolVar(&g2Histograms, "histograms", false, "also draw a g2(0) histogram per session and mode")
	cmd.Flags().IntVar(&g2Bins, "bins", 30, "histogram bins")
	return cmd
}

func runG2Cmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.SamplesDir = args[0]
	}
	if g2Bins <= 0 {
		return fmt.Errorf("--bins must be > 0")
	}

	sessions, err := session.Discover(cfg.SamplesDir, cfg.TableFiles())
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions with %s or %s under %s",
			cfg.Files.TwoDetector, cfg.Files.ThreeDetector, cfg.SamplesDir)
	}
	log.WithFields(log.Fields{"samples": cfg.SamplesDir, "sessions": len(sessions)}).Info("discovered sessions")

	rep := summary.Run(sessions, summary.Options{
		InfoFile: cfg.Files.Info,
		Defaults: cfg.Defaults,
	}, log.StandardLogger())

	now := time.Now()
	outDir := report.OutputDir(cfg.OutputDir, stamp, note, now)
	saver := render.Saver{Dir: outDir, Plot: cfg.Plot}
	runLog := report.NewRunLog("g2", note, now)
	runLog.Printf("Samples: %s\n", cfg.SamplesDir)
	runLog.Printf("Sessions: %d\n\n", len(sessions))

	for _, mode := range g2.Modes {
		sums := rep.Summaries(mode)
		if len(sums) == 0 {
			continue
		}
		fields := log.Fields{"mode": mode.String()}

		csvPath := filepath.Join(outDir, fmt.Sprintf("summary_%s.csv", mode))
		if err := mkdirFor(csvPath); err != nil {
			return err
		}
		if err := summary.WriteCSVFile(csvPath, sums); err != nil {
			return err
		}
		log.WithFields(fields).Infof("wrote %s", csvPath)

		for _, src := range []render.Source{render.FromCounts, render.FromFile} {
			p, err := render.SummaryPlot(mode, sums, src)
			if errors.Is(err, render.ErrNothingToPlot) {
				log.WithFields(fields).Debugf("no %s statistics to plot", src)
				continue
			}
			if err != nil {
				return err
			}
			if _, err := saver.Save(p, fmt.Sprintf("plot_g2_%s_%s", mode, src)); err != nil {
				return err
			}
		}

		if p, err := render.BoxPlot(mode, rep.Results[mode]); err == nil {
			if _, err := saver.Save(p, fmt.Sprintf("box_g2_%s", mode)); err != nil {
				return err
			}
		} else if !errors.Is(err, render.ErrNothingToPlot) {
			return err
		}

		if g2Histograms {
			for _, res := range rep.Results[mode] {
				name := res.Summary.SessionName
				p, err := render.G2Histogram(fmt.Sprintf("g2(0) %s (%s)", name, mode), res.Counts, g2Bins)
				if err != nil {
					log.WithFields(fields).WithField("session", name).Warnf("histogram: %v", err)
					continue
				}
				if _, err := saver.Save(p, fmt.Sprintf("hist_g2_%s_%s", safeName(name), mode)); err != nil {
					return err
				}
			}
		}

		table := report.SummaryTable(sums)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", mode, table)
		runLog.Printf("*%s*\n", mode)
		runLog.Block(table)
	}

	for _, e := range rep.Errors {
		runLog.Printf("Skipped: %v\n", e)
	}

	if _, err := runLog.Write(outDir); err != nil {
		log.Warnf("run log: %v", err)
	}

	if rep.Len() == 0 {
		return fmt.Errorf("no session could be summarized (%d failures)", len(rep.Errors))
	}
	return nil
}

func mkdirFor(path string) error {
	return ensureDir(filepath.Dir(path))
}
