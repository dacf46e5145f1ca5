package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/pmf"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/prompt"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/report"
)

var (
	exposureTimeUs  float64
	exposureScale   string
	exposureTargets string
	exposureColumn  string
)

func newExposureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exposure <reference.csv>",
		Short: "Acquisition times needed for target mean photon numbers",
		Args:  cobra.ExactArgs(1),
		RunE:  runExposureCmd,
	}
	cmd.Flags().Float64Var(&exposureTimeUs, "time-us", 500000, "acquisition window of the reference run, in us")
	cmd.Flags().StringVar(&exposureScale, "scale", "micro", "output scale: nano, micro, mili or empty for seconds")
	cmd.Flags().StringVar(&exposureTargets, "target", "1,5,10,100", "target mean photon numbers")
	cmd.Flags().StringVar(&exposureColumn, "column", "", "count column (default: first)")
	return cmd
}

func runExposureCmd(cmd *cobra.Command, args []string) error {
	if _, ok := pmf.Scales[exposureScale]; !ok {
		return fmt.Errorf("--scale must be nano, micro, mili or empty")
	}

	ds, err := loadDataset(args[0], exposureColumn)
	if err != nil {
		return err
	}
	m, err := pmf.Describe(ds.Obs)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	log.WithFields(log.Fields{
		"reference": args[0],
		"mean":      m.Mean,
		"time_us":   exposureTimeUs,
	}).Info("reference run")

	targets, err := prompt.ParseList(exposureTargets)
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}
	if len(targets) == 0 {
		return fmt.Errorf("--target is empty")
	}

	var rows []report.ExposureRow
	for _, target := range targets {
		t, err := pmf.ExposureTime(target, m.Mean, exposureTimeUs, exposureScale)
		if err != nil {
			return err
		}
		rows = append(rows, report.ExposureRow{Target: target, Time: t, Unit: exposureScale})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "reference mean %.6g photons in %g us\n%s\n",
		m.Mean, exposureTimeUs, report.ExposureTable(rows))
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
