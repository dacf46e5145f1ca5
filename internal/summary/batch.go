package summary

import (
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/session"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/table"
)

// Options configures a batch run.
type Options struct {
	// InfoFile is the per-session metadata file name; blank means defaults.
	InfoFile string
	Defaults measurement.Info
}

// Result is one summarized session table together with the valid readings
// behind it.
type Result struct {
	Summary G2Summary
	Counts  []float64
	File    []float64
}

// Report collects every result and every per-session failure of a run.
type Report struct {
	Results map[g2.Mode][]Result
	Errors  []error
}

// Summaries returns the summaries of mode m sorted by session name.
func (r Report) Summaries(m g2.Mode) []G2Summary {
	out := make([]G2Summary, 0, len(r.Results[m]))
	for _, res := range r.Results[m] {
		out = append(out, res.Summary)
	}
	return out
}

// Len is the number of summaries across all modes.
func (r Report) Len() int {
	n := 0
	for _, rs := range r.Results {
		n += len(rs)
	}
	return n
}

// Run analyzes every table of every session. A failing session or mode is
// logged and recorded in Report.Errors, and the batch carries on.
func Run(sessions []session.Session, opts Options, logger logrus.FieldLogger) Report {
	rep := Report{Results: make(map[g2.Mode][]Result)}

	for _, s := range sessions {
		infoPath := ""
		if opts.InfoFile != "" {
			infoPath = filepath.Join(s.Dir, opts.InfoFile)
		}
		info := measurement.Read(infoPath, opts.Defaults)

		for _, mode := range g2.Modes {
			path, ok := s.Tables[mode]
			if !ok {
				continue
			}
			fields := logrus.Fields{"session": s.Name, "mode": mode.String()}

			t, err := table.ReadFile(path)
			if err != nil {
				err = &SessionError{Session: s.Name, Mode: mode, Err: err}
				logger.WithFields(fields).Warnf("skipping: %v", err)
				rep.Errors = append(rep.Errors, err)
				continue
			}

			sum, series, err := Analyze(s.Name, mode, t, info)
			if err != nil {
				logger.WithFields(fields).Warnf("skipping: %v", err)
				rep.Errors = append(rep.Errors, err)
				continue
			}

			res := Result{Summary: sum, Counts: g2.Valid(series.Counts)}
			if series.HasFile {
				res.File = g2.Valid(series.File)
			}
			rep.Results[mode] = append(rep.Results[mode], res)

			logger.WithFields(fields).WithFields(logrus.Fields{
				"rows":  sum.NRows,
				"valid": len(res.Counts),
				"mean":  sum.G2CountsMean,
				"sem":   sum.G2CountsSEM,
			}).Info("summarized")
		}
	}

	for _, rs := range rep.Results {
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Summary.SessionName < rs[j].Summary.SessionName
		})
	}
	return rep
}
