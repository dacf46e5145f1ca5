package summary

import (
	"fmt"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/measurement"
	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/table"
)

// G2Summary is the per-session, per-mode result. The file fields are nil
// when the table has no usable g2 column.
type G2Summary struct {
	SessionName string
	Mode        g2.Mode
	NRows       int

	G2FileMean *float64
	G2FileStd  *float64
	G2FileSEM  *float64

	G2CountsMean float64
	G2CountsStd  float64
	G2CountsSEM  float64

	TestTimeUs          float64
	CoincidenceWindowNs float64
}

// Counts returns the computed g2 statistics as a Stats.
func (s G2Summary) Counts() Stats {
	return Stats{Mean: s.G2CountsMean, Std: s.G2CountsStd, SEM: s.G2CountsSEM}
}

// File returns the file g2 statistics, if any.
func (s G2Summary) File() (Stats, bool) {
	if s.G2FileMean == nil {
		return Stats{}, false
	}
	return Stats{Mean: *s.G2FileMean, Std: *s.G2FileStd, SEM: *s.G2FileSEM}, true
}

// NoValidDataError means every computed row of a table was invalid.
type NoValidDataError struct {
	Session string
	Mode    g2.Mode
	Rows    int
}

func (e *NoValidDataError) Error() string {
	return fmt.Sprintf("no valid g2 values in %d rows", e.Rows)
}

// SessionError ties a failure to the session and mode it stopped.
type SessionError struct {
	Session string
	Mode    g2.Mode
	Err     error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s (%v): %v", e.Session, e.Mode, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Summarize reduces a series to a G2Summary. nRows is the table's original
// row count; the statistics only use valid readings.
func Summarize(
	session string,
	mode g2.Mode,
	nRows int,
	series g2.Series,
	info measurement.Info,
) (
	G2Summary,
	error,
) {
	counts := g2.Valid(series.Counts)
	if len(counts) == 0 {
		return G2Summary{}, &NoValidDataError{Session: session, Mode: mode, Rows: nRows}
	}
	c := Describe(counts)

	s := G2Summary{
		SessionName:         session,
		Mode:                mode,
		NRows:               nRows,
		G2CountsMean:        c.Mean,
		G2CountsStd:         c.Std,
		G2CountsSEM:         c.SEM,
		TestTimeUs:          info.TestTimeUs,
		CoincidenceWindowNs: info.CoincidenceWindowNs,
	}

	if series.HasFile {
		if file := g2.Valid(series.File); len(file) > 0 {
			f := Describe(file)
			s.G2FileMean, s.G2FileStd, s.G2FileSEM = &f.Mean, &f.Std, &f.SEM
		}
	}
	return s, nil
}

// Analyze computes and summarizes one table. Failures come back as
// *SessionError.
func Analyze(
	session string,
	mode g2.Mode,
	t *table.Table,
	info measurement.Info,
) (
	G2Summary,
	g2.Series,
	error,
) {
	series, err := g2.Compute(t, mode, info)
	if err != nil {
		return G2Summary{}, g2.Series{}, &SessionError{Session: session, Mode: mode, Err: err}
	}
	s, err := Summarize(session, mode, t.Len(), series, info)
	if err != nil {
		return G2Summary{}, series, &SessionError{Session: session, Mode: mode, Err: err}
	}
	return s, series, nil
}
