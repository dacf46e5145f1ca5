// Package report formats run results for the terminal and the run log.
package report

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/summary"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return mutedStyle
			}
			return cellStyle
		})
}

// SummaryTable renders one line per session summary.
func SummaryTable(summaries []summary.G2Summary) string {
	t := newTable("session", "mode", "rows", "g2 counts", "± SEM", "g2 file", "± SEM", "T (us)", "τ (ns)")
	for _, s := range summaries {
		fileMean, fileSEM := "-", "-"
		if f, ok := s.File(); ok {
			fileMean, fileSEM = num(f.Mean), num(f.SEM)
		}
		t.Row(
			s.SessionName,
			s.Mode.String(),
			strconv.Itoa(s.NRows),
			num(s.G2CountsMean),
			num(s.G2CountsSEM),
			fileMean,
			fileSEM,
			num(s.TestTimeUs),
			num(s.CoincidenceWindowNs),
		)
	}
	return t.String()
}

// CountsRow is the descriptive summary of one count column.
type CountsRow struct {
	Label    string
	N        int
	Dropped  int
	Mean     float64
	Variance float64
	Std      float64
	// Rate is the Poisson rate drawn; Fit the least-squares rate, if any.
	Rate float64
	Fit  *float64
}

// CountsTable renders the per-dataset mean, variance and Poisson rates.
func CountsTable(rows []CountsRow) string {
	t := newTable("dataset", "N", "dropped", "mean", "variance", "std", "μ", "μ fit")
	for _, r := range rows {
		fit := "-"
		if r.Fit != nil {
			fit = num(*r.Fit)
		}
		t.Row(
			r.Label,
			strconv.Itoa(r.N),
			strconv.Itoa(r.Dropped),
			num(r.Mean),
			num(r.Variance),
			num(r.Std),
			num(r.Rate),
			fit,
		)
	}
	return t.String()
}

// ExposureRow is one requested photon number and the time it needs.
type ExposureRow struct {
	Target float64
	Time   float64
	Unit   string
}

// ExposureTable renders required acquisition times.
func ExposureTable(rows []ExposureRow) string {
	t := newTable("photons", "time", "unit")
	for _, r := range rows {
		unit := r.Unit
		if unit == "" {
			unit = "s"
		} else {
			unit += "s"
		}
		t.Row(num(r.Target), num(r.Time), unit)
	}
	return t.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
