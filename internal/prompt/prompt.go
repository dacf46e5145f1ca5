// Package prompt asks for PMF figure options on an interactive terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Layouts of the PMF figures.
const (
	LayoutSeparate = "separate"
	LayoutCombined = "combined"
)

// ErrRateCount means a rate list does not have one rate per dataset.
var ErrRateCount = errors.New("rate count does not match dataset count")

// Answers are the histogram choices.
type Answers struct {
	Overlay bool
	Custom  bool
	Rates   string
	Connect bool
	Layout  string
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Ask runs the histogram form for the given datasets. defaults seeds every
// answer. A nil in or out uses the terminal.
func Ask(
	datasets []string,
	defaults Answers,
	in io.Reader,
	out io.Writer,
) (
	Answers,
	error,
) {

	a := defaults
	if a.Layout == "" {
		a.Layout = LayoutSeparate
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overlay a Poisson distribution?").
				Affirmative("Yes").
				Negative("No").
				Value(&a.Overlay),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use custom Poisson rates?").
				Affirmative("Yes").
				Negative("Sample means").
				Value(&a.Custom),
		).WithHideFunc(func() bool { return !a.Overlay }),
		huh.NewGroup(
			huh.NewInput().
				Title("Poisson rates μ").
				Description(fmt.Sprintf("One per dataset, in order: %s", strings.Join(datasets, ", "))).
				Placeholder("1.5, 2.0").
				Validate(func(s string) error {
					_, err := ParseRates(s, len(datasets))
					return err
				}).
				Value(&a.Rates),
		).WithHideFunc(func() bool { return !a.Overlay || !a.Custom }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Connect the Poisson points?").
				Value(&a.Connect),
		).WithHideFunc(func() bool { return !a.Overlay }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Layout").
				Options(
					huh.NewOption("One figure per dataset", LayoutSeparate),
					huh.NewOption("All datasets in one figure", LayoutCombined),
				).
				Value(&a.Layout),
		),
	)
	if in != nil {
		form = form.WithInput(in)
	}
	if out != nil {
		form = form.WithOutput(out)
	}

	if err := form.Run(); err != nil {
		return Answers{}, err
	}
	return a, nil
}

// ParseRates reads n Poisson rates separated by commas or spaces.
func ParseRates(s string, n int) ([]float64, error) {
	rates, err := ParseList(s)
	if err != nil {
		return nil, err
	}
	if len(rates) != n {
		return rates, fmt.Errorf("%w: got %d, want %d", ErrRateCount, len(rates), n)
	}
	return rates, nil
}

// ParseList reads non-negative numbers separated by commas, semicolons or
// spaces.
func ParseList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("rate %q: %w", f, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("rate %q must be a non-negative number", f)
		}
		out = append(out, v)
	}
	return out, nil
}
