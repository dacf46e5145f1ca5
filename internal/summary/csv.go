package summary

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the column order of a summary table.
var Header = []string{
	"session_name",
	"mode",
	"n_rows",
	"g2_file_mean",
	"g2_file_std",
	"g2_file_sem",
	"g2_counts_mean",
	"g2_counts_std",
	"g2_counts_sem",
	"test_time_us",
	"coincidence_window_ns",
}

// WriteCSV writes summaries in the given order. Missing file statistics are
// written as empty cells.
func WriteCSV(w io.Writer, summaries []G2Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range summaries {
		rec := []string{
			s.SessionName,
			s.Mode.String(),
			strconv.Itoa(s.NRows),
			optional(s.G2FileMean),
			optional(s.G2FileStd),
			optional(s.G2FileSEM),
			num(s.G2CountsMean),
			num(s.G2CountsStd),
			num(s.G2CountsSEM),
			num(s.TestTimeUs),
			num(s.CoincidenceWindowNs),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes summaries to path, replacing any existing file.
func WriteCSVFile(path string, summaries []G2Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := WriteCSV(f, summaries); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}
