package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputDir returns root, or with stamp a dated subfolder of root named
// after the run time and note.
func OutputDir(root string, stamp bool, note string, now time.Time) string {
	if !stamp {
		return root
	}
	name := now.Format("15-04-05")
	if note = strings.TrimSpace(note); note != "" {
		name += " " + note
	}
	return filepath.Join(root, now.Format("2006-Jan-02"), name)
}

// RunLog collects the lines written to log.txt next to a run's figures.
type RunLog struct {
	lines []string
}

// NewRunLog starts a log with the command, the time and an optional note.
func NewRunLog(command, note string, now time.Time) *RunLog {
	l := &RunLog{}
	l.Printf("photons %s\n", command)
	l.Printf("Run at %s\n", now.Format(time.RFC1123))
	if note != "" {
		l.Printf("Runtime note: %s\n", note)
	}
	l.Printf("\n")
	return l
}

// Printf appends a formatted line.
func (l *RunLog) Printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Block appends a multi-line block followed by a blank line.
func (l *RunLog) Block(text string) {
	l.lines = append(l.lines, strings.TrimRight(text, "\n")+"\n\n")
}

// String returns the log text.
func (l *RunLog) String() string {
	return strings.Join(l.lines, "")
}

// Write saves the log as dir/log.txt.
func (l *RunLog) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, "log.txt")
	txt, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := bufio.NewWriter(txt)
	for _, line := range l.lines {
		if _, err := w.WriteString(line); err != nil {
			txt.Close()
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		txt.Close()
		return "", err
	}
	return path, txt.Close()
}
