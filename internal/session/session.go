// Package session finds measurement sessions on disk.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/HamletTheHamster/Photon-Counting-in-Go/internal/g2"
)

// Session is one directory of a samples tree holding at least one
// coincidence table.
type Session struct {
	Name string
	Dir  string
	// Tables maps each mode present to the path of its CSV.
	Tables map[g2.Mode]string
}

// Has reports whether the session holds a table for mode m.
func (s Session) Has(m g2.Mode) bool {
	_, ok := s.Tables[m]
	return ok
}

// Discover lists the subdirectories of root that contain any of the given
// per-mode file names, sorted by name.
func Discover(root string, files map[g2.Mode]string) ([]Session, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read samples dir: %w", err)
	}

	var sessions []Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		s := Session{Name: e.Name(), Dir: dir, Tables: make(map[g2.Mode]string)}
		for _, m := range g2.Modes {
			name, ok := files[m]
			if !ok || name == "" {
				continue
			}
			p := filepath.Join(dir, name)
			info, err := os.Stat(p)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", p, err)
			}
			if info.Mode().IsRegular() {
				s.Tables[m] = p
			}
		}
		if len(s.Tables) > 0 {
			sessions = append(sessions, s)
		}
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })
	return sessions, nil
}
