package table

import (
	"fmt"
	"strings"
)

// MissingColumnError reports a required column that the table does not have.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q, available: %q", e.Column, e.Available)
}

// Index is a case-insensitive column lookup built once per header.
type Index struct {
	columns []string
	byName  map[string]int
}

// NewIndex builds the lookup for a header. When two columns normalize to the
// same name the first one wins.
func NewIndex(columns []string) Index {
	idx := Index{
		columns: columns,
		byName:  make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		key := normalize(c)
		if _, ok := idx.byName[key]; !ok {
			idx.byName[key] = i
		}
	}
	return idx
}

// Index returns the lookup for the table's header.
func (t *Table) Index() Index {
	return NewIndex(t.Columns)
}

// Lookup resolves name to a column position.
func (idx Index) Lookup(name string) (int, error) {
	if i, ok := idx.byName[normalize(name)]; ok {
		return i, nil
	}
	available := make([]string, len(idx.columns))
	copy(available, idx.columns)
	return -1, &MissingColumnError{Column: name, Available: available}
}

// Like returns the first column whose normalized name contains substr. A
// column whose normalized name, with spaces removed, equals one of preferred
// is chosen over earlier candidates.
func (idx Index) Like(substr string, preferred ...string) (int, bool) {
	substr = normalize(substr)
	first := -1
	for i, c := range idx.columns {
		name := normalize(c)
		if !strings.Contains(name, substr) {
			continue
		}
		compact := strings.ReplaceAll(name, " ", "")
		for _, p := range preferred {
			if compact == p {
				return i, true
			}
		}
		if first < 0 {
			first = i
		}
	}
	return first, first >= 0
}

// Name returns the header text of column i.
func (idx Index) Name(i int) string {
	if i < 0 || i >= len(idx.columns) {
		return ""
	}
	return idx.columns[i]
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
