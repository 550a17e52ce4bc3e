package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/andareed/dynonview/logging"
)

var ErrUnparseable = errors.New("not a parseable table")

// ReadFile parses the CSV file at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a header row plus data rows. Columns that never hold a
// non-missing value are dropped.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: error reading CSV: %v", ErrUnparseable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrUnparseable)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	rows := records[1:]

	names := make([]string, len(header))
	for i, name := range header {
		names[i] = strings.TrimSpace(name)
	}
	names = dedupeNames(names)

	cols := make([]Column, len(header))
	hasData := make([]bool, len(header))
	for i, name := range names {
		cols[i] = Column{Name: name, Cells: make([]string, len(rows))}
	}

	for r, rec := range rows {
		for c := range cols {
			if c >= len(rec) {
				continue // short row, cell stays missing
			}
			cols[c].Cells[r] = rec[c]
			if !hasData[c] && !IsMissing(rec[c]) {
				hasData[c] = true
			}
		}
	}

	kept := cols[:0]
	for i := range cols {
		if !hasData[i] {
			logging.Debugf("Dropping column %d (%q): no data in any row", i, cols[i].Name)
			continue
		}
		kept = append(kept, cols[i])
	}

	t := &Table{Columns: kept, rows: len(rows)}
	return t, nil
}

// dedupeNames renames repeated header names to name.1, name.2 and so on,
// skipping any suffix that is already taken by another column.
func dedupeNames(names []string) []string {
	used := make(map[string]bool, len(names))
	for _, n := range names {
		used[n] = true
	}
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		k := seen[n]
		if k == 0 {
			seen[n] = 1
			out[i] = n
			continue
		}
		cur := fmt.Sprintf("%s.%d", n, k)
		for used[cur] {
			k++
			cur = fmt.Sprintf("%s.%d", n, k)
		}
		seen[n] = k + 1
		used[cur] = true
		out[i] = cur
	}
	return out
}

// Discover lists regular files in dir whose name contains ext, sorted.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.Contains(e.Name(), ext) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
