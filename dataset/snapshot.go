package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// --- Wire format ---

const snapshotVersion = 1

type columnDTO struct {
	Name  string   `json:"name"`
	Cells []string `json:"cells"`
}

type entryDTO struct {
	Path    string      `json:"path"`
	ModTime int64       `json:"modTime"` // unix nanoseconds
	Size    int64       `json:"size"`
	Rows    int         `json:"rows"`
	Columns []columnDTO `json:"columns"`
}

type snapshotDTO struct {
	Version int        `json:"version"`
	Entries []entryDTO `json:"entries"`
}

func toDTO(e entry) entryDTO {
	d := entryDTO{
		Path:    e.key.Path,
		ModTime: e.key.ModTime.UnixNano(),
		Size:    e.key.Size,
		Rows:    e.table.NumRows(),
		Columns: make([]columnDTO, 0, len(e.table.Columns)),
	}
	for _, c := range e.table.Columns {
		d.Columns = append(d.Columns, columnDTO{Name: c.Name, Cells: append([]string(nil), c.Cells...)})
	}
	return d
}

func fromDTO(d entryDTO) (entry, error) {
	cols := make([]Column, 0, len(d.Columns))
	for _, c := range d.Columns {
		if len(c.Cells) != d.Rows {
			return entry{}, fmt.Errorf("column %q has %d cells, want %d", c.Name, len(c.Cells), d.Rows)
		}
		cols = append(cols, Column{Name: c.Name, Cells: c.Cells})
	}
	return entry{
		key:   Key{Path: d.Path, ModTime: time.Unix(0, d.ModTime), Size: d.Size},
		table: &Table{Columns: cols, rows: d.Rows},
	}, nil
}

// Save writes every cached table to path as JSON.
func (c *Cache) Save(path string) error {
	c.mu.RLock()
	dto := snapshotDTO{Version: snapshotVersion, Entries: make([]entryDTO, 0, len(c.entries))}
	for _, e := range c.entries {
		dto.Entries = append(dto.Entries, toDTO(e))
	}
	c.mu.RUnlock()

	data, err := json.Marshal(dto)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Restore merges a snapshot written by Save. A missing file is not an error.
// Restored entries are still checked against the file on disk by Load.
func (c *Cache) Restore(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	if dto.Version != snapshotVersion {
		return fmt.Errorf("cache snapshot version %d not supported (want %d)", dto.Version, snapshotVersion)
	}

	restored := make([]entry, 0, len(dto.Entries))
	for _, d := range dto.Entries {
		e, err := fromDTO(d)
		if err != nil {
			return fmt.Errorf("cache entry %s: %w", d.Path, err)
		}
		restored = append(restored, e)
	}

	c.mu.Lock()
	for _, e := range restored {
		c.entries[e.key.Path] = e
	}
	c.mu.Unlock()
	return nil
}
