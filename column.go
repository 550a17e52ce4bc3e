package main

import (
	"strings"

	"github.com/andareed/dynonview/dataset"
)

type ColumnRole int

const (
	RoleNormal ColumnRole = iota
	RoleTime              // session/GPS time and date columns
	RolePosition
)

type ColumnMeta struct {
	Name     string
	Index    int
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

func detectRole(name string) ColumnRole {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(n, "time"), strings.Contains(n, "date"):
		return RoleTime
	case strings.HasPrefix(n, "latitude"), strings.HasPrefix(n, "longitude"):
		return RolePosition
	default:
		return RoleNormal
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RoleTime:
		return 21
	case RolePosition:
		return 13
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RoleTime:
		return 2.0
	default:
		return 1.0
	}
}

// buildColumnMeta describes the columns of a data slice. Headers wider than
// the role minimum widen the column so the name is never cut.
func buildColumnMeta(t *dataset.Table) []ColumnMeta {
	cols := make([]ColumnMeta, 0, t.NumCols())
	for i, c := range t.Columns {
		role := detectRole(c.Name)
		cols = append(cols, ColumnMeta{
			Name:     c.Name,
			Index:    i,
			Role:     role,
			Visible:  true,
			MinWidth: max(defaultMinWidthForRole(role), len([]rune(c.Name))+2),
			Weight:   defaultWeightForRole(role),
		})
	}
	return cols
}

// layoutColumns sets Width on every visible column. Columns never shrink
// below MinWidth; the viewport scrolls horizontally instead.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	remaining := totalWidth - minSum
	if remaining < 0 {
		remaining = 0
	}

	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}

func totalWidth(cols []ColumnMeta) int {
	w := 0
	for _, c := range cols {
		if c.Visible {
			w += c.Width
		}
	}
	return w
}
