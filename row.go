package main

import (
	"strings"

	"github.com/andareed/dynonview/dataset"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const missingCellText = "NaN"

type renderedRow struct {
	cols          []string
	missing       []bool
	originalIndex int // position in the data slice, shown in the gutter
}

func rowsOf(t *dataset.Table) []renderedRow {
	rows := make([]renderedRow, t.NumRows())
	for r := range rows {
		rec := t.Record(r)
		miss := make([]bool, len(rec))
		for c := range rec {
			miss[c] = t.Missing(r, c)
		}
		rows[r] = renderedRow{cols: rec, missing: miss, originalIndex: r}
	}
	return rows
}

func (r *renderedRow) Join(sep string) string {
	var b strings.Builder
	for i, col := range r.cols {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(col)
	}
	return b.String()
}

// String implements fmt.Stringer; tab separated, ready for the clipboard.
func (r *renderedRow) String() string {
	return r.Join("\t")
}

// Render lays the cells out at the widths in colsMeta, one line per row.
// Missing cells print as NaN in missingStyle.
func (r *renderedRow) Render(style, missingStyle lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string
	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		st := style
		if i < len(r.missing) && r.missing[i] {
			text = missingCellText
			st = missingStyle
		}
		text = truncate.StringWithTail(text, uint(max(1, meta.Width-2)), "…")
		rendered = append(rendered, st.Width(meta.Width).Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
