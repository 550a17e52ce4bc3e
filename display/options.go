package display

import (
	"errors"
	"fmt"

	"github.com/andareed/dynonview/dataset"
)

var ErrInvalidOptions = errors.New("invalid display options")

// MaxOverlays is the largest number of y columns drawn on one plot.
const MaxOverlays = 4

// Options is the user's current selection of views, rows and axes.
type Options struct {
	ShowPlot    bool
	ShowRawData bool
	ShowTrack   bool

	MinID      int
	MaxID      int
	SampleRate int

	XAxis string
	YAxis []string

	// MultiY is accepted from the sidebar but does not change rendering.
	MultiY bool
}

// Defaults returns options with every view hidden and a one-row range.
func Defaults() Options {
	return Options{SampleRate: 1}
}

// Validate wraps ErrInvalidOptions when the stride is below 1, the range is
// negative or inverted, x is unset, or there are not 1 to MaxOverlays y axes.
func (o Options) Validate() error {
	switch {
	case o.SampleRate < 1:
		return fmt.Errorf("%w: sample rate %d < 1", ErrInvalidOptions, o.SampleRate)
	case o.MinID < 0:
		return fmt.Errorf("%w: min id %d < 0", ErrInvalidOptions, o.MinID)
	case o.MinID > o.MaxID:
		return fmt.Errorf("%w: min id %d > max id %d", ErrInvalidOptions, o.MinID, o.MaxID)
	case o.XAxis == "":
		return fmt.Errorf("%w: no x axis", ErrInvalidOptions)
	case len(o.YAxis) < 1 || len(o.YAxis) > MaxOverlays:
		return fmt.Errorf("%w: %d y axes, want 1-%d", ErrInvalidOptions, len(o.YAxis), MaxOverlays)
	}
	return nil
}

// Rows returns the row labels selected by [MinID:MaxID:SampleRate], both
// ends inclusive. Labels at or past numRows do not exist and are skipped.
func (o Options) Rows(numRows int) []int {
	step := o.SampleRate
	if step < 1 {
		step = 1
	}
	start := o.MinID
	if start < 0 {
		start = 0
	}
	end := o.MaxID
	if end > numRows-1 {
		end = numRows - 1
	}
	if end < start {
		return nil
	}
	rows := make([]int, 0, (end-start)/step+1)
	for r := start; r <= end; r += step {
		rows = append(rows, r)
	}
	return rows
}

// Columns is the raw-data projection: x first, then every y in order.
func (o Options) Columns() []string {
	cols := make([]string, 0, 1+len(o.YAxis))
	cols = append(cols, o.XAxis)
	return append(cols, o.YAxis...)
}

// Slice copies the given rows and named columns into a new table indexed
// from zero. A nil cols keeps every column.
func Slice(t *dataset.Table, rows []int, cols []string) (*dataset.Table, error) {
	var idx []int
	if cols == nil {
		idx = make([]int, t.NumCols())
		for i := range idx {
			idx[i] = i
		}
	} else {
		idx = make([]int, len(cols))
		for i, name := range cols {
			j := t.Index(name)
			if j < 0 {
				return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidOptions, name)
			}
			idx[i] = j
		}
	}

	out := make([]dataset.Column, len(idx))
	for i, j := range idx {
		cells := make([]string, 0, len(rows))
		for _, r := range rows {
			if r < 0 || r >= t.NumRows() {
				continue
			}
			cells = append(cells, t.Cell(r, j))
		}
		out[i] = dataset.Column{Name: t.Columns[j].Name, Cells: cells}
	}
	return dataset.NewTable(out), nil
}

// ClampIndex keeps a default column index inside [0, n). The bool reports
// whether want had to move.
func ClampIndex(want, n int) (int, bool) {
	if n <= 0 {
		return 0, want != 0
	}
	if want < 0 {
		return 0, true
	}
	if want >= n {
		return n - 1, true
	}
	return want, false
}
