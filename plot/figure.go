// Package plot turns a table plus display options into chart figures and
// renders them as PNG images or terminal previews.
package plot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/display"
	"github.com/andareed/dynonview/logging"
)

var ErrUnknownColumn = errors.New("unknown column")

const (
	DefaultWidth  = 1000
	DefaultHeight = 500
)

// XKind is how the x column is placed on the axis.
type XKind int

const (
	XNumeric XKind = iota
	XTime
	XCategory
)

func (k XKind) String() string {
	switch k {
	case XTime:
		return "time"
	case XCategory:
		return "category"
	default:
		return "numeric"
	}
}

// timeLayouts are tried in order; the first one that parses every x value wins.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"15:04:05",
	time.RFC3339,
}

// Point is one plotted sample. X is the numeric position on the axis: the
// value itself, Unix seconds for time, or the category ordinal.
type Point struct {
	Row   int
	X     float64
	Time  time.Time
	Label string
	Y     float64
}

type Series struct {
	Name   string
	Mode   string
	Points []Point
}

type Legend struct {
	Orientation string
	XAnchor     string
	YAnchor     string
	X, Y        float64
}

// Figure is a renderer-neutral scatter chart.
type Figure struct {
	Width, Height int
	XTitle        string
	YTitle        string
	XKind         XKind
	Categories    []string
	Legend        Legend
	Series        []Series
}

// Points returns the total number of samples across all series.
func (f *Figure) Points() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

// BuildScatter draws one marker series per y column over the selected rows.
// Rows with a missing x, or a missing or non-numeric y, are left out.
func BuildScatter(t *dataset.Table, opts display.Options) (*Figure, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	xi := t.Index(opts.XAxis)
	if xi < 0 {
		return nil, fmt.Errorf("%w: x axis %q", ErrUnknownColumn, opts.XAxis)
	}
	yis := make([]int, len(opts.YAxis))
	for i, name := range opts.YAxis {
		yis[i] = t.Index(name)
		if yis[i] < 0 {
			return nil, fmt.Errorf("%w: y axis %q", ErrUnknownColumn, name)
		}
	}

	rows := opts.Rows(t.NumRows())
	xs := newXScale(t, xi, rows)

	fig := &Figure{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		XTitle:     opts.XAxis,
		XKind:      xs.kind,
		Categories: xs.categories,
		Legend: Legend{
			Orientation: "h",
			XAnchor:     "right",
			YAnchor:     "bottom",
			X:           1,
			Y:           1.02,
		},
	}
	if len(opts.YAxis) == 1 {
		fig.YTitle = opts.YAxis[0]
	}

	for i, yi := range yis {
		s := Series{Name: opts.YAxis[i], Mode: "markers"}
		dropped := 0
		for _, r := range rows {
			p, ok := xs.point(r)
			if !ok {
				dropped++
				continue
			}
			y, ok := t.Float(r, yi)
			if !ok {
				dropped++
				continue
			}
			p.Y = y
			s.Points = append(s.Points, p)
		}
		if dropped > 0 {
			logging.Debugf("series %q: dropped %d of %d rows with missing values", s.Name, dropped, len(rows))
		}
		fig.Series = append(fig.Series, s)
	}
	return fig, nil
}

// xScale maps rows of the x column onto axis positions.
type xScale struct {
	t          *dataset.Table
	col        int
	kind       XKind
	layout     string
	categories []string
	ordinal    map[string]int
}

func newXScale(t *dataset.Table, col int, rows []int) *xScale {
	xs := &xScale{t: t, col: col, kind: XNumeric}

	var vals []string
	numeric := true
	for _, r := range rows {
		v := t.Cell(r, col)
		if dataset.IsMissing(v) {
			continue
		}
		vals = append(vals, strings.TrimSpace(v))
		if numeric {
			if _, ok := dataset.ParseFloat(v); !ok {
				numeric = false
			}
		}
	}
	if numeric {
		return xs
	}

	for _, layout := range timeLayouts {
		if parsesAll(layout, vals) {
			xs.kind = XTime
			xs.layout = layout
			return xs
		}
	}

	xs.kind = XCategory
	xs.ordinal = make(map[string]int)
	for _, v := range vals {
		if _, seen := xs.ordinal[v]; !seen {
			xs.ordinal[v] = len(xs.categories)
			xs.categories = append(xs.categories, v)
		}
	}
	return xs
}

func parsesAll(layout string, vals []string) bool {
	for _, v := range vals {
		if _, err := time.Parse(layout, v); err != nil {
			return false
		}
	}
	return true
}

func (xs *xScale) point(row int) (Point, bool) {
	raw := xs.t.Cell(row, xs.col)
	if dataset.IsMissing(raw) {
		return Point{}, false
	}
	v := strings.TrimSpace(raw)
	p := Point{Row: row, Label: v}
	switch xs.kind {
	case XTime:
		ts, err := time.Parse(xs.layout, v)
		if err != nil {
			return Point{}, false
		}
		p.Time = ts
		// UnixNano overflows for clock-only layouts, which parse into year 0
		p.X = float64(ts.Unix()) + float64(ts.Nanosecond())/1e9
	case XCategory:
		p.X = float64(xs.ordinal[v])
	default:
		f, ok := dataset.ParseFloat(v)
		if !ok {
			return Point{}, false
		}
		p.X = f
	}
	return p, true
}
