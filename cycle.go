package main

import (
	"errors"
	"fmt"

	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/display"
	"github.com/andareed/dynonview/logging"
	"github.com/andareed/dynonview/plot"
)

// cycleResult is everything one pass over the table produces for the views.
type cycleResult struct {
	opts     display.Options
	warnings []string
	selected int

	figure *plot.Figure
	raw    *dataset.Table
	track  *plot.Track
}

// runCycle recomputes the display options from the sidebar and rebuilds
// each enabled view. A failing view adds a warning; the others still render.
func runCycle(t *dataset.Table, sb *sidebar) cycleResult {
	if t == nil {
		return cycleResult{}
	}

	opts, warnings := sb.Collect(t)
	res := cycleResult{opts: opts, warnings: warnings}
	if t.NumCols() == 0 {
		return res
	}

	rows := opts.Rows(t.NumRows())
	res.selected = len(rows)
	logging.Debugf("cycle: %d rows selected [%d:%d:%d] x=%q y=%v", len(rows), opts.MinID, opts.MaxID, opts.SampleRate, opts.XAxis, opts.YAxis)

	if opts.ShowPlot {
		fig, err := plot.BuildScatter(t, opts)
		if err != nil {
			res.warn("Plot", err)
		} else {
			res.figure = fig
		}
	}

	if opts.ShowRawData {
		raw, err := display.Slice(t, rows, opts.Columns())
		if err != nil {
			res.warn("Data", err)
		} else {
			res.raw = raw
		}
	}

	if opts.ShowTrack {
		res.track = buildTrack(t, rows, &res)
	}
	return res
}

func buildTrack(t *dataset.Table, rows []int, res *cycleResult) *plot.Track {
	sliced, err := display.Slice(t, rows, nil)
	if err != nil {
		res.warn("Track", err)
		return nil
	}
	tr, err := plot.BuildTrack(sliced)
	if err != nil {
		if errors.Is(err, plot.ErrNoCoordinates) {
			logging.Infof("track skipped: %v", err)
		}
		res.warn("Track", err)
		return nil
	}
	return tr
}

func (r *cycleResult) warn(view string, err error) {
	logging.Warnf("%s view: %v", view, err)
	r.warnings = append(r.warnings, fmt.Sprintf("%s: %v", view, err))
}
