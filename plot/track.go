package plot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andareed/dynonview/dataset"
)

var ErrNoCoordinates = errors.New("no coordinate columns")

const (
	LongitudeColumn = "Longitude (deg)"
	LatitudeColumn  = "Latitude (deg)"
)

type TrackPoint struct {
	Lon, Lat float64
	Valid    bool
}

// Track is the map view of a table. Data is the input with the coordinate
// columns renamed to "lon" and "lat"; Points holds one entry per row.
type Track struct {
	Data   *dataset.Table
	Points []TrackPoint
}

// ValidPoints counts rows with both coordinates present.
func (tr *Track) ValidPoints() int {
	n := 0
	for _, p := range tr.Points {
		if p.Valid {
			n++
		}
	}
	return n
}

// BuildTrack passes every row through, including rows without a fix.
func BuildTrack(t *dataset.Table) (*Track, error) {
	loni := t.Index(LongitudeColumn)
	lati := t.Index(LatitudeColumn)
	if loni < 0 || lati < 0 {
		var missing []string
		if loni < 0 {
			missing = append(missing, LongitudeColumn)
		}
		if lati < 0 {
			missing = append(missing, LatitudeColumn)
		}
		return nil, fmt.Errorf("%w: missing %s", ErrNoCoordinates, strings.Join(missing, ", "))
	}

	cols := make([]dataset.Column, t.NumCols())
	for i, c := range t.Columns {
		name := c.Name
		switch i {
		case loni:
			name = "lon"
		case lati:
			name = "lat"
		}
		cols[i] = dataset.Column{Name: name, Cells: c.Cells}
	}

	tr := &Track{
		Data:   dataset.NewTable(cols),
		Points: make([]TrackPoint, t.NumRows()),
	}
	for r := range tr.Points {
		lon, okLon := t.Float(r, loni)
		lat, okLat := t.Float(r, lati)
		tr.Points[r] = TrackPoint{Lon: lon, Lat: lat, Valid: okLon && okLat}
	}
	return tr, nil
}
