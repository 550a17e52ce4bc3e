package plot

import (
	"errors"
	"testing"

	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/display"
)

func TestBuildTrackScenario(t *testing.T) {
	tbl := flightTable(200)
	opts := display.Options{ShowTrack: true, MinID: 0, MaxID: 100, SampleRate: 10, XAxis: "Time", YAxis: []string{"Altitude"}}
	rows := opts.Rows(tbl.NumRows())
	sliced, err := display.Slice(tbl, rows, nil)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}

	tr, err := BuildTrack(sliced)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if len(tr.Points) != len(rows) || tr.Data.NumRows() != len(rows) {
		t.Fatalf("track rows = %d/%d, want %d", len(tr.Points), tr.Data.NumRows(), len(rows))
	}
	if tr.Data.Index("lon") != 2 || tr.Data.Index("lat") != 3 {
		t.Fatalf("columns not renamed: %v", tr.Data.Names())
	}
	if tr.Data.Index(LongitudeColumn) >= 0 || tr.Data.Index(LatitudeColumn) >= 0 {
		t.Fatalf("original coordinate names kept: %v", tr.Data.Names())
	}
	for i, r := range rows {
		lon, _ := tbl.Float(r, tbl.Index(LongitudeColumn))
		lat, _ := tbl.Float(r, tbl.Index(LatitudeColumn))
		if p := tr.Points[i]; !p.Valid || p.Lon != lon || p.Lat != lat {
			t.Fatalf("point %d = %+v, want %v,%v", i, p, lon, lat)
		}
	}
}

func TestBuildTrackKeepsMissingFixes(t *testing.T) {
	tbl := dataset.NewTable([]dataset.Column{
		{Name: LongitudeColumn, Cells: []string{"-122.1", "", "-122.3"}},
		{Name: LatitudeColumn, Cells: []string{"47.1", "47.2", "NaN"}},
	})
	tr, err := BuildTrack(tbl)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if len(tr.Points) != 3 || tr.ValidPoints() != 1 {
		t.Fatalf("points = %d valid = %d", len(tr.Points), tr.ValidPoints())
	}
}

func TestBuildTrackWithoutCoordinates(t *testing.T) {
	cases := [][]dataset.Column{
		{{Name: "Time", Cells: []string{"1"}}},
		{{Name: LongitudeColumn, Cells: []string{"1"}}},
		{{Name: LatitudeColumn, Cells: []string{"1"}}},
	}
	for i, cols := range cases {
		if _, err := BuildTrack(dataset.NewTable(cols)); !errors.Is(err, ErrNoCoordinates) {
			t.Fatalf("case %d: got %v, want ErrNoCoordinates", i, err)
		}
	}
}
