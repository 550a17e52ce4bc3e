package plot

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/display"
)

// flightTable builds n rows of Time, Altitude, Longitude, Latitude, Speed.
// Every seventh altitude is missing.
func flightTable(n int) *dataset.Table {
	cols := []dataset.Column{
		{Name: "Time"}, {Name: "Altitude"}, {Name: LongitudeColumn}, {Name: LatitudeColumn}, {Name: "Speed"},
	}
	for i := 0; i < n; i++ {
		alt := fmt.Sprintf("%d", 1000+i)
		if i%7 == 3 {
			alt = ""
		}
		cols[0].Cells = append(cols[0].Cells, fmt.Sprintf("2023-05-01T10:%02d:%02d", i/60, i%60))
		cols[1].Cells = append(cols[1].Cells, alt)
		cols[2].Cells = append(cols[2].Cells, fmt.Sprintf("%.4f", -122.0+float64(i)*0.001))
		cols[3].Cells = append(cols[3].Cells, fmt.Sprintf("%.4f", 47.0+float64(i)*0.001))
		cols[4].Cells = append(cols[4].Cells, fmt.Sprintf("%d", 90+i%10))
	}
	return dataset.NewTable(cols)
}

func TestBuildScatterScenario(t *testing.T) {
	tbl := flightTable(200)
	opts := display.Options{ShowPlot: true, MinID: 0, MaxID: 100, SampleRate: 10, XAxis: "Time", YAxis: []string{"Speed"}}

	fig, err := BuildScatter(tbl, opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(fig.Series) != 1 {
		t.Fatalf("series = %d, want 1", len(fig.Series))
	}
	var rows []int
	for _, p := range fig.Series[0].Points {
		rows = append(rows, p.Row)
	}
	if want := []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}; !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	if fig.Points() != 11 {
		t.Fatalf("Points() = %d, want 11", fig.Points())
	}
	if fig.YTitle != "Speed" || fig.XTitle != "Time" {
		t.Fatalf("titles = %q/%q", fig.XTitle, fig.YTitle)
	}
	if fig.XKind != XTime {
		t.Fatalf("x kind = %v, want time", fig.XKind)
	}
	if fig.Width != 1000 || fig.Height != 500 {
		t.Fatalf("size = %dx%d", fig.Width, fig.Height)
	}
	want := Legend{Orientation: "h", XAnchor: "right", YAnchor: "bottom", X: 1, Y: 1.02}
	if fig.Legend != want {
		t.Fatalf("legend = %+v", fig.Legend)
	}
}

func TestBuildScatterAltitudeScenario(t *testing.T) {
	tbl := dataset.NewTable([]dataset.Column{
		{Name: "Time", Cells: seq(200, "t%03d")},
		{Name: "Altitude", Cells: seq(200, "%d")},
		{Name: LongitudeColumn, Cells: seq(200, "-122.%03d")},
		{Name: LatitudeColumn, Cells: seq(200, "47.%03d")},
		{Name: "Speed", Cells: seq(200, "%d")},
	})
	opts := display.Options{ShowPlot: true, MinID: 0, MaxID: 100, SampleRate: 10, XAxis: "Time", YAxis: []string{"Altitude"}}

	fig, err := BuildScatter(tbl, opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if n := len(fig.Series[0].Points); n != 11 {
		t.Fatalf("points = %d, want 11", n)
	}
	if fig.YTitle != "Altitude" {
		t.Fatalf("y title = %q, want Altitude", fig.YTitle)
	}
	if fig.XKind != XCategory || len(fig.Categories) != 11 {
		t.Fatalf("x kind = %v with %d categories", fig.XKind, len(fig.Categories))
	}
}

func seq(n int, format string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf(format, i)
	}
	return out
}

func TestBuildScatterNeverEmitsMissing(t *testing.T) {
	tbl := flightTable(60)
	tbl.Columns[0].Cells[20] = "NA"
	tbl.Columns[4].Cells[21] = "fast"

	for _, x := range tbl.Names() {
		for _, y := range tbl.Names() {
			opts := display.Options{MinID: 0, MaxID: 59, SampleRate: 1, XAxis: x, YAxis: []string{y}}
			fig, err := BuildScatter(tbl, opts)
			if err != nil {
				t.Fatalf("%s/%s: %v", x, y, err)
			}
			xi, yi := tbl.Index(x), tbl.Index(y)
			for _, p := range fig.Series[0].Points {
				if tbl.Missing(p.Row, xi) || tbl.Missing(p.Row, yi) {
					t.Fatalf("%s/%s: row %d has a missing value", x, y, p.Row)
				}
				if _, ok := tbl.Float(p.Row, yi); !ok {
					t.Fatalf("%s/%s: row %d y is not numeric", x, y, p.Row)
				}
			}
		}
	}

	fig, err := BuildScatter(tbl, display.Options{MinID: 0, MaxID: 59, SampleRate: 1, XAxis: "Time", YAxis: []string{"Altitude"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, p := range fig.Series[0].Points {
		if p.Row == 3 || p.Row == 20 {
			t.Fatalf("row %d should have been dropped", p.Row)
		}
	}
}

func TestBuildScatterYTitleOnlyForSingleSeries(t *testing.T) {
	tbl := flightTable(30)
	for n := 1; n <= 4; n++ {
		ys := []string{"Altitude", "Speed", LatitudeColumn, LongitudeColumn}[:n]
		fig, err := BuildScatter(tbl, display.Options{MinID: 0, MaxID: 29, SampleRate: 1, XAxis: "Time", YAxis: ys, MultiY: n%2 == 0})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(fig.Series) != n {
			t.Fatalf("n=%d: series = %d", n, len(fig.Series))
		}
		for i, s := range fig.Series {
			if s.Name != ys[i] || s.Mode != "markers" {
				t.Fatalf("n=%d: series %d = %q/%q", n, i, s.Name, s.Mode)
			}
		}
		if n == 1 && fig.YTitle != "Altitude" {
			t.Fatalf("single series y title = %q", fig.YTitle)
		}
		if n > 1 && fig.YTitle != "" {
			t.Fatalf("n=%d: y title should be unset, got %q", n, fig.YTitle)
		}
	}
}

func TestBuildScatterErrors(t *testing.T) {
	tbl := flightTable(10)
	cases := []struct {
		opts display.Options
		want error
	}{
		{display.Options{MaxID: 5, SampleRate: 1, XAxis: "Nope", YAxis: []string{"Speed"}}, ErrUnknownColumn},
		{display.Options{MaxID: 5, SampleRate: 1, XAxis: "Time", YAxis: []string{"Nope"}}, ErrUnknownColumn},
		{display.Options{MaxID: 5, SampleRate: 0, XAxis: "Time", YAxis: []string{"Speed"}}, display.ErrInvalidOptions},
	}
	for i, tc := range cases {
		if _, err := BuildScatter(tbl, tc.opts); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestXKindDetection(t *testing.T) {
	cases := []struct {
		cells []string
		want  XKind
	}{
		{[]string{"1", "2.5", "", "-3"}, XNumeric},
		{[]string{"10:00:00", "10:00:01", "NA"}, XTime},
		{[]string{"2023-05-01 10:00:00", "2023-05-01 10:00:01"}, XTime},
		{[]string{"2023-05-01T10:00:00Z", "2023-05-01T10:00:01+02:00"}, XTime},
		{[]string{"taxi", "climb", "taxi"}, XCategory},
	}
	for _, tc := range cases {
		tbl := dataset.NewTable([]dataset.Column{
			{Name: "x", Cells: tc.cells},
			{Name: "y", Cells: seq(len(tc.cells), "%d")},
		})
		fig, err := BuildScatter(tbl, display.Options{MaxID: len(tc.cells), SampleRate: 1, XAxis: "x", YAxis: []string{"y"}})
		if err != nil {
			t.Fatalf("%v: %v", tc.cells, err)
		}
		if fig.XKind != tc.want {
			t.Fatalf("%v: kind = %v, want %v", tc.cells, fig.XKind, tc.want)
		}
	}
}

func TestTimeXFormatsBackToSourceLabel(t *testing.T) {
	for _, cells := range [][]string{
		{"10:00:00", "10:00:10", "10:00:20"},
		{"2023-05-01 23:59:50", "2023-05-02 00:00:05", "2023-05-02 00:00:20"},
	} {
		tbl := dataset.NewTable([]dataset.Column{
			{Name: "Time", Cells: cells},
			{Name: "Altitude", Cells: []string{"1500", "1510", "1520"}},
		})
		fig, err := BuildScatter(tbl, display.Options{MaxID: 2, SampleRate: 1, XAxis: "Time", YAxis: []string{"Altitude"}})
		if err != nil {
			t.Fatal(err)
		}
		pts := fig.Series[0].Points
		if len(pts) != 3 {
			t.Fatalf("points = %d, want 3", len(pts))
		}
		if d := pts[1].X - pts[0].X; d <= 0 || d > 15 {
			t.Fatalf("%v: x step = %v seconds", cells, d)
		}
		format := timeFormatter(pts[2].X - pts[0].X)
		for _, p := range pts {
			want := p.Label
			if len(want) > 8 {
				want = want[11:]
			}
			if got := format(p.X); got != want {
				t.Errorf("x %v formats as %q, want %q", p.X, got, want)
			}
		}
	}
}
