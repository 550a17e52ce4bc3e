package plot

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/andareed/dynonview/display"
)

func decodeSize(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderPNG(t *testing.T) {
	fig, err := BuildScatter(flightTable(50), display.Options{MaxID: 49, SampleRate: 1, XAxis: "Time", YAxis: []string{"Altitude", "Speed"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fig.Width, fig.Height = 640, 320

	var buf bytes.Buffer
	if err := RenderPNG(&buf, fig); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w, h := decodeSize(t, &buf); w != 640 || h != 320 {
		t.Fatalf("image = %dx%d, want 640x320", w, h)
	}
}

func TestRenderPNGSinglePointAndEmpty(t *testing.T) {
	one := &Figure{XTitle: "x", Series: []Series{{Name: "y", Points: []Point{{X: 1, Y: 2}}}, {Name: "empty"}}}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, one); err != nil {
		t.Fatalf("render single point: %v", err)
	}
	if w, h := decodeSize(t, &buf); w != DefaultWidth || h != DefaultHeight {
		t.Fatalf("image = %dx%d", w, h)
	}

	buf.Reset()
	if err := RenderPNG(&buf, &Figure{Width: 200, Height: 100, Series: []Series{{Name: "y"}}}); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if w, h := decodeSize(t, &buf); w != 200 || h != 100 {
		t.Fatalf("blank image = %dx%d", w, h)
	}
}

func TestRenderTrackPNG(t *testing.T) {
	tr, err := BuildTrack(flightTable(20))
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderTrackPNG(&buf, tr, 400, 400); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w, h := decodeSize(t, &buf); w != 400 || h != 400 {
		t.Fatalf("image = %dx%d", w, h)
	}
}

func TestTrackPreview(t *testing.T) {
	tr := &Track{Points: []TrackPoint{
		{Lon: 0, Lat: 0, Valid: true},
		{Valid: false},
		{Lon: 1, Lat: 1, Valid: true},
		{Lon: 2, Lat: 2, Valid: true},
	}}
	out := TrackPreview(tr, 5, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[2][0] != 'S' {
		t.Fatalf("start should be bottom-left:\n%s", out)
	}
	if lines[0][4] != 'E' {
		t.Fatalf("end should be top-right:\n%s", out)
	}
	if TrackPreview(&Track{}, 5, 3) != "" {
		t.Fatalf("expected empty preview without fixes")
	}
}

func TestPreviewEmpty(t *testing.T) {
	if Preview(&Figure{Series: []Series{{Name: "y"}}}, 40, 10) != "" {
		t.Fatalf("expected empty preview")
	}
	if Preview(nil, 40, 10) != "" {
		t.Fatalf("expected empty preview for nil figure")
	}
	if Trend(&Figure{Series: []Series{{Name: "y"}}}, 40, 3) != "" {
		t.Fatalf("expected empty trend")
	}
}

func xyFigure(xs, ys []float64) *Figure {
	s := Series{Name: "y"}
	for i := range xs {
		s.Points = append(s.Points, Point{Row: i, X: xs[i], Y: ys[i], Label: fmt.Sprint(xs[i])})
	}
	return &Figure{Series: []Series{s}}
}

func TestScatterGridPlacesPointsByX(t *testing.T) {
	ys := []float64{1, 5, 2, 4}
	sorted := xyFigure([]float64{0, 1, 2, 3}, ys)
	shuffled := xyFigure([]float64{3, 0, 2, 1}, ys)

	grid := func(fig *Figure) *dotGrid {
		e, ok := figureExtent(fig)
		if !ok {
			t.Fatalf("no extent")
		}
		return scatterGrid(fig, e, 4, 2)
	}
	a := strings.Join(grid(sorted).lines(false), "\n")
	b := strings.Join(grid(shuffled).lines(false), "\n")
	if a == b {
		t.Fatalf("x order had no effect on the scatter:\n%s", a)
	}

	// shuffled has (0, 5) at min x max y and (3, 1) at max x min y
	g := grid(shuffled)
	if g.cell(0, 0)&brailleDots[0][0] == 0 {
		t.Fatalf("max y at min x not in the top-left dot:\n%s", b)
	}
	if g.cell(3, 1)&brailleDots[1][3] == 0 {
		t.Fatalf("min y at max x not in the bottom-right dot:\n%s", b)
	}
}

func TestPreviewLabelsAndSize(t *testing.T) {
	fig := xyFigure([]float64{10, 20, 30}, []float64{100, 300, 200})
	out := Preview(fig, 30, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "300 ") || !strings.HasPrefix(lines[4], "100 ") {
		t.Fatalf("y labels missing:\n%s", out)
	}
	axis := lines[5]
	if !strings.Contains(axis, "10") || !strings.HasSuffix(axis, "30") {
		t.Fatalf("x labels = %q", axis)
	}
	if Trend(fig, 30, 3) == "" {
		t.Fatalf("expected a trend strip")
	}
}
