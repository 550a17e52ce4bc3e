package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/andareed/dynonview/logging"
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
}

// maxCategoryTicks caps labelled ticks on a categorical x axis.
const maxCategoryTicks = 12

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// RenderPNG writes the figure as a PNG scatter chart. Empty series are
// skipped; a figure with nothing to draw becomes a blank image with a hint.
func RenderPNG(w io.Writer, fig *Figure) error {
	width, height := size(fig.Width, fig.Height)

	var series []chart.Series
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			logging.Debugf("skipping empty series %q", s.Name)
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
		st := pointStyle(palette[i%len(palette)])
		if len(s.Points) == 1 {
			st.DotWidth = 6
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: st})
	}
	if len(series) == 0 {
		return writeBlank(w, width, height, "No data points in the selected range")
	}

	xAxis := chart.XAxis{Name: fig.XTitle, Range: paddedRange(minX, maxX)}
	switch fig.XKind {
	case XTime:
		xAxis.ValueFormatter = timeFormatter(maxX - minX)
	case XCategory:
		xAxis.Ticks = categoryTicks(fig.Categories, minX, maxX)
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: fig.YTitle, Range: paddedRange(minY, maxY)},
		Series:     series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		logging.Warnf("scatter render error: %v; writing blank fallback", err)
		return writeBlank(w, width, height, "Chart could not be drawn: "+err.Error())
	}
	return nil
}

// RenderTrackPNG draws the valid track points on a lon/lat plane. The ranges
// are widened so one degree of longitude and latitude cover similar ground.
func RenderTrackPNG(w io.Writer, tr *Track, width, height int) error {
	width, height = size(width, height)

	var xs, ys []float64
	for _, p := range tr.Points {
		if !p.Valid {
			continue
		}
		xs = append(xs, p.Lon)
		ys = append(ys, p.Lat)
	}
	if len(xs) == 0 {
		return writeBlank(w, width, height, "No position fixes in the selected range")
	}

	lonR, latR := trackBounds(xs, ys, width, height)
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Longitude", Range: lonR},
		YAxis:      chart.YAxis{Name: "Latitude", Range: latR},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Track", XValues: xs, YValues: ys, Style: pointStyle(chart.ColorRed)},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		logging.Warnf("track render error: %v; writing blank fallback", err)
		return writeBlank(w, width, height, "Track could not be drawn: "+err.Error())
	}
	return nil
}

func size(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// paddedRange keeps the axis range non-zero when every value is equal.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if hi <= lo {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 1
		}
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func trackBounds(xs, ys []float64, width, height int) (*chart.ContinuousRange, *chart.ContinuousRange) {
	minLon, maxLon := minMax(xs)
	minLat, maxLat := minMax(ys)

	midLat := (minLat + maxLat) / 2
	scale := math.Cos(midLat * math.Pi / 180)
	if scale < 0.01 {
		scale = 0.01
	}
	lonSpan := (maxLon - minLon) * scale
	latSpan := maxLat - minLat
	if lonSpan == 0 && latSpan == 0 {
		lonSpan, latSpan = 0.001, 0.001
	}

	aspect := float64(width) / float64(height)
	if lonSpan/latSpan < aspect {
		lonSpan = latSpan * aspect
	} else {
		latSpan = lonSpan / aspect
	}
	midLon := (minLon + maxLon) / 2
	halfLon := lonSpan / scale / 2
	return &chart.ContinuousRange{Min: midLon - halfLon, Max: midLon + halfLon},
		&chart.ContinuousRange{Min: midLat - latSpan/2, Max: midLat + latSpan/2}
}

func minMax(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

// timeFormatter labels Unix-second x values, with the date only when the
// data spans more than a day.
func timeFormatter(span float64) chart.ValueFormatter {
	layout := "15:04:05"
	if span > 24*60*60 {
		layout = "2006-01-02 15:04"
	}
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v)
		}
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(layout)
	}
}

func categoryTicks(cats []string, minX, maxX float64) []chart.Tick {
	if len(cats) == 0 {
		return nil
	}
	step := (len(cats) + maxCategoryTicks - 1) / maxCategoryTicks
	var ticks []chart.Tick
	for i := 0; i < len(cats); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: cats[i]})
	}
	if maxX <= minX {
		// a lone category still needs two ticks for the axis
		ticks = append(ticks, chart.Tick{Value: maxX + 1, Label: ""})
	}
	return ticks
}

func writeBlank(w io.Writer, width, height int, hint string) error {
	return png.Encode(w, drawHint(blank(width, height), hint))
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}

// drawHint writes text near the bottom-left corner of img.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Max.Y - 8)},
	}
	dr.DrawString(text)
	return rgba
}
