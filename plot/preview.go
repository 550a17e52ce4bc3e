package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	drawille "github.com/chriskim06/drawille-go"
	"github.com/muesli/reflow/truncate"
)

var previewColors = []drawille.Color{drawille.Red, drawille.LightGray, drawille.DimGray, drawille.Black}

var dotStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250")),
}

// brailleDots[col][row] is the bit for one dot inside a braille cell.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// dotGrid is a width x height block of braille cells, 2x4 dots each.
// owner holds 1 + the index of the first series that lit the cell.
type dotGrid struct {
	width, height int
	bits          []uint8
	owner         []int
}

func (g *dotGrid) set(dx, dy, series int) {
	i := (dy/4)*g.width + dx/2
	g.bits[i] |= brailleDots[dx%2][dy%4]
	if g.owner[i] == 0 {
		g.owner[i] = series + 1
	}
}

func (g *dotGrid) cell(x, y int) uint8 { return g.bits[y*g.width+x] }

func (g *dotGrid) lines(styled bool) []string {
	out := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var b strings.Builder
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			if g.bits[i] == 0 {
				b.WriteByte(' ')
				continue
			}
			ch := string(rune(0x2800 + int(g.bits[i])))
			if styled {
				ch = dotStyles[(g.owner[i]-1)%len(dotStyles)].Render(ch)
			}
			b.WriteString(ch)
		}
		out[y] = b.String()
	}
	return out
}

type extent struct {
	minX, maxX, minY, maxY float64
	left, right            Point
}

func figureExtent(fig *Figure) (extent, bool) {
	var e extent
	found := false
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if !finite(p.X) || !finite(p.Y) {
				continue
			}
			if !found {
				e = extent{minX: p.X, maxX: p.X, minY: p.Y, maxY: p.Y, left: p, right: p}
				found = true
				continue
			}
			if p.X < e.minX {
				e.minX, e.left = p.X, p
			}
			if p.X > e.maxX {
				e.maxX, e.right = p.X, p
			}
			e.minY, e.maxY = math.Min(e.minY, p.Y), math.Max(e.maxY, p.Y)
		}
	}
	return e, found
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// scatterGrid places every sample at its (X, Y) position on a braille grid,
// largest y on the top row.
func scatterGrid(fig *Figure, e extent, width, height int) *dotGrid {
	g := &dotGrid{width: width, height: height, bits: make([]uint8, width*height), owner: make([]int, width*height)}
	dotsX, dotsY := 2*width-1, 4*height-1
	for si, s := range fig.Series {
		for _, p := range s.Points {
			if !finite(p.X) || !finite(p.Y) {
				continue
			}
			dx, dy := 0, dotsY
			if e.maxX > e.minX {
				dx = int(math.Round((p.X - e.minX) / (e.maxX - e.minX) * float64(dotsX)))
			}
			if e.maxY > e.minY {
				dy = int(math.Round((e.maxY - p.Y) / (e.maxY - e.minY) * float64(dotsY)))
			}
			g.set(dx, dy, si)
		}
	}
	return g
}

// Preview draws the figure as a braille scatter of y against x, with the y
// range on the left and the first and last x labels underneath. It returns
// "" when there is nothing to draw.
func Preview(fig *Figure, width, height int) string {
	if fig == nil || width <= 0 || height <= 0 {
		return ""
	}
	e, ok := figureExtent(fig)
	if !ok {
		return ""
	}

	top := strconv.FormatFloat(e.maxY, 'g', 5, 64)
	bottom := strconv.FormatFloat(e.minY, 'g', 5, 64)
	gutter := max(len(top), len(bottom)) + 1
	plotW, plotH := width-gutter, height-1
	if plotW < 2 || plotH < 1 {
		return strings.Join(scatterGrid(fig, e, width, height).lines(true), "\n")
	}

	rows := scatterGrid(fig, e, plotW, plotH).lines(true)
	for i := range rows {
		label := ""
		switch i {
		case 0:
			label = top
		case len(rows) - 1:
			label = bottom
		}
		rows[i] = fmt.Sprintf("%*s ", gutter-1, label) + rows[i]
	}
	left, right := e.left.Label, e.right.Label
	pad := plotW - len([]rune(left)) - len([]rune(right))
	if pad < 1 {
		right, pad = "", plotW-len([]rune(left))
	}
	axis := strings.Repeat(" ", gutter) + left + strings.Repeat(" ", max(pad, 0)) + right
	rows = append(rows, truncate.String(axis, uint(width)))
	return strings.Join(rows, "\n")
}

// Trend draws each series' y values in sample order, ignoring x.
func Trend(fig *Figure, width, height int) string {
	if fig == nil || width <= 0 || height <= 0 {
		return ""
	}
	var data [][]float64
	var colors []drawille.Color
	longest := 0
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			ys[j] = p.Y
		}
		if len(ys) > longest {
			longest = len(ys)
		}
		data = append(data, ys)
		colors = append(colors, previewColors[i%len(previewColors)])
	}
	if len(data) == 0 {
		return ""
	}
	if longest < 2 {
		longest = 2
	}

	c := drawille.NewCanvas(width, height)
	c.NumDataPoints = longest
	c.ShowAxis = false
	c.LineColors = colors
	c.Fill(data)
	return c.String()
}

// TrackPreview plots valid track points on a width x height character grid.
// The first fix is marked S and the last E.
func TrackPreview(tr *Track, width, height int) string {
	if tr == nil || width <= 0 || height <= 0 {
		return ""
	}
	var pts []TrackPoint
	for _, p := range tr.Points {
		if p.Valid {
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return ""
	}

	minLon, maxLon := pts[0].Lon, pts[0].Lon
	minLat, maxLat := pts[0].Lat, pts[0].Lat
	for _, p := range pts[1:] {
		minLon, maxLon = math.Min(minLon, p.Lon), math.Max(maxLon, p.Lon)
		minLat, maxLat = math.Min(minLat, p.Lat), math.Max(maxLat, p.Lat)
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}
	cell := func(p TrackPoint) (int, int) {
		x, y := 0, height-1
		if maxLon > minLon {
			x = int(math.Round((p.Lon - minLon) / (maxLon - minLon) * float64(width-1)))
		}
		if maxLat > minLat {
			// north is up
			y = int(math.Round((maxLat - p.Lat) / (maxLat - minLat) * float64(height-1)))
		}
		return x, y
	}
	for _, p := range pts {
		x, y := cell(p)
		grid[y][x] = '•'
	}
	x, y := cell(pts[len(pts)-1])
	grid[y][x] = 'E'
	x, y = cell(pts[0])
	grid[y][x] = 'S'

	lines := make([]string, height)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return strings.Join(lines, "\n")
}
