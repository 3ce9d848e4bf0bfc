package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"sketchboard/internal/scene"
)

// wide marks the cell taken by the right half of a double-width rune.
const wide rune = 0

// Grid is a fixed-size block of terminal cells.
type Grid struct {
	cells [][]rune
}

// NewGrid returns a blank grid. Sizes below one are raised to one.
func NewGrid(width, height int) *Grid {
	width = max(width, 1)
	height = max(height, 1)
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}
	return &Grid{cells: cells}
}

func (g *Grid) Width() int  { return len(g.cells[0]) }
func (g *Grid) Height() int { return len(g.cells) }

// Set writes r at (x, y); out-of-range writes are dropped.
func (g *Grid) Set(x, y int, r rune) {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return
	}
	g.cells[y][x] = r
}

// At returns the rune at (x, y), or a space outside the grid.
func (g *Grid) At(x, y int) rune {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return ' '
	}
	return g.cells[y][x]
}

// Text writes s starting at (x, y). Double-width runes take two cells.
func (g *Grid) Text(x, y int, s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.Set(x, y, r)
		if w == 2 {
			g.Set(x+1, y, wide)
		}
		x += w
	}
}

// Lines returns the grid rows as strings.
func (g *Grid) Lines() []string {
	out := make([]string, len(g.cells))
	var b strings.Builder
	for y, row := range g.cells {
		b.Reset()
		for _, r := range row {
			if r != wide {
				b.WriteRune(r)
			}
		}
		out[y] = b.String()
	}
	return out
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Render draws the part of s currently in view into a width x height grid.
func Render(s *scene.Surface, width, height int, opts ...Option) *Grid {
	o := newOptions(opts)
	g := NewGrid(width, height)
	for _, obj := range o.drawable(s) {
		drawCells(g, s, obj, o.selected[obj.ID()])
	}
	return g
}

// WriteText renders the current view of s into filename, one row per line.
func WriteText(s *scene.Surface, filename string, width, height int, opts ...Option) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range Render(s, width, height, opts...).Lines() {
		if _, err := fmt.Fprintln(file, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func screen(s *scene.Surface, x, y float64) (int, int) {
	sx, sy := s.SceneToScreen(x, y)
	return int(math.Round(sx)), int(math.Round(sy))
}

func drawCells(g *Grid, s *scene.Surface, obj *scene.Object, selected bool) {
	p := obj.Props()
	switch obj.Kind() {
	case scene.KindRect, scene.KindImage:
		r := obj.Coords()
		x0, y0 := screen(s, r.MinX, r.MinY)
		x1, y1 := screen(s, r.MaxX, r.MaxY)
		drawBoxCells(g, x0, y0, max(x1-x0, 1), max(y1-y0, 1), selected)
		if obj.Kind() == scene.KindImage {
			g.Text(x0+1, y0+1, "img")
		}
	case scene.KindCircle:
		r := obj.Coords()
		x0, y0 := s.SceneToScreen(r.MinX, r.MinY)
		x1, y1 := s.SceneToScreen(r.MaxX, r.MaxY)
		drawEllipseCells(g, (x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2, pick(selected, 'o'))
	case scene.KindText:
		left, _ := p.Float("left")
		top, _ := p.Float("top")
		x, y := screen(s, left, top)
		text, _ := p.String("text")
		for i, line := range strings.Split(text, "\n") {
			g.Text(x, y+i, line)
		}
	case scene.KindLine, scene.KindMeasure:
		x1f, _ := p.Float("x1")
		y1f, _ := p.Float("y1")
		x2f, _ := p.Float("x2")
		y2f, _ := p.Float("y2")
		x1, y1 := screen(s, x1f, y1f)
		x2, y2 := screen(s, x2f, y2f)
		drawLineCells(g, x1, y1, x2, y2, func(dx, dy int) rune { return pick(selected, lineRune(dx, dy)) })
		if arrow, _ := p.Bool("arrowHead"); arrow {
			g.Set(x2, y2, arrowRune(x2-x1, y2-y1))
		}
		if obj.Kind() == scene.KindMeasure {
			g.Set(x1, y1, '|')
			g.Set(x2, y2, '|')
			label := measureLabel(x1f, y1f, x2f, y2f)
			g.Text((x1+x2)/2-runewidth.StringWidth(label)/2, (y1+y2)/2-1, label)
		}
	case scene.KindPath:
		pts, _ := p.Points("points")
		for i := 0; i+3 < len(pts); i += 2 {
			ax, ay := screen(s, pts[i], pts[i+1])
			bx, by := screen(s, pts[i+2], pts[i+3])
			drawLineCells(g, ax, ay, bx, by, func(int, int) rune { return pick(selected, '.') })
		}
		if len(pts) == 2 {
			x, y := screen(s, pts[0], pts[1])
			g.Set(x, y, pick(selected, '.'))
		}
	}
}

func pick(selected bool, r rune) rune {
	if selected {
		return '#'
	}
	return r
}

func drawBoxCells(g *Grid, x0, y0, w, h int, selected bool) {
	corner, horizontal, vertical := '+', '-', '|'
	if selected {
		corner, horizontal, vertical = '#', '#', '#'
	}
	x1, y1 := x0+w-1, y0+h-1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				g.Set(x, y, corner)
			case y == y0 || y == y1:
				g.Set(x, y, horizontal)
			case x == x0 || x == x1:
				g.Set(x, y, vertical)
			}
		}
	}
}

func drawEllipseCells(g *Grid, cx, cy, rx, ry float64, r rune) {
	steps := max(16, int(4*math.Pi*max(rx, ry)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		g.Set(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))), r)
	}
}

// drawLineCells plots a Bresenham line. glyph receives the overall direction.
func drawLineCells(g *Grid, x0, y0, x1, y1 int, glyph func(dx, dy int) rune) {
	r := glyph(x1-x0, y1-y0)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		g.Set(x0, y0, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '-'
	case dx == 0:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	}
	return '/'
}

func arrowRune(dx, dy int) rune {
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return '<'
		}
		return '>'
	}
	if dy < 0 {
		return '^'
	}
	return 'v'
}

func measureLabel(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("%.1f", math.Hypot(x2-x1, y2-y1))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
