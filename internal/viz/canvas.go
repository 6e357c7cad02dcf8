package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type label struct {
	row, col int
	text     string
	alpha    float64
}

// Caption is text pinned on top of the canvas that survives Clear.
type Caption struct {
	Row, Col int
	Text     string
	Style    lipgloss.Style
}

// Canvas is a braille pixel grid. Each cell also remembers the brightest
// alpha drawn into it, which Render turns into a color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Level         [][]float64

	labels   []label
	captions []Caption
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Level:  make([][]float64, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Level[i] = make([]float64, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
func (c *Canvas) Set(x, y int) {
	c.Plot(x, y, 1)
}

// Plot sets a sub-pixel and raises the cell level to alpha.
func (c *Canvas) Plot(x, y int, alpha float64) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if alpha > c.Level[row][col] {
		c.Level[row][col] = alpha
	}
}

// Clear resets pixels, levels and labels. Captions are kept.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Level[i][j] = 0
		}
	}
	c.labels = c.labels[:0]
}

// DrawLineAlpha draws a dithered line: fainter lines plot fewer pixels.
func (c *Canvas) DrawLineAlpha(x0, y0, x1, y1 int, alpha float64) {
	stride := 1
	switch {
	case alpha < 0.33:
		stride = 3
	case alpha < 0.66:
		stride = 2
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for i := 0; ; i++ {
		if i%stride == 0 {
			c.Plot(x0, y0, alpha)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle plots every sub-pixel within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int, alpha float64) {
	if r <= 0 {
		c.Plot(cx, cy, alpha)
		return
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Plot(cx+x, cy+y, alpha)
			}
		}
	}
}

// PutLabel centres text on a cell. Labels are dropped by Clear.
func (c *Canvas) PutLabel(col, row int, text string, alpha float64) {
	c.labels = append(c.labels, label{row: row, col: col - len([]rune(text))/2, text: text, alpha: alpha})
}

// Dots calls fn for every lit sub-pixel, row by row, with its cell level.
func (c *Canvas) Dots(fn func(x, y int, level float64)) {
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if r <= blank {
				continue
			}
			bits := int(r - blank)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if bits&pixelMap[dy][dx] != 0 {
						fn(col*2+dx, row*4+dy, c.Level[row][col])
					}
				}
			}
		}
	}
}

func (c *Canvas) SetCaptions(caps ...Caption) { c.captions = append(c.captions[:0], caps...) }

// cell classes used while composing rows
const (
	classEmpty = iota
	classDim
	classMid
	classBright
	classLabel
	classCaption
)

type cell struct {
	r       rune
	class   int
	caption int
}

func levelClass(a float64) int {
	switch {
	case a <= 0:
		return classEmpty
	case a < 0.34:
		return classDim
	case a < 0.67:
		return classMid
	default:
		return classBright
	}
}

func (c *Canvas) compose() [][]cell {
	rows := make([][]cell, c.Height)
	for y := range rows {
		rows[y] = make([]cell, c.Width)
		for x := range rows[y] {
			rows[y][x] = cell{r: c.Grid[y][x], class: levelClass(c.Level[y][x])}
		}
	}
	for _, l := range c.labels {
		if l.row < 0 || l.row >= c.Height {
			continue
		}
		for i, r := range []rune(l.text) {
			x := l.col + i
			if x < 0 || x >= c.Width {
				continue
			}
			rows[l.row][x] = cell{r: r, class: classLabel}
		}
	}
	for ci, cp := range c.captions {
		if cp.Row < 0 || cp.Row >= c.Height {
			continue
		}
		for i, r := range []rune(cp.Text) {
			x := cp.Col + i
			if x < 0 || x >= c.Width {
				continue
			}
			rows[cp.Row][x] = cell{r: r, class: classCaption, caption: ci}
		}
	}
	return rows
}

// String returns the canvas without colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.compose() {
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render returns the canvas colored with the theme, one styled run per
// stretch of identically classed cells.
func (c *Canvas) Render(t Theme) string {
	styles := [...]lipgloss.Style{
		classEmpty:  lipgloss.NewStyle().Foreground(t.Muted),
		classDim:    lipgloss.NewStyle().Foreground(t.Link),
		classMid:    lipgloss.NewStyle().Foreground(t.Node),
		classBright: lipgloss.NewStyle().Foreground(t.Text),
		classLabel:  lipgloss.NewStyle().Foreground(t.Label),
	}

	var b strings.Builder
	rows := c.compose()
	for y, row := range rows {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].class == row[start].class && row[x].caption == row[start].caption {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			first := row[start]
			if first.class == classCaption {
				b.WriteString(c.captions[first.caption].Style.Render(string(run)))
			} else {
				b.WriteString(styles[first.class].Render(string(run)))
			}
			start = x
		}
		if y < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
