package viz

import (
	"math"
	"strings"

	"github.com/san-kum/griddlepan/internal/pan"
)

// Braille cells are 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) dots; anything outside is ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// DrawMinimap draws the content strip as a rail and the visible window as
// a box over it. offset is the applied translation (non-positive).
func (c *Canvas) DrawMinimap(b pan.Bounds, offset float64) {
	c.Clear()
	w, h := c.Width*2-1, c.Height*4-1
	if w <= 0 || h <= 0 || b.ContentWidth <= 0 {
		return
	}

	mid := h / 2
	c.DrawLine(0, mid, w, mid)

	if !isFinite(offset) {
		offset = 0
	}
	scale := float64(w) / b.ContentWidth
	x0 := int(math.Round(-offset * scale))
	x1 := int(math.Round((-offset + b.ContainerWidth) * scale))
	x1 = min(x1, w)

	c.DrawLine(x0, 0, x1, 0)
	c.DrawLine(x0, h, x1, h)
	c.DrawLine(x0, 0, x0, h)
	c.DrawLine(x1, 0, x1, h)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
