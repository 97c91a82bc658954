package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jominkmathew/neonfolio/internal/particle"
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

// MinAlpha is the visibility floor; fainter samples are not drawn.
const MinAlpha = 0.02

type cell struct {
	dots  rune
	color particle.Color
}

// Canvas is a braille pixel canvas. It implements particle.Surface in
// sub-pixel coordinates: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	// Gain multiplies incoming alpha before the visibility floor and
	// stippling are applied. Terminal cells have no transparency.
	Gain  float64
	grid  [][]cell
	cache map[string]lipgloss.Style
}

var _ particle.Surface = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Gain: 1, cache: make(map[string]lipgloss.Style)}
	c.alloc()
	return c
}

func (c *Canvas) alloc() {
	c.grid = make([][]cell, c.Height)
	for i := range c.grid {
		c.grid[i] = make([]cell, c.Width)
		for j := range c.grid[i] {
			c.grid[i][j].dots = blank
		}
	}
}

// Resize reallocates the grid; the contents are dropped.
func (c *Canvas) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Width, c.Height = w, h
	c.alloc()
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (float64, float64) {
	return float64(c.Width * 2), float64(c.Height * 4)
}

// Set lights the sub-pixel (x, y) with colour col. The brightest sample
// wins the cell colour.
func (c *Canvas) Set(x, y int, col particle.Color) {
	if x < 0 || y < 0 {
		return
	}
	row, colIdx := y/4, x/2
	if colIdx >= c.Width || row >= c.Height {
		return
	}
	ce := &c.grid[row][colIdx]
	ce.dots |= rune(pixelMap[y%4][x%2])
	if col.Alpha >= ce.color.Alpha {
		ce.color = col
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	row, colIdx := y/4, x/2
	if colIdx >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][colIdx].dots &^= rune(pixelMap[y%4][x%2])
	if c.grid[row][colIdx].dots < blank {
		c.grid[row][colIdx].dots = blank
	}
}

// Lit reports whether the sub-pixel is on.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.grid[y/4][x/2].dots&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = cell{dots: blank}
		}
	}
}

func (c *Canvas) visible(col particle.Color) (particle.Color, bool) {
	col.Alpha = math.Min(1, col.Alpha*c.Gain)
	return col, col.Alpha >= MinAlpha
}

// Circle fills a disc. Radii under one sub-pixel light a single dot.
func (c *Canvas) Circle(x, y, r float64, col particle.Color) {
	col, ok := c.visible(col)
	if !ok {
		return
	}
	cx, cy := int(math.Round(x)), int(math.Round(y))
	if r < 1 {
		c.Set(cx, cy, col)
		return
	}
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// Line draws a Bresenham line. Faint lines are stippled: every n-th dot is
// lit, with n growing as alpha drops.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col particle.Color) {
	col, ok := c.visible(col)
	if !ok {
		return
	}
	stride := int(math.Min(8, math.Max(1, math.Round(1/(col.Alpha*2)))))
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), stride, col)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1, stride int, col particle.Color) {
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

	for n := 0; ; n++ {
		if n%stride == 0 {
			c.Set(x0, y0, col)
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

// Plain renders the dots without colour.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.grid {
		for _, ce := range row {
			b.WriteRune(ce.dots)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		for _, ce := range row {
			if ce.dots == blank {
				b.WriteRune(ce.dots)
				continue
			}
			b.WriteString(c.style(ce.color).Render(string(ce.dots)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) style(col particle.Color) lipgloss.Style {
	hex := HSLA(col)
	if s, ok := c.cache[hex]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	c.cache[hex] = s
	return s
}

// HSLA flattens an HSLA sample onto a black background and returns the hex
// colour.
func HSLA(col particle.Color) string {
	fg := colorful.Hsl(col.Hue, col.Sat, col.Light)
	return colorful.Color{}.BlendRgb(fg, math.Max(0, math.Min(1, col.Alpha))).Clamped().Hex()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
