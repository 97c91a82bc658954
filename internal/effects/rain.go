// Package effects holds the decorative animations: matrix rain, the
// typewriter and scramble text effects, the Konami easter egg and the
// achievement toasts. Each one is a plain state machine advanced by the
// caller; none of them owns a timer.
package effects

import (
	"math/rand"
	"strings"
	"time"
)

const (
	RainInterval = 50 * time.Millisecond
	// resetChance is the per-frame probability that a drop past the bottom
	// starts over from the top.
	resetChance = 0.025
	trailLen    = 8
)

var (
	BootGlyphs   = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@#$%{}[]<>/=;:.git.push.npm.docker")
	KonamiGlyphs = []rune("アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン0123456789ABCDEF")
)

type cell struct {
	ch  rune
	age int
}

// Rain is a column-per-cell matrix rain. Each frame every column writes a
// random glyph at its drop row and the drop moves down one row.
type Rain struct {
	rng    *rand.Rand
	glyphs []rune
	cols   int
	rows   int
	drops  []int
	grid   []cell
}

func NewRain(rng *rand.Rand, glyphs []rune, cols, rows int) *Rain {
	r := &Rain{rng: rng, glyphs: glyphs}
	r.Resize(cols, rows)
	return r
}

// Resize clears the grid and restarts every drop at the top.
func (r *Rain) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.cols, r.rows = cols, rows
	r.drops = make([]int, cols)
	for i := range r.drops {
		r.drops[i] = 1
	}
	r.grid = make([]cell, cols*rows)
	for i := range r.grid {
		r.grid[i].age = trailLen
	}
}

func (r *Rain) Step() {
	for i := range r.grid {
		if r.grid[i].age < trailLen {
			r.grid[i].age++
		}
	}
	for x, y := range r.drops {
		if y < r.rows {
			c := &r.grid[y*r.cols+x]
			c.ch = r.glyphs[r.rng.Intn(len(r.glyphs))]
			c.age = 0
		}
		if y >= r.rows && r.rng.Float64() < resetChance {
			r.drops[x] = 0
		}
		r.drops[x]++
	}
}

// Drop returns the current row of column x.
func (r *Rain) Drop(x int) int { return r.drops[x] }

// Intensity is 1 for a freshly written cell and fades to 0 along the trail.
func (r *Rain) Intensity(x, y int) float64 {
	c := r.grid[y*r.cols+x]
	return 1 - float64(c.age)/trailLen
}

// Rows renders the visible trail as plain text.
func (r *Rain) Rows() []string {
	out := make([]string, r.rows)
	var b strings.Builder
	for y := 0; y < r.rows; y++ {
		b.Reset()
		for x := 0; x < r.cols; x++ {
			c := r.grid[y*r.cols+x]
			if c.age >= trailLen || c.ch == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(c.ch)
		}
		out[y] = b.String()
	}
	return out
}

func (r *Rain) Size() (cols, rows int) { return r.cols, r.rows }
