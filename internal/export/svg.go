package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jominkmathew/neonfolio/internal/particle"
	"github.com/jominkmathew/neonfolio/internal/viz"
)

// SVG is a particle.Surface that records one frame as vector shapes.
type SVG struct {
	Width, Height float64
	Background    string
	shapes        []string
}

var _ particle.Surface = (*SVG)(nil)

func NewSVG(w, h float64) *SVG {
	return &SVG{Width: w, Height: h, Background: "#0a0a0a"}
}

func (s *SVG) Clear() { s.shapes = s.shapes[:0] }

func (s *SVG) Circle(x, y, r float64, c particle.Color) {
	s.shapes = append(s.shapes, fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`,
		x, y, r, solid(c), opacity(c)))
}

func (s *SVG) Line(x0, y0, x1, y1 float64, c particle.Color) {
	s.shapes = append(s.shapes, fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="0.5"/>`,
		x0, y0, x1, y1, solid(c), opacity(c)))
}

// Len is the number of recorded shapes.
func (s *SVG) Len() int { return len(s.shapes) }

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background)
	for _, sh := range s.shapes {
		sb.WriteString(sh)
		sb.WriteByte('\n')
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func solid(c particle.Color) string {
	c.Alpha = 1
	return viz.HSLA(c)
}

func opacity(c particle.Color) float64 {
	return math.Max(0, math.Min(1, c.Alpha))
}

// Snapshot runs f for frames steps on a fresh SVG surface of size w x h and
// returns the last rendered frame. Fields that spawn on pointer movement
// follow a figure-eight pointer path, since they start empty.
func Snapshot(f *particle.Field, w, h float64, frames int) *SVG {
	svg := NewSVG(w, h)
	f.Initialize(svg, w, h)
	spawns := f.Config().SpawnPerMove > 0
	for i := 0; i < frames; i++ {
		if spawns {
			f.PointerMove(pointerPath(i, w, h))
		}
		f.Step()
	}
	f.Render()
	return svg
}

func pointerPath(i int, w, h float64) (float64, float64) {
	t := float64(i) * 0.05
	return w/2 + w/3*math.Sin(t), h/2 + h/3*math.Sin(2*t)
}
