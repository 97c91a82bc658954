// Package webcanvas binds particle fields to browser canvas elements
// through GopherJS.
package webcanvas

import (
	"fmt"
	"math"

	"github.com/jominkmathew/neonfolio/internal/particle"
)

// CSS renders an HSLA sample as a CSS colour string.
func CSS(c particle.Color) string {
	h := math.Mod(c.Hue, 360)
	if h < 0 {
		h += 360
	}
	return fmt.Sprintf("hsla(%.0f, %.0f%%, %.0f%%, %.3f)",
		h, clamp01(c.Sat)*100, clamp01(c.Light)*100, clamp01(c.Alpha))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
