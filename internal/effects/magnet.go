package effects

// MagnetPull is the fraction of the pointer's offset from an element's
// centre that the element follows.
const MagnetPull = 0.3

// MagnetOffset is the translation of a magnetic element with bounding box
// (left, top, w, h) for a pointer at (px, py).
func MagnetOffset(px, py, left, top, w, h float64) (dx, dy float64) {
	return (px - left - w/2) * MagnetPull, (py - top - h/2) * MagnetPull
}
