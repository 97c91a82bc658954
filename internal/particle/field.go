package particle

import (
	"math"
	"math/rand"
)

// Field is one animator instance: a bounded particle collection bound to a
// surface of fixed logical size.
type Field struct {
	cfg     Config
	rng     *rand.Rand
	surface Surface

	particles     []Particle
	width, height float64
	px, py        float64
	stopped       bool
}

// Edge is a connective line between particles I and J.
type Edge struct {
	I, J  int
	Dist  float64
	Alpha float64
}

// New validates cfg and returns an uninitialized field. A nil rng falls back
// to a fixed seed.
func New(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Field{
		cfg:       cfg,
		rng:       rng,
		particles: make([]Particle, 0, cfg.Cap),
		px:        Sentinel,
		py:        Sentinel,
	}, nil
}

// Initialize binds the field to surface and seeds Count particles. A missing
// surface or an empty size leaves the field inert.
func (f *Field) Initialize(surface Surface, width, height float64) {
	if surface == nil || width <= 0 || height <= 0 {
		return
	}
	f.surface = surface
	f.width, f.height = width, height
	f.particles = f.particles[:0]
	for i := 0; i < f.cfg.Count; i++ {
		f.particles = append(f.particles, Particle{
			X:     f.rng.Float64() * width,
			Y:     f.rng.Float64() * height,
			VX:    (f.rng.Float64() - 0.5) * f.cfg.MaxSpeed,
			VY:    (f.rng.Float64() - 0.5) * f.cfg.MaxSpeed,
			Size:  between(f.rng, f.cfg.SizeMin, f.cfg.SizeMax),
			Hue:   between(f.rng, f.cfg.HueMin, f.cfg.HueMax),
			Life:  1,
			Decay: between(f.rng, f.cfg.DecayMin, f.cfg.DecayMax),
		})
	}
}

// Inert reports whether the field never got a surface.
func (f *Field) Inert() bool { return f.surface == nil }

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Size() (float64, float64) { return f.width, f.height }

func (f *Field) Len() int { return len(f.particles) }

// Particles returns a copy of the live population, oldest first.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Pointer returns the stored pointer position and whether it is on the surface.
func (f *Field) Pointer() (float64, float64, bool) {
	return f.px, f.py, f.pointerActive()
}

func (f *Field) pointerActive() bool {
	return f.px != Sentinel || f.py != Sentinel
}

// PointerMove records the pointer and, for trail variants, spawns
// SpawnPerMove particles around it.
func (f *Field) PointerMove(x, y float64) {
	if f.Inert() {
		return
	}
	f.px, f.py = x, y
	for i := 0; i < f.cfg.SpawnPerMove; i++ {
		f.particles = append(f.particles, Particle{
			X:     x + (f.rng.Float64()-0.5)*f.cfg.SpawnJitter,
			Y:     y + (f.rng.Float64()-0.5)*f.cfg.SpawnJitter,
			VX:    (f.rng.Float64() - 0.5) * f.cfg.SpawnSpeed,
			VY:    (f.rng.Float64() - 0.5) * f.cfg.SpawnSpeed,
			Size:  between(f.rng, f.cfg.SizeMin, f.cfg.SizeMax),
			Hue:   between(f.rng, f.cfg.HueMin, f.cfg.HueMax),
			Life:  1,
			Decay: between(f.rng, f.cfg.DecayMin, f.cfg.DecayMax),
		})
	}
	f.evict()
}

// PointerLeave parks the pointer at the sentinel so repulsion stops.
func (f *Field) PointerLeave() {
	f.px, f.py = Sentinel, Sentinel
}

// evict drops the oldest particles beyond the cap.
func (f *Field) evict() {
	if over := len(f.particles) - f.cfg.Cap; over > 0 {
		f.particles = append(f.particles[:0], f.particles[over:]...)
	}
}

// Repulsion returns the pointer force on p. It is zero when the pointer is
// absent, outside the radius, or exactly on top of p (no direction).
func (f *Field) Repulsion(p Particle) (float64, float64) {
	r := f.cfg.RepulsionRadius
	if r <= 0 || !f.pointerActive() {
		return 0, 0
	}
	dx, dy := p.X-f.px, p.Y-f.py
	d := math.Hypot(dx, dy)
	if d >= r || d == 0 {
		return 0, 0
	}
	force := (r - d) / r * f.cfg.RepulsionStrength
	return dx / d * force, dy / d * force
}

// Step advances the simulation by one frame.
func (f *Field) Step() {
	if f.Inert() || f.stopped {
		return
	}
	live := f.particles[:0]
	for _, p := range f.particles {
		fx, fy := f.Repulsion(p)
		p.VX += fx
		p.VY += fy

		p.X += p.VX
		p.Y += p.VY

		p.VX *= f.cfg.Friction
		p.VY *= f.cfg.Friction

		if !f.bound(&p) {
			continue
		}
		if p.Decay > 0 {
			p.Life -= p.Decay
			if p.Life <= 0 {
				continue
			}
		}
		live = append(live, p)
	}
	f.particles = live
}

// bound applies the boundary policy and reports whether p survives.
func (f *Field) bound(p *Particle) bool {
	switch f.cfg.Boundary {
	case BoundaryWrap:
		if p.X < 0 {
			p.X = f.width
		} else if p.X > f.width {
			p.X = 0
		}
		if p.Y < 0 {
			p.Y = f.height
		} else if p.Y > f.height {
			p.Y = 0
		}
	case BoundaryBounce:
		if p.X < 0 {
			p.X, p.VX = 0, -p.VX
		} else if p.X > f.width {
			p.X, p.VX = f.width, -p.VX
		}
		if p.Y < 0 {
			p.Y, p.VY = 0, -p.VY
		} else if p.Y > f.height {
			p.Y, p.VY = f.height, -p.VY
		}
	case BoundaryFade:
		if p.X < 0 || p.X > f.width || p.Y < 0 || p.Y > f.height {
			return false
		}
	}
	return true
}

// EdgeOpacity is the linear falloff of a connective edge: 1 at distance 0,
// 0 at and beyond threshold.
func EdgeOpacity(dist, threshold float64) float64 {
	if threshold <= 0 || dist >= threshold {
		return 0
	}
	if dist <= 0 {
		return 1
	}
	return 1 - dist/threshold
}

// Edges lists every unordered pair closer than the edge threshold.
func (f *Field) Edges() []Edge {
	thr := f.cfg.EdgeThreshold
	if thr <= 0 {
		return nil
	}
	var edges []Edge
	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= thr {
				continue
			}
			edges = append(edges, Edge{I: i, J: j, Dist: d, Alpha: f.cfg.EdgeAlpha * EdgeOpacity(d, thr)})
		}
	}
	return edges
}

// Render clears the surface and draws particles then edges.
func (f *Field) Render() {
	if f.Inert() {
		return
	}
	f.surface.Clear()
	for _, p := range f.particles {
		life := p.Life
		if p.Decay == 0 {
			life = 1
		}
		f.surface.Circle(p.X, p.Y, p.Size*life, Color{Hue: p.Hue, Sat: 1, Light: 0.7, Alpha: f.cfg.Alpha * life})
	}
	for _, e := range f.Edges() {
		a, b := f.particles[e.I], f.particles[e.J]
		f.surface.Line(a.X, a.Y, b.X, b.Y, Color{Hue: f.cfg.EdgeHue, Sat: 1, Light: 0.5, Alpha: e.Alpha})
	}
}

// ShiftHue rotates the colour of the field and of every live particle by
// delta degrees.
func (f *Field) ShiftHue(delta float64) {
	f.cfg = f.cfg.Shifted(delta)
	for i := range f.particles {
		f.particles[i].Hue = wrapHue(f.particles[i].Hue + delta)
	}
}

// Resize changes the logical surface size. Existing positions are kept; the
// boundary policy pulls stragglers back on later steps.
func (f *Field) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	f.width, f.height = width, height
}

// Stop disposes the field: Step becomes a no-op and frame loops driving it
// should not reschedule.
func (f *Field) Stop() { f.stopped = true }

func (f *Field) Running() bool { return !f.stopped && !f.Inert() }

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
