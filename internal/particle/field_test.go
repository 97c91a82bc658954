package particle_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jominkmathew/neonfolio/internal/particle"
)

type recordingSurface struct {
	clears  int
	circles []particle.Color
	lines   []particle.Color
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *recordingSurface) Circle(x, y, r float64, c particle.Color) {
	s.circles = append(s.circles, c)
}

func (s *recordingSurface) Line(x0, y0, x1, y1 float64, c particle.Color) {
	s.lines = append(s.lines, c)
}

func newField(cfg particle.Config) *particle.Field {
	f, err := particle.New(cfg, rand.New(rand.NewSource(42)))
	Expect(err).NotTo(HaveOccurred())
	return f
}

var _ = Describe("Field", func() {
	var surface *recordingSurface

	BeforeEach(func() {
		surface = &recordingSurface{}
	})

	Describe("Initialize", func() {
		It("places Count particles inside the surface", func() {
			f := newField(particle.NameField())
			f.Initialize(surface, 400, 120)

			Expect(f.Len()).To(Equal(60))
			for _, p := range f.Particles() {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<", 400))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<", 120))
				Expect(math.Abs(p.VX)).To(BeNumerically("<=", 0.4))
				Expect(p.Hue).To(BeNumerically(">=", 180))
				Expect(p.Hue).To(BeNumerically("<=", 240))
			}
		})

		It("stays inert without a surface", func() {
			f := newField(particle.NameField())
			f.Initialize(nil, 400, 120)

			Expect(f.Inert()).To(BeTrue())
			Expect(f.Running()).To(BeFalse())
			Expect(f.Len()).To(Equal(0))

			f.PointerMove(10, 10)
			f.Step()
			f.Render()
			Expect(f.Len()).To(Equal(0))
		})

		It("rejects configs over the cap", func() {
			cfg := particle.Network()
			cfg.Cap = particle.MaxCap + 1
			_, err := particle.New(cfg, nil)
			Expect(errors.Is(err, particle.ErrInvalidConfig)).To(BeTrue())
		})

		It("rejects unknown boundaries", func() {
			cfg := particle.NameField()
			cfg.Boundary = "teleport"
			_, err := particle.New(cfg, nil)
			Expect(err).To(MatchError(particle.ErrInvalidConfig))
		})
	})

	Describe("population cap", func() {
		It("never exceeds the cap and evicts oldest first", func() {
			f := newField(particle.CursorTrail())
			f.Initialize(surface, 800, 600)

			for i := 0; i < 200; i++ {
				f.PointerMove(float64(i), 300)
				Expect(f.Len()).To(BeNumerically("<=", 120))
			}

			ps := f.Particles()
			Expect(ps).To(HaveLen(120))
			// 200 moves spawn 400 particles; the survivors come from the last 60 moves.
			Expect(ps[0].X).To(BeNumerically(">=", 140-4))
		})

		It("holds for every cap up to the maximum", func() {
			for _, limit := range []int{1, 2, 17, 120, particle.MaxCap} {
				cfg := particle.CursorTrail()
				cfg.Cap = limit
				f := newField(cfg)
				f.Initialize(surface, 100, 100)
				for i := 0; i < limit+10; i++ {
					f.PointerMove(50, 50)
					f.Step()
				}
				Expect(f.Len()).To(BeNumerically("<=", limit))
			}
		})
	})

	Describe("repulsion", func() {
		var f *particle.Field

		BeforeEach(func() {
			f = newField(particle.NameField())
			f.Initialize(surface, 400, 400)
		})

		It("is zero once the pointer leaves", func() {
			f.PointerMove(200, 200)
			fx, _ := f.Repulsion(particle.Particle{X: 210, Y: 200})
			Expect(fx).To(BeNumerically(">", 0))

			f.PointerLeave()
			fx, fy := f.Repulsion(particle.Particle{X: 210, Y: 200})
			Expect(fx).To(BeZero())
			Expect(fy).To(BeZero())
			_, _, active := f.Pointer()
			Expect(active).To(BeFalse())
		})

		It("grows monotonically as the pointer gets closer", func() {
			f.PointerMove(200, 200)
			prev := 0.0
			for d := 79.0; d > 0; d -= 3 {
				fx, fy := f.Repulsion(particle.Particle{X: 200 + d, Y: 200})
				mag := math.Hypot(fx, fy)
				Expect(mag).To(BeNumerically(">", prev))
				Expect(fx).To(BeNumerically(">", 0), "force points away from the pointer")
				prev = mag
			}
		})

		It("is zero at and beyond the radius", func() {
			f.PointerMove(0, 0)
			fx, fy := f.Repulsion(particle.Particle{X: 80, Y: 0})
			Expect(math.Hypot(fx, fy)).To(BeZero())
			fx, fy = f.Repulsion(particle.Particle{X: 300, Y: 0})
			Expect(math.Hypot(fx, fy)).To(BeZero())
		})
	})

	Describe("edges", func() {
		It("interpolates opacity linearly", func() {
			Expect(particle.EdgeOpacity(0, 60)).To(Equal(1.0))
			Expect(particle.EdgeOpacity(30, 60)).To(BeNumerically("~", 0.5, 1e-12))
			Expect(particle.EdgeOpacity(60, 60)).To(Equal(0.0))
			Expect(particle.EdgeOpacity(90, 60)).To(Equal(0.0))
		})

		It("draws no edge at or beyond the threshold", func() {
			f := newField(particle.NameField())
			f.Initialize(surface, 400, 400)
			for _, e := range f.Edges() {
				Expect(e.Dist).To(BeNumerically("<", 60))
				Expect(e.Alpha).To(BeNumerically(">", 0))
				Expect(e.Alpha).To(BeNumerically("<=", 0.15))
			}

			f.Render()
			Expect(surface.clears).To(Equal(1))
			Expect(surface.circles).To(HaveLen(60))
			Expect(surface.lines).To(HaveLen(len(f.Edges())))
		})

		It("skips edges for trail variants", func() {
			f := newField(particle.CursorTrail())
			f.Initialize(surface, 100, 100)
			f.PointerMove(50, 50)
			Expect(f.Edges()).To(BeEmpty())
		})
	})

	Describe("Step", func() {
		It("wraps particles around the edges", func() {
			cfg := particle.NameField()
			cfg.Count = 0
			cfg.SpawnPerMove = 1
			cfg.SpawnJitter = 0
			cfg.SpawnSpeed = 0
			f := newField(cfg)
			f.Initialize(surface, 100, 100)
			f.PointerMove(99.9, 50)
			// The second spawn pushes the first one past the right edge.
			f.PointerMove(90, 50)
			Expect(f.Len()).To(Equal(2))

			f.Step()
			p := f.Particles()[0]
			Expect(p.X).To(Equal(0.0))
			Expect(p.VX).To(BeNumerically(">", 0))
		})

		// spawnAt places one still particle per point, with no decay,
		// friction or repulsion, on a 100x100 surface.
		spawnAt := func(b particle.Boundary, speed float64, pts ...[2]float64) *particle.Field {
			cfg := particle.CursorTrail()
			cfg.Boundary = b
			cfg.SpawnPerMove = 1
			cfg.SpawnJitter = 0
			cfg.SpawnSpeed = speed
			cfg.DecayMin, cfg.DecayMax = 0, 0
			f := newField(cfg)
			f.Initialize(surface, 100, 100)
			for _, pt := range pts {
				f.PointerMove(pt[0], pt[1])
			}
			f.PointerLeave()
			return f
		}

		It("fades particles that leave through any edge", func() {
			f := spawnAt(particle.BoundaryFade, 0,
				[2]float64{-1, 50}, [2]float64{101, 50}, [2]float64{50, -1}, [2]float64{50, 101},
				[2]float64{50, 50})
			Expect(f.Len()).To(Equal(5))

			f.Step()
			Expect(f.Len()).To(Equal(1))
			p := f.Particles()[0]
			Expect(p.X).To(Equal(50.0))
			Expect(p.Y).To(Equal(50.0))
		})

		It("bounces particles off every edge", func() {
			f := spawnAt(particle.BoundaryBounce, 2,
				[2]float64{-5, 50}, [2]float64{105, 50}, [2]float64{50, -5}, [2]float64{50, 105})
			before := f.Particles()

			f.Step()
			after := f.Particles()
			Expect(after).To(HaveLen(4))

			Expect(after[0].X).To(Equal(0.0))
			Expect(after[0].VX).To(Equal(-before[0].VX))
			Expect(after[1].X).To(Equal(100.0))
			Expect(after[1].VX).To(Equal(-before[1].VX))
			Expect(after[2].Y).To(Equal(0.0))
			Expect(after[2].VY).To(Equal(-before[2].VY))
			Expect(after[3].Y).To(Equal(100.0))
			Expect(after[3].VY).To(Equal(-before[3].VY))

			// The axis that stayed inside keeps its velocity.
			Expect(after[0].VY).To(Equal(before[0].VY))
			Expect(after[2].VX).To(Equal(before[2].VX))
		})

		It("applies friction to velocity", func() {
			cfg := particle.NameField()
			cfg.Count = 1
			f := newField(cfg)
			f.Initialize(surface, 1000, 1000)
			v0 := f.Particles()[0].VX
			f.Step()
			Expect(f.Particles()[0].VX).To(BeNumerically("~", v0*0.96, 1e-12))
		})

		It("removes trail particles when their life runs out", func() {
			f := newField(particle.CursorTrail())
			f.Initialize(surface, 1000, 1000)
			f.PointerMove(500, 500)
			Expect(f.Len()).To(Equal(2))

			// Slowest decay is 0.015 per frame.
			for i := 0; i < 70; i++ {
				f.Step()
			}
			Expect(f.Len()).To(Equal(0))
		})

		It("scales particle size and alpha by remaining life", func() {
			f := newField(particle.CursorTrail())
			f.Initialize(surface, 1000, 1000)
			f.PointerMove(500, 500)
			f.Step()
			f.Render()
			for _, c := range surface.circles {
				Expect(c.Alpha).To(BeNumerically("<", 0.6))
			}
		})

		It("stops advancing after Stop", func() {
			f := newField(particle.NameField())
			f.Initialize(surface, 400, 400)
			before := f.Particles()
			f.Stop()
			f.Step()
			Expect(f.Particles()).To(Equal(before))
			Expect(f.Running()).To(BeFalse())
		})
	})

	Describe("ShiftHue", func() {
		It("rotates the range and every live particle", func() {
			f := newField(particle.NameField())
			f.Initialize(surface, 400, 400)
			before := f.Particles()

			f.ShiftHue(150)
			cfg := f.Config()
			Expect(cfg.HueMin).To(Equal(330.0))
			Expect(cfg.HueMax).To(Equal(390.0))
			Expect(cfg.EdgeHue).To(Equal(334.0))
			for i, p := range f.Particles() {
				Expect(p.Hue).To(BeNumerically("~", math.Mod(before[i].Hue+150, 360), 1e-9))
			}
		})

		It("keeps the range start in [0,360)", func() {
			cfg := particle.Network().Shifted(-200)
			Expect(cfg.HueMin).To(Equal(340.0))
			Expect(cfg.HueMax - cfg.HueMin).To(Equal(100.0))
			Expect(cfg.EdgeHue).To(Equal(344.0))
		})
	})

	Describe("Resize", func() {
		It("keeps positions and rebinds the bounds", func() {
			cfg := particle.NameField()
			cfg.Boundary = particle.BoundaryBounce
			f := newField(cfg)
			f.Initialize(surface, 400, 400)
			before := f.Particles()

			f.Resize(50, 50)
			Expect(f.Particles()).To(Equal(before))

			f.Step()
			for _, p := range f.Particles() {
				Expect(p.X).To(BeNumerically("<=", 50))
				Expect(p.Y).To(BeNumerically("<=", 50))
			}
		})
	})

	Describe("presets", func() {
		It("validates every preset", func() {
			for _, name := range particle.PresetNames() {
				cfg, ok := particle.Preset(name)
				Expect(ok).To(BeTrue())
				Expect(cfg.Validate()).To(Succeed(), name)
			}
		})

		It("scales spatial parameters only", func() {
			cfg := particle.NameField().Scaled(0.25)
			Expect(cfg.RepulsionRadius).To(Equal(20.0))
			Expect(cfg.EdgeThreshold).To(Equal(15.0))
			Expect(cfg.Friction).To(Equal(0.96))
			Expect(cfg.Cap).To(Equal(60))
		})
	})
})
