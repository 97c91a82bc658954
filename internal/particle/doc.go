// Package particle implements the particle field animator behind the
// portfolio's ambient effects.
//
// A [Field] owns a bounded swarm of [Particle] values and advances them one
// frame at a time:
//
//   - [Field.Step]: pointer repulsion, integration, friction, boundary policy, decay
//   - [Field.Render]: filled circles plus proximity edges onto a [Surface]
//   - [Field.PointerMove] / [Field.PointerLeave]: pointer tracking and trail spawning
//
// Three presets cover the instantiations used by the site: [Network] for the
// background, [NameField] for the hero name and [CursorTrail] for the pointer
// trail.
//
// # Example
//
//	f, _ := particle.New(particle.NameField(), rand.New(rand.NewSource(1)))
//	f.Initialize(surface, 400, 120)
//	for f.Running() {
//		f.Step()
//		f.Render()
//	}
//
// # Thread Safety
//
// Field instances are NOT thread-safe. Pointer handlers and the frame loop
// must run on the same goroutine (the Bubble Tea update loop or the browser
// event loop).
package particle
