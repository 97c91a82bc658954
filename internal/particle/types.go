package particle

import (
	"errors"
	"fmt"
	"math"
)

// MaxCap bounds every field's population. Edge drawing is an O(n²) scan, so
// the cap must stay small.
const MaxCap = 250

// Sentinel is the out-of-range pointer coordinate used when no pointer is
// over the surface.
const Sentinel = -1000.0

var (
	// ErrInvalidConfig indicates a field configuration outside valid bounds.
	ErrInvalidConfig = errors.New("particle: invalid config")
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Hue    float64
	// Life runs from 1 to 0. Particles with zero Decay never age.
	Life  float64
	Decay float64
}

// Color is an HSLA sample. Hue is in degrees, the rest in [0,1].
type Color struct {
	Hue, Sat, Light, Alpha float64
}

// Surface is the drawing target of a field.
type Surface interface {
	Clear()
	Circle(x, y, r float64, c Color)
	Line(x0, y0, x1, y1 float64, c Color)
}

type Boundary string

const (
	BoundaryWrap   Boundary = "wrap"
	BoundaryBounce Boundary = "bounce"
	BoundaryFade   Boundary = "fade"
)

// Config parameterizes one field instance. Spatial values are in surface
// units.
type Config struct {
	Cap      int     `yaml:"cap"`
	Count    int     `yaml:"count"`
	MaxSpeed float64 `yaml:"max_speed"`

	HueMin  float64 `yaml:"hue_min"`
	HueMax  float64 `yaml:"hue_max"`
	SizeMin float64 `yaml:"size_min"`
	SizeMax float64 `yaml:"size_max"`
	Alpha   float64 `yaml:"alpha"`

	RepulsionRadius   float64 `yaml:"repulsion_radius"`
	RepulsionStrength float64 `yaml:"repulsion_strength"`
	Friction          float64 `yaml:"friction"`

	Boundary Boundary `yaml:"boundary"`

	EdgeThreshold float64 `yaml:"edge_threshold"`
	EdgeAlpha     float64 `yaml:"edge_alpha"`
	EdgeHue       float64 `yaml:"edge_hue"`

	SpawnPerMove int     `yaml:"spawn_per_move"`
	SpawnJitter  float64 `yaml:"spawn_jitter"`
	SpawnSpeed   float64 `yaml:"spawn_speed"`
	DecayMin     float64 `yaml:"decay_min"`
	DecayMax     float64 `yaml:"decay_max"`
}

// Validate reports the first out-of-bounds field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Cap < 1 || c.Cap > MaxCap:
		return fmt.Errorf("%w: cap %d not in [1,%d]", ErrInvalidConfig, c.Cap, MaxCap)
	case c.Count < 0 || c.Count > c.Cap:
		return fmt.Errorf("%w: count %d not in [0,%d]", ErrInvalidConfig, c.Count, c.Cap)
	case c.Friction <= 0 || c.Friction > 1:
		return fmt.Errorf("%w: friction %.3f not in (0,1]", ErrInvalidConfig, c.Friction)
	case c.RepulsionRadius < 0 || c.EdgeThreshold < 0:
		return fmt.Errorf("%w: negative radius", ErrInvalidConfig)
	case c.SpawnPerMove < 0 || c.SpawnPerMove > 2:
		return fmt.Errorf("%w: spawn_per_move %d not in [0,2]", ErrInvalidConfig, c.SpawnPerMove)
	case c.DecayMin < 0 || c.DecayMax < c.DecayMin:
		return fmt.Errorf("%w: decay range [%.3f,%.3f]", ErrInvalidConfig, c.DecayMin, c.DecayMax)
	case c.HueMax < c.HueMin || c.SizeMax < c.SizeMin:
		return fmt.Errorf("%w: inverted hue or size range", ErrInvalidConfig)
	}
	switch c.Boundary {
	case BoundaryWrap, BoundaryBounce, BoundaryFade:
	default:
		return fmt.Errorf("%w: unknown boundary %q", ErrInvalidConfig, c.Boundary)
	}
	return nil
}

// Scaled returns a copy with every spatial quantity multiplied by k. Used to
// map the browser presets onto a braille canvas.
func (c Config) Scaled(k float64) Config {
	c.MaxSpeed *= k
	c.SizeMin *= k
	c.SizeMax *= k
	c.RepulsionRadius *= k
	c.EdgeThreshold *= k
	c.SpawnJitter *= k
	c.SpawnSpeed *= k
	return c
}

// Shifted returns a copy with the hue range and edge hue rotated by delta
// degrees. HueMin stays in [0,360); HueMax keeps its distance from HueMin.
func (c Config) Shifted(delta float64) Config {
	lo := wrapHue(c.HueMin + delta)
	c.HueMax += lo - c.HueMin
	c.HueMin = lo
	c.EdgeHue = wrapHue(c.EdgeHue + delta)
	return c
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Network is the page background: a wide field of slow points joined by
// faint edges.
func Network() Config {
	return Config{
		Cap:               MaxCap,
		Count:             MaxCap,
		MaxSpeed:          0.6,
		HueMin:            180,
		HueMax:            280,
		SizeMin:           1,
		SizeMax:           2,
		Alpha:             0.8,
		RepulsionRadius:   80,
		RepulsionStrength: 1,
		Friction:          0.99,
		Boundary:          BoundaryWrap,
		EdgeThreshold:     60,
		EdgeAlpha:         0.12,
		EdgeHue:           184,
	}
}

// NameField is the swarm drawn behind the hero name.
func NameField() Config {
	return Config{
		Cap:               60,
		Count:             60,
		MaxSpeed:          0.8,
		HueMin:            180,
		HueMax:            240,
		SizeMin:           1,
		SizeMax:           3,
		Alpha:             0.7,
		RepulsionRadius:   80,
		RepulsionStrength: 2,
		Friction:          0.96,
		Boundary:          BoundaryWrap,
		EdgeThreshold:     60,
		EdgeAlpha:         0.15,
		EdgeHue:           184,
	}
}

// CursorTrail spawns short-lived sparks behind the pointer.
func CursorTrail() Config {
	return Config{
		Cap:          120,
		MaxSpeed:     1.5,
		HueMin:       180,
		HueMax:       220,
		SizeMin:      1.5,
		SizeMax:      4,
		Alpha:        0.6,
		Friction:     1,
		Boundary:     BoundaryFade,
		SpawnPerMove: 2,
		SpawnJitter:  8,
		SpawnSpeed:   1.5,
		DecayMin:     0.015,
		DecayMax:     0.03,
	}
}

// Preset looks up a named preset.
func Preset(name string) (Config, bool) {
	switch name {
	case "network":
		return Network(), true
	case "name":
		return NameField(), true
	case "trail":
		return CursorTrail(), true
	}
	return Config{}, false
}

// PresetNames lists the names accepted by Preset.
func PresetNames() []string {
	return []string{"network", "name", "trail"}
}
