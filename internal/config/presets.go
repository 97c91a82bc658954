package config

import "sort"

// Presets are complete configurations selectable with --preset.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"calm": func() *Config {
		c := DefaultConfig()
		c.Particles.Network.Count = 80
		c.Particles.Network.MaxSpeed = 0.3
		c.Particles.Name.RepulsionStrength = 1
		c.FPS = 20
		return c
	},
	"lite": func() *Config {
		c := DefaultConfig()
		c.Particles.Network.Cap = 60
		c.Particles.Network.Count = 60
		c.Particles.Trail.Cap = 40
		c.Feeds.Enabled = false
		c.FPS = 15
		return c
	},
	"retro": func() *Config {
		c := DefaultConfig()
		c.Theme = "retro"
		c.Particles.Network.HueMin, c.Particles.Network.HueMax = 100, 140
		c.Particles.Network.EdgeHue = 120
		return c
	},
	"offline": func() *Config {
		c := DefaultConfig()
		c.Contact.Relay = RelayNone
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
