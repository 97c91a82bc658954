package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jominkmathew/neonfolio/internal/contact"
	"github.com/jominkmathew/neonfolio/internal/particle"
)

const (
	DefaultFPS     = 30
	DefaultScale   = 0.35
	DefaultTimeout = 10 * time.Second
	DefaultTheme   = "auto"

	RelayEmailJS = "emailjs"
	RelaySMTP    = "smtp"
	RelayNone    = "none"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Theme string `yaml:"theme"`
	FPS   int    `yaml:"fps"`
	Seed  int64  `yaml:"seed"`
	// Scale maps browser pixel units onto braille dots.
	Scale     float64         `yaml:"scale"`
	Particles ParticlesConfig `yaml:"particles"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Contact   ContactConfig   `yaml:"contact"`
}

type ParticlesConfig struct {
	Network particle.Config `yaml:"network"`
	Name    particle.Config `yaml:"name"`
	Trail   particle.Config `yaml:"trail"`
}

type FeedsConfig struct {
	Enabled bool `yaml:"enabled"`
	// HistoryWidth is how many metric samples the charts plot.
	HistoryWidth int `yaml:"history_width"`
}

type ContactConfig struct {
	Relay      string        `yaml:"relay"`
	PublicKey  string        `yaml:"public_key"`
	ServiceID  string        `yaml:"service_id"`
	TemplateID string        `yaml:"template_id"`
	Endpoint   string        `yaml:"endpoint,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: DefaultTheme,
		FPS:   DefaultFPS,
		Scale: DefaultScale,
		Particles: ParticlesConfig{
			Network: particle.Network(),
			Name:    particle.NameField(),
			Trail:   particle.CursorTrail(),
		},
		Feeds: FeedsConfig{Enabled: true, HistoryWidth: 40},
		Contact: ContactConfig{
			Relay:      RelayEmailJS,
			PublicKey:  "pflFe-HRrK0agTpY0",
			ServiceID:  "service_91rc20r",
			TemplateID: "template_8lebzka",
			Timeout:    DefaultTimeout,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads .env style files into the process environment. Missing
// files are skipped; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: env %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides file settings with NEONFOLIO_* and EMAILJS_* variables.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Theme, "NEONFOLIO_THEME")
	set(&c.Contact.Relay, "NEONFOLIO_RELAY")
	set(&c.Contact.PublicKey, "EMAILJS_PUBLIC_KEY")
	set(&c.Contact.ServiceID, "EMAILJS_SERVICE_ID")
	set(&c.Contact.TemplateID, "EMAILJS_TEMPLATE_ID")
	set(&c.Contact.Endpoint, "EMAILJS_ENDPOINT")
}

func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > 120 {
		return fmt.Errorf("%w: fps %d not in [1,120]", ErrInvalid, c.FPS)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive", ErrInvalid)
	}
	for name, p := range map[string]particle.Config{
		"network": c.Particles.Network,
		"name":    c.Particles.Name,
		"trail":   c.Particles.Trail,
	} {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: particles.%s: %w", ErrInvalid, name, err)
		}
	}
	switch strings.ToLower(c.Contact.Relay) {
	case RelayEmailJS, RelaySMTP, RelayNone:
	default:
		return fmt.Errorf("%w: unknown relay %q", ErrInvalid, c.Contact.Relay)
	}
	return nil
}

// FrameInterval is the animation tick derived from FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// Field returns the named particle config mapped to terminal units.
func (c *Config) Field(name string) particle.Config {
	var p particle.Config
	switch name {
	case "network":
		p = c.Particles.Network
	case "name":
		p = c.Particles.Name
	default:
		p = c.Particles.Trail
	}
	return p.Scaled(c.Scale)
}

// Mailer builds the configured relay. A nil Mailer means sending is off and
// every submission fails.
func (c *Config) Mailer() contact.Mailer {
	switch strings.ToLower(c.Contact.Relay) {
	case RelayEmailJS:
		return &contact.EmailJS{
			PublicKey:  c.Contact.PublicKey,
			ServiceID:  c.Contact.ServiceID,
			TemplateID: c.Contact.TemplateID,
			Endpoint:   c.Contact.Endpoint,
		}
	case RelaySMTP:
		return contact.SMTPFromEnv()
	}
	return nil
}

// SendTimeout bounds one relay call.
func (c *Config) SendTimeout() time.Duration {
	if c.Contact.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Contact.Timeout
}
