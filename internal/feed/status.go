package feed

import (
	"math/rand"
	"time"
)

const (
	PulseInterval = 5 * time.Second
	PulseDuration = 600 * time.Millisecond

	StageDelay   = 800 * time.Millisecond
	PauseDelay   = 3 * time.Second
	RestartDelay = 500 * time.Millisecond

	SyncingText = "● Syncing..."
)

type Container struct {
	Name   string
	Port   int
	Status string
}

var DefaultContainers = []Container{
	{"api-server", 8080, "● Running"},
	{"react-frontend", 3000, "● Running"},
	{"oracle-db", 1521, "● Running"},
}

// Containers shows a fixed set of containers, one of which briefly
// reports syncing on every pulse.
type Containers struct {
	rng     *rand.Rand
	list    []Container
	syncing int
	until   time.Time
}

func NewContainers(rng *rand.Rand) *Containers {
	list := make([]Container, len(DefaultContainers))
	copy(list, DefaultContainers)
	return &Containers{rng: rng, list: list, syncing: -1}
}

func (c *Containers) Name() string            { return "containers" }
func (c *Containers) Interval() time.Duration { return PulseInterval }
func (c *Containers) Start(time.Time)         {}

// Tick marks a random container as syncing for PulseDuration.
func (c *Containers) Tick(now time.Time) {
	c.syncing = c.rng.Intn(len(c.list))
	c.until = now.Add(PulseDuration)
}

func (c *Containers) Len() int { return len(c.list) }

// At returns container i with the status it shows at now.
func (c *Containers) At(i int, now time.Time) Container {
	ct := c.list[i]
	if i == c.syncing && now.Before(c.until) {
		ct.Status = SyncingText
	}
	return ct
}

// Snapshot returns every container as seen at now.
func (c *Containers) Snapshot(now time.Time) []Container {
	out := make([]Container, len(c.list))
	for i := range c.list {
		out[i] = c.At(i, now)
	}
	return out
}

var DefaultStages = []string{"Code", "Build", "Test", "Docker", "Deploy"}

// Pipeline lights CI stages one at a time, holds the finished run, then
// starts over. It has no fixed interval; Advance returns how long to wait
// before calling it again.
type Pipeline struct {
	Stages    []string
	active    int
	resetting bool
}

func NewPipeline() *Pipeline {
	return &Pipeline{Stages: DefaultStages}
}

func (p *Pipeline) Advance() time.Duration {
	switch {
	case p.resetting:
		p.active = 0
		p.resetting = false
		return RestartDelay
	case p.active < len(p.Stages):
		p.active++
		return StageDelay
	default:
		p.resetting = true
		return PauseDelay
	}
}

// Active is the number of lit stages.
func (p *Pipeline) Active() int { return p.active }

func (p *Pipeline) Lit(i int) bool { return i < p.active }

func (p *Pipeline) Complete() bool { return p.active == len(p.Stages) }
