package feed

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	MetricsInterval = 1800 * time.Millisecond
	HistoryCap      = 60

	startUptime = 3 * 24 * 60
)

type Metric int

const (
	CPU Metric = iota
	RAM
	Disk
	Net
)

var metricNames = [...]string{"CPU", "RAM", "DISK", "NET"}

func (m Metric) String() string { return metricNames[m] }

// Metrics lists every metric in display order.
var Metrics = []Metric{CPU, RAM, Disk, Net}

// walk is one bounded random walk: v += (r - bias) * step, clamped.
type walk struct {
	v, lo, hi  float64
	bias, step float64
}

func (w *walk) next(r float64) {
	w.v = math.Max(w.lo, math.Min(w.hi, w.v+(r-w.bias)*w.step))
}

// ServerMetrics fakes a host dashboard: four percentages drifting inside
// fixed bands plus an uptime counter in minutes.
type ServerMetrics struct {
	rng     *rand.Rand
	walks   [4]walk
	history [4]*Series
	uptime  int
}

func NewServerMetrics(rng *rand.Rand) *ServerMetrics {
	m := &ServerMetrics{
		rng: rng,
		walks: [4]walk{
			CPU:  {v: 35, lo: 8, hi: 95, bias: 0.48, step: 12},
			RAM:  {v: 62, lo: 40, hi: 88, bias: 0.5, step: 5},
			Disk: {v: 45, lo: 30, hi: 75, bias: 0.5, step: 2},
			Net:  {v: 20, lo: 5, hi: 90, bias: 0.45, step: 18},
		},
		uptime: startUptime,
	}
	for i := range m.history {
		m.history[i] = NewSeries(HistoryCap)
	}
	return m
}

func (m *ServerMetrics) Name() string            { return "metrics" }
func (m *ServerMetrics) Interval() time.Duration { return MetricsInterval }
func (m *ServerMetrics) Start(now time.Time)     { m.Tick(now) }

func (m *ServerMetrics) Tick(time.Time) {
	for i := range m.walks {
		m.walks[i].next(m.rng.Float64())
		m.history[i].Add(m.walks[i].v)
	}
	m.uptime++
}

// Value is the current reading, in percent.
func (m *ServerMetrics) Value(k Metric) float64 { return m.walks[k].v }

// Bounds returns the clamp band for k.
func (m *ServerMetrics) Bounds(k Metric) (lo, hi float64) {
	return m.walks[k].lo, m.walks[k].hi
}

// History returns up to HistoryCap readings, oldest first.
func (m *ServerMetrics) History(k Metric) []float64 { return m.history[k].Values() }

func (m *ServerMetrics) UptimeMinutes() int { return m.uptime }

// Uptime renders the counter as "Dd Hh Mm".
func (m *ServerMetrics) Uptime() string { return FormatUptime(m.uptime) }

func FormatUptime(mins int) string {
	return fmt.Sprintf("%dd %dh %dm", mins/1440, mins%1440/60, mins%60)
}
