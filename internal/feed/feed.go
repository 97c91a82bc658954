// Package feed generates the simulated developer activity shown on the
// dashboards: API traffic, commits, database queries, server metrics,
// container status, the CI pipeline and the boot console.
//
// Nothing here talks to a real system. Every feed is deterministic given
// its *rand.Rand and the times passed to Tick, which makes them easy to
// drive from a scheduler and from tests.
package feed

import "time"

// Feed is a fixed-interval generator.
type Feed interface {
	Name() string
	Interval() time.Duration
	// Start seeds the feed with its initial burst of entries.
	Start(now time.Time)
	Tick(now time.Time)
}

// Log is a bounded list kept newest-first.
type Log[T any] struct {
	items []T
	max   int
}

func NewLog[T any](max int) *Log[T] {
	if max < 1 {
		max = 1
	}
	return &Log[T]{items: make([]T, 0, max), max: max}
}

// Push prepends v and drops the oldest entry when full.
func (l *Log[T]) Push(v T) {
	if len(l.items) < l.max {
		l.items = append(l.items, v)
	}
	copy(l.items[1:], l.items[:len(l.items)-1])
	l.items[0] = v
}

// Entries returns a copy, newest first.
func (l *Log[T]) Entries() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Log[T]) Len() int { return len(l.items) }

func (l *Log[T]) Cap() int { return l.max }

// Series is a bounded history kept oldest-first, the order plotting
// libraries expect.
type Series struct {
	values []float64
	max    int
}

func NewSeries(max int) *Series {
	if max < 1 {
		max = 1
	}
	return &Series{max: max}
}

func (s *Series) Add(v float64) {
	s.values = append(s.values, v)
	if len(s.values) > s.max {
		s.values = append(s.values[:0], s.values[len(s.values)-s.max:]...)
	}
}

func (s *Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *Series) Last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}
