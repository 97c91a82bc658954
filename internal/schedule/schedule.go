// Package schedule turns Bubble Tea ticks into named, stoppable loops.
//
// Every periodic behaviour in the portfolio (frame loop, simulated feeds,
// toast expiry) is a [Task]: a named interval plus the function to run. Tasks
// are registered on a [Scheduler]; its Update method consumes the matching
// [TickMsg] and reschedules. Tests call [Scheduler.Fire] to drive ticks
// without waiting on the wall clock.
package schedule

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is delivered when a task's interval elapses. Gen guards against
// ticks issued before the task was stopped or restarted.
type TickMsg struct {
	Name string
	Gen  int
	At   time.Time
}

// TimerMsg is delivered by a one-shot After.
type TimerMsg struct {
	Name    string
	Payload any
	At      time.Time
}

// After delivers a TimerMsg once d has elapsed.
func After(name string, d time.Duration, payload any) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TimerMsg{Name: name, Payload: payload, At: t}
	})
}

type Task struct {
	Name     string
	Interval time.Duration
	Run      func(now time.Time)

	gen     int
	running bool
	fires   int
}

func (t *Task) Running() bool { return t.running }

// Fires counts how many ticks the task has handled.
func (t *Task) Fires() int { return t.fires }

func (t *Task) next() tea.Cmd {
	name, gen := t.Name, t.gen
	return tea.Tick(t.Interval, func(at time.Time) tea.Msg {
		return TickMsg{Name: name, Gen: gen, At: at}
	})
}

type Scheduler struct {
	tasks map[string]*Task
}

func New() *Scheduler {
	return &Scheduler{tasks: make(map[string]*Task)}
}

// Add registers a stopped task, replacing any task with the same name.
func (s *Scheduler) Add(name string, interval time.Duration, run func(now time.Time)) *Task {
	t := &Task{Name: name, Interval: interval, Run: run}
	if old, ok := s.tasks[name]; ok {
		t.gen = old.gen + 1
	}
	s.tasks[name] = t
	return t
}

func (s *Scheduler) Task(name string) (*Task, bool) {
	t, ok := s.tasks[name]
	return t, ok
}

// Names lists registered tasks in sorted order.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.tasks))
	for n := range s.tasks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Start arms the named task. Starting a running task is a no-op.
func (s *Scheduler) Start(name string) tea.Cmd {
	t, ok := s.tasks[name]
	if !ok || t.running {
		return nil
	}
	t.gen++
	t.running = true
	return t.next()
}

// StartAll arms every registered task.
func (s *Scheduler) StartAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range s.Names() {
		if cmd := s.Start(n); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Stop disarms the named task; ticks already in flight are discarded.
func (s *Scheduler) Stop(name string) {
	if t, ok := s.tasks[name]; ok {
		t.running = false
		t.gen++
	}
}

func (s *Scheduler) StopAll() {
	for n := range s.tasks {
		s.Stop(n)
	}
}

// Update runs the task addressed by msg and returns the command for its
// next tick. handled is false for messages that are not live task ticks.
func (s *Scheduler) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok {
		return false, nil
	}
	t, ok := s.tasks[tick.Name]
	if !ok || !t.running || tick.Gen != t.gen {
		return false, nil
	}
	t.fires++
	if t.Run != nil {
		t.Run(tick.At)
	}
	if !t.running {
		return true, nil
	}
	return true, t.next()
}

// Fire runs a running task synchronously, as if its tick had arrived at now.
func (s *Scheduler) Fire(name string, now time.Time) bool {
	t, ok := s.tasks[name]
	if !ok || !t.running {
		return false
	}
	t.fires++
	if t.Run != nil {
		t.Run(now)
	}
	return true
}
