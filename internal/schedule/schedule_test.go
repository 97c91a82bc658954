package schedule

import (
	"testing"
	"time"
)

func TestSchedulerFireOnlyWhenRunning(t *testing.T) {
	s := New()
	n := 0
	s.Add("feed", time.Second, func(time.Time) { n++ })

	if s.Fire("feed", time.Now()) {
		t.Error("stopped task should not fire")
	}

	if cmd := s.Start("feed"); cmd == nil {
		t.Fatal("expected a tick command")
	}
	if cmd := s.Start("feed"); cmd != nil {
		t.Error("starting a running task should be a no-op")
	}

	s.Fire("feed", time.Now())
	s.Fire("feed", time.Now())
	if n != 2 {
		t.Errorf("expected 2 runs, got %d", n)
	}

	s.Stop("feed")
	if s.Fire("feed", time.Now()) {
		t.Error("task fired after Stop")
	}
}

func TestSchedulerUpdateDropsStaleTicks(t *testing.T) {
	s := New()
	n := 0
	task := s.Add("metrics", time.Second, func(time.Time) { n++ })
	s.Start("metrics")

	live := TickMsg{Name: "metrics", Gen: task.gen}
	handled, next := s.Update(live)
	if !handled || next == nil {
		t.Fatal("expected live tick to be handled and rescheduled")
	}

	s.Stop("metrics")
	s.Start("metrics")
	if handled, _ := s.Update(live); handled {
		t.Error("tick from a previous generation should be ignored")
	}

	if handled, _ := s.Update(TickMsg{Name: "unknown"}); handled {
		t.Error("unknown task should not be handled")
	}
	if handled, _ := s.Update("not a tick"); handled {
		t.Error("foreign message should not be handled")
	}
	if n != 1 {
		t.Errorf("expected 1 run, got %d", n)
	}
	if task.Fires() != 1 {
		t.Errorf("Fires() = %d, want 1", task.Fires())
	}
}

func TestSchedulerStopInsideRun(t *testing.T) {
	s := New()
	s.Add("once", time.Millisecond, func(time.Time) { s.Stop("once") })
	s.Start("once")
	task, _ := s.Task("once")

	handled, next := s.Update(TickMsg{Name: "once", Gen: task.gen})
	if !handled {
		t.Fatal("expected tick handled")
	}
	if next != nil {
		t.Error("task stopped during Run should not reschedule")
	}
}

func TestSchedulerNames(t *testing.T) {
	s := New()
	s.Add("b", time.Second, nil)
	s.Add("a", time.Second, nil)
	names := s.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
	if s.StartAll() == nil {
		t.Error("expected batch command")
	}
	s.StopAll()
	for _, n := range names {
		if task, _ := s.Task(n); task.Running() {
			t.Errorf("%s still running", n)
		}
	}
}
