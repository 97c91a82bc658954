package voice

import (
	"context"
	"errors"
	"testing"
)

type fakeRecognizer struct {
	started, stopped int
	err              error
	results          chan Transcript
}

func (f *fakeRecognizer) Start(context.Context) error {
	f.started++
	return f.err
}
func (f *fakeRecognizer) Stop()                      { f.stopped++ }
func (f *fakeRecognizer) Results() <-chan Transcript { return f.results }

func TestMatch(t *testing.T) {
	tests := []struct {
		in      string
		section string
		ok      bool
	}{
		{"Take me HOME", "hero", true},
		{"show your skills", "skills", true},
		{"I'd like to hire you", "contact", true},
		{"tell me about me", "about", true},
		{"open the code playground", "playground", true},
		{"banana", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		cmd, ok := Match(tt.in)
		if ok != tt.ok || cmd.Section != tt.section {
			t.Errorf("Match(%q) = %+v,%v want %s,%v", tt.in, cmd, ok, tt.section, tt.ok)
		}
	}
}

func TestControllerUnavailable(t *testing.T) {
	c := NewController(nil)
	if c.Available() {
		t.Error("expected unavailable controller")
	}
	if _, err := c.Toggle(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Toggle err = %v, want ErrUnsupported", err)
	}
	if c.Results() != nil {
		t.Error("expected nil results channel")
	}
}

func TestControllerToggle(t *testing.T) {
	rec := &fakeRecognizer{results: make(chan Transcript)}
	c := NewController(rec)

	fb, err := c.Toggle(context.Background())
	if err != nil || !c.Listening() || fb.Text == "" {
		t.Fatalf("Toggle on: fb=%+v err=%v listening=%v", fb, err, c.Listening())
	}
	if _, err := c.Toggle(context.Background()); err != nil || c.Listening() {
		t.Fatalf("Toggle off: err=%v listening=%v", err, c.Listening())
	}
	if rec.started != 1 || rec.stopped != 1 {
		t.Errorf("started=%d stopped=%d", rec.started, rec.stopped)
	}
}

func TestControllerStartError(t *testing.T) {
	boom := errors.New("not-allowed")
	c := NewController(&fakeRecognizer{err: boom})
	if _, err := c.Toggle(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if c.Listening() {
		t.Error("should not be listening after failed start")
	}
}

func TestHandle(t *testing.T) {
	c := NewController(&fakeRecognizer{})

	fb, show := c.Handle(Transcript{Text: "Projects please"})
	if !show || fb.Section != "projects" || fb.Error {
		t.Errorf("matched feedback = %+v", fb)
	}

	fb, show = c.Handle(Transcript{Text: "banana"})
	if !show || fb.Section != "" || !fb.Error || fb.Duration != MissDuration {
		t.Errorf("miss feedback = %+v", fb)
	}

	if _, show := c.Handle(Transcript{Err: ErrNoSpeech}); show {
		t.Error("no-speech should be silent")
	}

	fb, show = c.Handle(Transcript{Err: errors.New("network")})
	if !show || !fb.Error {
		t.Errorf("error feedback = %+v", fb)
	}
}

func TestHandleEnded(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewController(rec)
	if _, err := c.Toggle(context.Background()); err != nil {
		t.Fatal(err)
	}

	if fb, show := c.Handle(Transcript{Ended: true}); show || fb.Text != "" {
		t.Errorf("ended feedback = %+v", fb)
	}
	if c.Listening() {
		t.Fatal("still listening after session ended")
	}

	// The next toggle starts a new session rather than stopping.
	if _, err := c.Toggle(context.Background()); err != nil || !c.Listening() {
		t.Fatalf("Toggle after end: err=%v listening=%v", err, c.Listening())
	}
	if rec.started != 2 || rec.stopped != 0 {
		t.Errorf("started=%d stopped=%d", rec.started, rec.stopped)
	}
}
