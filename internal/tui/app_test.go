package tui

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jominkmathew/neonfolio/internal/config"
	"github.com/jominkmathew/neonfolio/internal/contact"
	"github.com/jominkmathew/neonfolio/internal/effects"
	"github.com/jominkmathew/neonfolio/internal/particle"
	"github.com/jominkmathew/neonfolio/internal/schedule"
	"github.com/jominkmathew/neonfolio/internal/voice"
)

var base = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(7))
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return base }
	}
	opts.SkipBoot = true
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestSectionNavigation(t *testing.T) {
	m := newTestModel(t, Options{})

	tests := []struct {
		key  string
		want string
	}{
		{"right", "about"},
		{"right", "experience"},
		{"left", "about"},
		{"5", "projects"},
		{"9", "projects"},
		{"1", "hero"},
		{"left", "hero"},
	}
	for _, tt := range tests {
		press(m, tt.key)
		if got := m.Section(); got != tt.want {
			t.Errorf("after %q: section = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestStartSection(t *testing.T) {
	m := newTestModel(t, Options{Section: "contact"})
	if m.Section() != "contact" {
		t.Errorf("section = %s", m.Section())
	}
}

func TestBootSkippedByKey(t *testing.T) {
	m, err := New(Options{Rand: rand.New(rand.NewSource(1)), Now: func() time.Time { return base }})
	if err != nil {
		t.Fatal(err)
	}
	if m.Init() == nil {
		t.Fatal("boot should schedule work")
	}
	if !strings.Contains(m.View(), "any key to skip") {
		t.Error("boot screen not shown")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.screen != screenMain {
		t.Error("key did not skip boot")
	}
}

func TestBootTimesOut(t *testing.T) {
	m, err := New(Options{Rand: rand.New(rand.NewSource(1)), Now: func() time.Time { return base }})
	if err != nil {
		t.Fatal(err)
	}
	m.Init()
	m.Update(schedule.TimerMsg{Name: timerBootLine})
	if len(m.boot.Shown()) != 2 {
		t.Errorf("shown = %d lines", len(m.boot.Shown()))
	}
	m.Update(schedule.TimerMsg{Name: timerBootDone})
	if m.screen != screenMain {
		t.Error("boot screen should hide after the timeout")
	}
}

func TestTerminalGoto(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, "t")
	if m.pane != paneTerminal {
		t.Fatal("terminal pane not open")
	}

	m.termInput.SetValue("goto skills")
	press(m, "enter")
	if m.Section() != "skills" {
		t.Errorf("section = %s, want skills", m.Section())
	}

	m.termInput.SetValue("goto playground")
	press(m, "enter")
	if m.Section() != "skills" {
		t.Error("playground is not a goto target")
	}
	if !strings.Contains(m.renderTerminalHistory(), "$ goto skills") {
		t.Error("history missing echoed command")
	}

	press(m, "esc")
	if m.pane != paneNone {
		t.Error("esc should close the pane")
	}
}

func TestChatReplyAfterTyping(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, "c")
	m.chatInput.SetValue("what are your skills?")
	press(m, "enter")

	if !m.chat.Typing() {
		t.Fatal("expected typing indicator")
	}
	if !strings.Contains(m.viewChat(), "typing") {
		t.Error("typing indicator not rendered")
	}

	m.Update(schedule.TimerMsg{Name: timerChat})
	msgs := m.chat.Messages()
	if len(msgs) != 2 || m.chat.Typing() {
		t.Fatalf("messages = %d typing = %v", len(msgs), m.chat.Typing())
	}
	if msgs[1].User || !strings.Contains(msgs[1].Text, "Java") {
		t.Errorf("unexpected reply %q", msgs[1].Text)
	}
}

func TestMouseDrivesFields(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.network.Inert() || m.trail.Inert() || m.name.Inert() {
		t.Fatal("fields should initialize on the first size message")
	}

	m.Update(tea.MouseMsg{X: m.bdX + 5, Y: m.bdY + 3, Action: tea.MouseActionMotion})
	x, y, ok := m.network.Pointer()
	if !ok || x != 11 || y != 14 {
		t.Errorf("pointer = (%v,%v,%v), want (11,14,true)", x, y, ok)
	}
	if m.trail.Len() != m.trail.Config().SpawnPerMove {
		t.Errorf("trail len = %d", m.trail.Len())
	}

	m.Update(tea.MouseMsg{X: 2, Y: m.bdY + 3, Action: tea.MouseActionMotion})
	x, y, ok = m.network.Pointer()
	if ok || x != particle.Sentinel || y != particle.Sentinel {
		t.Errorf("pointer outside backdrop should park at the sentinel, got (%v,%v)", x, y)
	}
}

func TestFrameRendersBackdrop(t *testing.T) {
	m := newTestModel(t, Options{})
	if !m.sched.Fire(taskFrame, base) {
		t.Fatal("frame task not running")
	}
	lit := strings.ContainsFunc(m.backdrop.Plain(), func(r rune) bool {
		return r != '\u2800' && r != '\n'
	})
	if !lit {
		t.Error("backdrop empty after a frame")
	}
}

func TestResizeKeepsPopulation(t *testing.T) {
	m := newTestModel(t, Options{})
	n := m.network.Len()
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	if m.network.Len() != n {
		t.Errorf("resize reseeded the field: %d -> %d", n, m.network.Len())
	}
	w, _ := m.network.Size()
	bw, _ := m.backdrop.PixelSize()
	if w != bw {
		t.Errorf("field width %v, canvas %v", w, bw)
	}
}

func TestContactRejectionResets(t *testing.T) {
	mailer := contact.MailerFunc(func(context.Context, contact.Message) error {
		return errors.New("relay down")
	})
	m := newTestModel(t, Options{Mailer: mailer, Section: "contact"})

	press(m, "enter")
	if !m.formActive {
		t.Fatal("enter should focus the form")
	}
	m.formInputs[0].SetValue("Ada")
	m.formInputs[1].SetValue("ada@example.com")
	m.formInputs[3].SetValue("hello")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected send command")
	}
	if m.form.State() != contact.Transmitting {
		t.Fatalf("state = %v", m.form.State())
	}
	m.Update(cmd())

	if m.form.State() != contact.Failed || m.form.ButtonEnabled() {
		t.Fatalf("state = %v enabled = %v", m.form.State(), m.form.ButtonEnabled())
	}
	if !strings.Contains(m.viewContact(), contact.StatusFailed) {
		t.Error("failure status not rendered")
	}
	if m.formInputs[0].Value() != "Ada" {
		t.Error("failed send should keep the fields")
	}

	m.Update(schedule.TimerMsg{Name: timerReset, At: base.Add(contact.ResetDelay)})
	if m.form.State() != contact.Idle || !m.form.ButtonEnabled() {
		t.Errorf("form not reset: %v", m.form.State())
	}
}

func TestContactSuccessClearsInputs(t *testing.T) {
	var got contact.Message
	mailer := contact.MailerFunc(func(_ context.Context, msg contact.Message) error {
		got = msg
		return nil
	})
	m := newTestModel(t, Options{Mailer: mailer, Section: "contact"})
	press(m, "enter")
	m.formInputs[0].SetValue("Ada")
	m.formInputs[1].SetValue("ada@example.com")
	m.formInputs[3].SetValue("hello")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.Update(cmd())

	if got.Name != "Ada" || got.Body != "hello" {
		t.Errorf("relay got %+v", got)
	}
	if m.form.State() != contact.Sent || m.formInputs[0].Value() != "" {
		t.Errorf("state = %v name = %q", m.form.State(), m.formInputs[0].Value())
	}
}

func TestContactInvalidStaysIdle(t *testing.T) {
	m := newTestModel(t, Options{Mailer: contact.MailerFunc(func(context.Context, contact.Message) error { return nil }), Section: "contact"})
	press(m, "enter")
	m.formInputs[1].SetValue("not-an-email")

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Error("invalid form should not send")
	}
	if m.form.State() != contact.Idle || !errors.Is(m.formErr, contact.ErrInvalid) {
		t.Errorf("state = %v err = %v", m.form.State(), m.formErr)
	}
}

func TestKonamiOverlay(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, "up", "up", "down", "down", "left", "right", "left", "right", "b", "a")
	if !m.overlay.Active(base) {
		t.Fatal("overlay not shown")
	}
	if !strings.Contains(m.View(), konamiBanner) {
		t.Error("banner missing")
	}
	if m.overlay.Active(base.Add(effects.OverlayDuration)) {
		t.Error("overlay should expire")
	}
}

func TestPlaygroundStartsFeeds(t *testing.T) {
	m := newTestModel(t, Options{})
	if len(m.api.Entries()) != 0 {
		t.Fatal("feeds should wait for the playground")
	}
	press(m, "6")
	if m.Section() != "playground" {
		t.Fatalf("section = %s", m.Section())
	}
	if len(m.api.Entries()) != 1 || len(m.git.Entries()) != 3 || len(m.db.Entries()) != 2 {
		t.Errorf("api=%d git=%d db=%d", len(m.api.Entries()), len(m.git.Entries()), len(m.db.Entries()))
	}
	if !m.sched.Fire("api", base) {
		t.Error("api task should be running")
	}
	if len(m.api.Entries()) != 2 {
		t.Errorf("api entries = %d", len(m.api.Entries()))
	}
}

func TestFeedsDisabled(t *testing.T) {
	cfg := config.GetPreset("lite")
	m := newTestModel(t, Options{Config: cfg})
	press(m, "6")
	if len(m.api.Entries()) != 0 {
		t.Error("lite preset should not run feeds")
	}
	if !strings.Contains(m.View(), "feeds disabled") {
		t.Error("expected disabled notice")
	}
}

type stubRecognizer struct {
	ch      chan voice.Transcript
	started int
}

func (s *stubRecognizer) Start(context.Context) error { s.started++; return nil }
func (s *stubRecognizer) Stop()                       {}
func (s *stubRecognizer) Results() <-chan voice.Transcript {
	return s.ch
}

func TestVoiceNavigation(t *testing.T) {
	rec := &stubRecognizer{ch: make(chan voice.Transcript, 1)}
	m := newTestModel(t, Options{Recognizer: rec})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	if rec.started != 1 || !m.voice.Listening() || cmd == nil {
		t.Fatalf("started=%d listening=%v", rec.started, m.voice.Listening())
	}

	rec.ch <- voice.Transcript{Text: "show me the projects"}
	_, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("expected delayed scroll")
	}
	if !strings.Contains(m.voiceNote.Text, "Navigating to projects") {
		t.Errorf("feedback = %q", m.voiceNote.Text)
	}

	m.Update(schedule.TimerMsg{Name: timerVoiceGo, Payload: "projects"})
	if m.Section() != "projects" {
		t.Errorf("section = %s", m.Section())
	}
}

func TestVoiceSessionEndsWithoutResult(t *testing.T) {
	rec := &stubRecognizer{ch: make(chan voice.Transcript, 1)}
	m := newTestModel(t, Options{Recognizer: rec})

	_, read := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	if read == nil {
		t.Fatal("expected a reader on the recognizer")
	}
	rec.ch <- voice.Transcript{Ended: true}
	_, read = m.Update(read())
	if m.voice.Listening() {
		t.Fatal("still listening after the session ended")
	}
	if read == nil {
		t.Fatal("reader not re-armed")
	}

	// A new session reuses the pending reader instead of adding one.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	if rec.started != 2 || !m.voice.Listening() {
		t.Fatalf("started=%d listening=%v", rec.started, m.voice.Listening())
	}
	if cmd != nil {
		t.Error("second session started a second reader")
	}
	rec.ch <- voice.Transcript{Text: "contact"}
	m.Update(read())
	if !strings.Contains(m.voiceNote.Text, "Navigating to contact") {
		t.Errorf("feedback = %q", m.voiceNote.Text)
	}
}

func TestThemeCycleRecolorsFields(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.theme.Name != "dusk" {
		t.Fatalf("theme at 20:00 = %s, want dusk", m.theme.Name)
	}
	press(m, "T")
	if m.theme.Name != "retro" {
		t.Fatalf("theme = %s, want retro", m.theme.Name)
	}

	// dusk shifts the network hues by +90, retro by -60.
	cfg := m.network.Config()
	if cfg.HueMin != 120 || cfg.HueMax != 220 {
		t.Errorf("network hue range = [%v,%v], want [120,220]", cfg.HueMin, cfg.HueMax)
	}
	for _, p := range m.network.Particles() {
		if p.Hue < cfg.HueMin || p.Hue > cfg.HueMax {
			t.Fatalf("particle hue %v outside [%v,%v]", p.Hue, cfg.HueMin, cfg.HueMax)
		}
	}
}

func TestVoiceUnsupported(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, "v")
	if !m.voiceNote.Error || m.voice.Available() {
		t.Errorf("note = %+v", m.voiceNote)
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, rand.New(rand.NewSource(3)), false)
	r.Start(base)

	// metrics at 1.8s and 3.6s, api at 2.5s, db at 3.5s, git at 4s
	if fired := r.Advance(base.Add(4 * time.Second)); fired != 5 {
		t.Errorf("fired = %d, want 5", fired)
	}
	out := r.Render(base.Add(4 * time.Second))
	for _, want := range []string{"uptime", "api-server", "CPU"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if strings.Contains(out, clearScreen) {
		t.Error("plain renderer should not clear the screen")
	}
}

func TestLiveRendererRunStopsAfterTicks(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, rand.New(rand.NewSource(3)), true)
	if err := r.Run(context.Background(), 2, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if r.Frames() != 2 {
		t.Errorf("frames = %d", r.Frames())
	}
	if !strings.HasPrefix(buf.String(), hideCursor) || !strings.HasSuffix(buf.String(), showCursor) {
		t.Error("cursor not hidden and restored")
	}
}

func TestLiveRendererRejectsInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		var buf bytes.Buffer
		r := NewLiveRenderer(&buf, rand.New(rand.NewSource(3)), false)
		if err := r.Run(context.Background(), 1, d); !errors.Is(err, ErrInterval) {
			t.Errorf("Run(interval=%v) err = %v, want %v", d, err, ErrInterval)
		}
		if buf.Len() != 0 || r.Frames() != 0 {
			t.Errorf("interval %v: wrote %d bytes, %d frames", d, buf.Len(), r.Frames())
		}
	}
}
