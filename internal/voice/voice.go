// Package voice maps spoken transcripts onto portfolio sections.
//
// Speech recognition itself is an external capability behind [Recognizer].
// When no recognizer is available the [Controller] reports itself
// unavailable and the UI disables the microphone control.
package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnsupported indicates the host has no speech recognition.
	ErrUnsupported = errors.New("voice: speech recognition not supported")

	// ErrNoSpeech is reported by recognizers when the user said nothing.
	// It never produces feedback.
	ErrNoSpeech = errors.New("voice: no speech detected")
)

// Recognizer is the speech capability. Results delivers one transcript per
// utterance; the channel is owned by the recognizer.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop()
	Results() <-chan Transcript
}

// Transcript is one recognizer event. Ended marks the end of a recognition
// session and carries no text.
type Transcript struct {
	Text  string
	Err   error
	Ended bool
}

type Command struct {
	Keyword string
	Section string
}

// Commands in match order.
var Commands = []Command{
	{"home", "hero"}, {"top", "hero"}, {"hero", "hero"},
	{"about", "about"}, {"about me", "about"},
	{"experience", "experience"}, {"work", "experience"},
	{"skills", "skills"}, {"tech", "skills"}, {"stack", "skills"},
	{"projects", "projects"}, {"project", "projects"},
	{"contact", "contact"}, {"hire", "contact"}, {"touch", "contact"},
	{"playground", "playground"}, {"code", "playground"},
}

const (
	listeningText = "Listening... say a section name"
	notRecognized = "Not recognized. Try: home, about, skills, projects, contact"

	FeedbackDuration  = 3 * time.Second
	ListeningDuration = 5 * time.Second
	MissDuration      = 4 * time.Second
	// ScrollDelay separates the feedback from the scroll it announces.
	ScrollDelay = 500 * time.Millisecond
)

// Match returns the first command whose keyword occurs in the transcript.
func Match(transcript string) (Command, bool) {
	t := strings.ToLower(strings.TrimSpace(transcript))
	if t == "" {
		return Command{}, false
	}
	for _, c := range Commands {
		if strings.Contains(t, c.Keyword) {
			return c, true
		}
	}
	return Command{}, false
}

// Feedback is the transient message under the microphone button. Section
// is set when the transcript matched.
type Feedback struct {
	Text     string
	Section  string
	Duration time.Duration
	Error    bool
}

type Controller struct {
	rec       Recognizer
	listening bool
}

// NewController wraps rec; a nil rec yields an unavailable controller.
func NewController(rec Recognizer) *Controller {
	return &Controller{rec: rec}
}

func (c *Controller) Available() bool { return c.rec != nil }

func (c *Controller) Listening() bool { return c.listening }

// Toggle starts listening, or stops if already listening.
func (c *Controller) Toggle(ctx context.Context) (Feedback, error) {
	if c.rec == nil {
		return Feedback{}, ErrUnsupported
	}
	if c.listening {
		c.rec.Stop()
		c.listening = false
		return Feedback{}, nil
	}
	if err := c.rec.Start(ctx); err != nil {
		return Feedback{}, fmt.Errorf("voice: start: %w", err)
	}
	c.listening = true
	return Feedback{Text: listeningText, Duration: ListeningDuration}, nil
}

// Results exposes the recognizer stream, nil when unavailable.
func (c *Controller) Results() <-chan Transcript {
	if c.rec == nil {
		return nil
	}
	return c.rec.Results()
}

// Handle turns one recognition result into feedback. Listening ends with
// every result, as recognition is not continuous. An Ended event only
// clears the listening state.
func (c *Controller) Handle(t Transcript) (Feedback, bool) {
	c.listening = false
	if t.Ended {
		return Feedback{}, false
	}
	if t.Err != nil {
		if errors.Is(t.Err, ErrNoSpeech) {
			return Feedback{}, false
		}
		return Feedback{Text: "✗ " + t.Err.Error(), Duration: FeedbackDuration, Error: true}, true
	}
	heard := strings.ToLower(strings.TrimSpace(t.Text))
	if cmd, ok := Match(heard); ok {
		return Feedback{
			Text:     fmt.Sprintf("%q → Navigating to %s!", heard, cmd.Keyword),
			Section:  cmd.Section,
			Duration: FeedbackDuration,
		}, true
	}
	return Feedback{Text: fmt.Sprintf("%q → %s", heard, notRecognized), Duration: MissDuration, Error: true}, true
}
