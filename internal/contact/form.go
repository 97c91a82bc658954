package contact

import (
	"context"
	"time"
)

// ResetDelay is how long the Sent or Failed state is shown before the form
// becomes usable again.
const ResetDelay = 3000 * time.Millisecond

type State int

const (
	Idle State = iota
	Transmitting
	Sent
	Failed
)

func (s State) String() string {
	switch s {
	case Transmitting:
		return "transmitting"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	}
	return "idle"
}

const (
	StatusSent   = "✓ Message sent successfully!"
	StatusFailed = "✗ Transmission failed. Please email me directly."
)

// Form tracks one contact form. It is driven from a single goroutine: the
// caller runs Transmit (usually inside a tea.Cmd) and feeds the result back
// through Complete.
type Form struct {
	Fields Message

	mailer  Mailer
	state   State
	resetAt time.Time
	lastErr error
}

func NewForm(m Mailer) *Form {
	return &Form{mailer: m}
}

func (f *Form) State() State { return f.state }

func (f *Form) Err() error { return f.lastErr }

// ResetAt is when a Sent or Failed form returns to Idle.
func (f *Form) ResetAt() time.Time { return f.resetAt }

func (f *Form) ButtonEnabled() bool { return f.state == Idle }

func (f *Form) ButtonLabel() string {
	switch f.state {
	case Transmitting:
		return "TRANSMITTING..."
	case Sent:
		return "TRANSMITTED ✓"
	case Failed:
		return "FAILED ✗"
	}
	return "TRANSMIT MESSAGE"
}

// Status is the line under the button, empty while idle or transmitting.
func (f *Form) Status() string {
	switch f.state {
	case Sent:
		return StatusSent
	case Failed:
		return StatusFailed
	}
	return ""
}

// Submit validates the fields and moves the form to Transmitting. The
// returned message is what the caller should hand to Transmit.
func (f *Form) Submit() (Message, error) {
	if f.state != Idle {
		return Message{}, ErrBusy
	}
	if err := f.Fields.Validate(); err != nil {
		return Message{}, err
	}
	f.state = Transmitting
	f.lastErr = nil
	return f.Fields, nil
}

// Transmit performs the send. It does not touch form state and may run on
// another goroutine.
func (f *Form) Transmit(ctx context.Context, m Message) error {
	if f.mailer == nil {
		return ErrNotConfigured
	}
	return f.mailer.Send(ctx, m)
}

// Complete records the outcome of Transmit. Success clears the fields;
// failure keeps them so the visitor can retry by hand.
func (f *Form) Complete(err error, now time.Time) {
	if f.state != Transmitting {
		return
	}
	f.lastErr = err
	if err != nil {
		f.state = Failed
	} else {
		f.state = Sent
		f.Fields = Message{}
	}
	f.resetAt = now.Add(ResetDelay)
}

// Expire returns the form to Idle once ResetDelay has passed. It reports
// whether a reset happened.
func (f *Form) Expire(now time.Time) bool {
	if f.state != Sent && f.state != Failed {
		return false
	}
	if now.Before(f.resetAt) {
		return false
	}
	f.state = Idle
	f.resetAt = time.Time{}
	return true
}
