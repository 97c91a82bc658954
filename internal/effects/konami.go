package effects

import (
	"strings"
	"time"
)

const OverlayDuration = 5 * time.Second

// KonamiSequence uses Bubble Tea key names.
var KonamiSequence = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

// Konami watches key presses for the sequence. Any wrong key drops the
// progress back to the start.
type Konami struct {
	pos int
}

// Press feeds one key and reports whether it completed the sequence.
func (k *Konami) Press(key string) bool {
	if len([]rune(key)) == 1 {
		key = strings.ToLower(key)
	}
	if key != KonamiSequence[k.pos] {
		k.pos = 0
		return false
	}
	k.pos++
	if k.pos == len(KonamiSequence) {
		k.pos = 0
		return true
	}
	return false
}

func (k *Konami) Progress() int { return k.pos }

// Overlay is a timed full-screen effect.
type Overlay struct {
	until time.Time
}

func (o *Overlay) Show(now time.Time) { o.until = now.Add(OverlayDuration) }

func (o *Overlay) Active(now time.Time) bool { return now.Before(o.until) }

func (o *Overlay) Hide() { o.until = time.Time{} }
