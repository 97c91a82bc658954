package effects

import (
	"math/rand"
	"strings"
	"time"
)

const (
	TypeDelay   = 55 * time.Millisecond
	DeleteDelay = 25 * time.Millisecond
	HoldDelay   = 2200 * time.Millisecond

	ScrambleInterval = 30 * time.Millisecond
)

// Typewriter types each title out, holds it, deletes it and moves on.
type Typewriter struct {
	titles   [][]rune
	idx      int
	chars    int
	deleting bool
}

func NewTypewriter(titles []string) *Typewriter {
	t := &Typewriter{}
	for _, s := range titles {
		if s != "" {
			t.titles = append(t.titles, []rune(s))
		}
	}
	return t
}

// Step advances one character and returns the delay before the next Step.
func (t *Typewriter) Step() time.Duration {
	if len(t.titles) == 0 {
		return HoldDelay
	}
	cur := t.titles[t.idx]
	if !t.deleting {
		t.chars++
		if t.chars >= len(cur) {
			t.chars = len(cur)
			t.deleting = true
			return HoldDelay
		}
		return TypeDelay
	}
	t.chars--
	if t.chars <= 0 {
		t.chars = 0
		t.deleting = false
		t.idx = (t.idx + 1) % len(t.titles)
	}
	return DeleteDelay
}

// Text is what is currently on screen.
func (t *Typewriter) Text() string {
	if len(t.titles) == 0 {
		return ""
	}
	return string(t.titles[t.idx][:t.chars])
}

func (t *Typewriter) Index() int { return t.idx }

var ScrambleGlyphs = []rune("!@#$%^&*()_+-=[]{}|;:<>?/~`01")

// Scramble reveals text left to right, filling the unrevealed tail with
// random glyphs. Spaces are never scrambled.
type Scramble struct {
	rng   *rand.Rand
	text  []rune
	iter  int
	total int
}

func NewScramble(rng *rand.Rand, text string) *Scramble {
	r := []rune(text)
	return &Scramble{rng: rng, text: r, total: len(r) * 2}
}

// Step returns the next frame. done is true once the plain text is shown.
func (s *Scramble) Step() (frame string, done bool) {
	if s.iter > s.total {
		return string(s.text), true
	}
	var b strings.Builder
	for i, ch := range s.text {
		switch {
		case ch == ' ':
			b.WriteRune(' ')
		case i*2 < s.iter:
			b.WriteRune(ch)
		default:
			b.WriteRune(ScrambleGlyphs[s.rng.Intn(len(ScrambleGlyphs))])
		}
	}
	s.iter++
	if s.iter > s.total {
		return string(s.text), true
	}
	return b.String(), false
}
