package effects

import (
	"fmt"
	"time"
)

const ToastLife = 4200 * time.Millisecond

// Milestones are the scroll percentages that earn a toast.
var Milestones = []int{25, 50, 75, 100}

var sectionAchievements = map[string]string{
	"hero":       "Welcome to the Matrix!",
	"about":      "Discovered About Section",
	"experience": "Work Experience Unlocked",
	"skills":     "Tech Stack Revealed!",
	"projects":   "Achievement: Project Explorer",
	"contact":    "Final Boss: Contact Form",
}

type Toast struct {
	Label string
	Msg   string
	Until time.Time
}

// Achievements hands out each toast at most once.
type Achievements struct {
	visited map[string]bool
	reached map[int]bool
	toasts  []Toast
}

func NewAchievements() *Achievements {
	return &Achievements{visited: map[string]bool{}, reached: map[int]bool{}}
}

// Visit records a section coming into view.
func (a *Achievements) Visit(section string, now time.Time) (Toast, bool) {
	msg, ok := sectionAchievements[section]
	if !ok || a.visited[section] {
		return Toast{}, false
	}
	a.visited[section] = true
	return a.push(msg, now), true
}

// Scroll records the scroll position in percent and returns any newly
// reached milestones.
func (a *Achievements) Scroll(pct int, now time.Time) []Toast {
	var out []Toast
	for _, m := range Milestones {
		if pct >= m && !a.reached[m] {
			a.reached[m] = true
			out = append(out, a.push(fmt.Sprintf("Scrolled %d%% of the page!", m), now))
		}
	}
	return out
}

func (a *Achievements) push(msg string, now time.Time) Toast {
	t := Toast{Label: "Achievement", Msg: msg, Until: now.Add(ToastLife)}
	a.toasts = append(a.toasts, t)
	return t
}

// Active drops expired toasts and returns the rest, oldest first.
func (a *Achievements) Active(now time.Time) []Toast {
	live := a.toasts[:0]
	for _, t := range a.toasts {
		if now.Before(t.Until) {
			live = append(live, t)
		}
	}
	a.toasts = live
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}
