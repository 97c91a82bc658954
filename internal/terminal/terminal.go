// Package terminal implements the portfolio's mini terminal: a fixed
// command table parsed from a single input line.
package terminal

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/jominkmathew/neonfolio/internal/portfolio"
	"github.com/jominkmathew/neonfolio/internal/viz"
)

type Kind int

const (
	KindCommand Kind = iota
	KindResult
	KindError
	KindSystem
)

type Line struct {
	Kind Kind
	Text string
}

// Result is the outcome of one command. Goto is the section to scroll to,
// empty when the command does not navigate.
type Result struct {
	Lines []Line
	Clear bool
	Goto  string
}

const (
	maxHistory  = 200
	clearedText = "Terminal cleared."
)

// GotoSections is the allow-list for goto.
var GotoSections = []string{"hero", "about", "experience", "skills", "projects", "contact"}

var jokes = []string{
	`"Why do programmers prefer dark mode? Because light attracts bugs."`,
	`"git commit -m \"fixed bug\" — narrator: he did not fix the bug."`,
	`"There are 10 types of people: those who understand binary and those who don't."`,
	`"// This code works. I don't know why."`,
	`"It works on my machine! — Every developer ever"`,
	`"A SQL query walks into a bar, sees two tables, and asks: Can I JOIN you?"`,
	`"Why was the JavaScript developer sad? Because he didn't Node how to Express himself."`,
}

type handler func(t *Terminal, args []string) Result

var commands = map[string]handler{
	"help":     (*Terminal).help,
	"about":    (*Terminal).about,
	"skills":   (*Terminal).skills,
	"contact":  (*Terminal).contact,
	"projects": (*Terminal).projects,
	"joke":     (*Terminal).joke,
	"time":     (*Terminal).time,
	"clear":    (*Terminal).clear,
	"goto":     (*Terminal).gotoSection,
}

// Commands lists the command names in sorted order.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type Terminal struct {
	rng     *rand.Rand
	now     func() time.Time
	history []Line
}

// New returns a terminal with an empty history. A nil rng or clock falls
// back to a seeded source and time.Now.
func New(rng *rand.Rand, now func() time.Time) *Terminal {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Terminal{rng: rng, now: now}
}

// Execute runs one input line and appends the echo and output to the
// history. Blank input is ignored.
func (t *Terminal) Execute(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{}
	}

	parts := strings.Fields(strings.ToLower(raw))
	name, args := parts[0], parts[1:]

	var res Result
	if h, ok := commands[name]; ok {
		res = h(t, args)
	} else {
		res = Result{Lines: []Line{{KindError, fmt.Sprintf("Command not found: %s. Type 'help' for commands.", name)}}}
	}

	if res.Clear {
		t.history = []Line{{KindSystem, clearedText}}
		return res
	}
	t.history = append(t.history, Line{KindCommand, "$ " + raw})
	t.history = append(t.history, res.Lines...)
	if over := len(t.history) - maxHistory; over > 0 {
		t.history = append(t.history[:0], t.history[over:]...)
	}
	return res
}

// History returns the scrollback, oldest first.
func (t *Terminal) History() []Line {
	out := make([]Line, len(t.history))
	copy(out, t.history)
	return out
}

func result(text ...string) Result {
	lines := make([]Line, len(text))
	for i, s := range text {
		lines[i] = Line{KindResult, s}
	}
	return Result{Lines: lines}
}

func (t *Terminal) help(_ []string) Result {
	return result(
		"Available commands:",
		"  about    - Who is Jomin?",
		"  skills   - Tech stack",
		"  contact  - Get in touch",
		"  projects - My work",
		"  joke     - Dev humor",
		"  goto <section> - Jump to section",
		"  time     - Current time",
		"  clear    - Clear terminal",
	)
}

func (t *Terminal) about(_ []string) Result {
	me := portfolio.Me
	return result(fmt.Sprintf("%s — %s @ %s. %s", me.Name, me.Role, me.Company, me.Summary))
}

func (t *Terminal) skills(_ []string) Result {
	lines := make([]string, len(portfolio.Skills))
	for i, s := range portfolio.Skills {
		lines[i] = fmt.Sprintf("%-8s %s %d%%", s.Name, viz.SkillBar(s.Percent, 10), s.Percent)
	}
	return result(lines...)
}

func (t *Terminal) contact(_ []string) Result {
	me := portfolio.Me
	return result("📧 "+me.Email, "📱 "+me.Phone, "🔗 "+me.GitHub, "📍 "+me.Location)
}

func (t *Terminal) projects(_ []string) Result {
	lines := make([]string, len(portfolio.Projects))
	for i, p := range portfolio.Projects {
		lines[i] = fmt.Sprintf("%d. %s", i+1, p.Name)
	}
	return result(lines...)
}

func (t *Terminal) joke(_ []string) Result {
	return result(jokes[t.rng.Intn(len(jokes))])
}

func (t *Terminal) time(_ []string) Result {
	return result(t.now().Format("1/2/2006, 3:04:05 PM"))
}

func (t *Terminal) clear(_ []string) Result {
	return Result{Clear: true, Lines: []Line{{KindSystem, clearedText}}}
}

func (t *Terminal) gotoSection(args []string) Result {
	if len(args) > 0 {
		for _, s := range GotoSections {
			if s == args[0] {
				res := result(fmt.Sprintf("Navigating to #%s...", s))
				res.Goto = s
				return res
			}
		}
	}
	return Result{Lines: []Line{{KindError, "Unknown section. Try: " + strings.Join(GotoSections, ", ")}}}
}
