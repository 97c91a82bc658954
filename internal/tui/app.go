package tui

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jominkmathew/neonfolio/internal/chat"
	"github.com/jominkmathew/neonfolio/internal/config"
	"github.com/jominkmathew/neonfolio/internal/contact"
	"github.com/jominkmathew/neonfolio/internal/effects"
	"github.com/jominkmathew/neonfolio/internal/feed"
	"github.com/jominkmathew/neonfolio/internal/particle"
	"github.com/jominkmathew/neonfolio/internal/portfolio"
	"github.com/jominkmathew/neonfolio/internal/schedule"
	"github.com/jominkmathew/neonfolio/internal/terminal"
	"github.com/jominkmathew/neonfolio/internal/viz"
	"github.com/jominkmathew/neonfolio/internal/voice"
)

type screen int

const (
	screenBoot screen = iota
	screenMain
)

type pane int

const (
	paneNone pane = iota
	paneTerminal
	paneChat
)

const (
	taskFrame = "frame"
	taskRain  = "rain"

	timerBootLine = "boot-line"
	timerBootDone = "boot-done"
	timerType     = "typewriter"
	timerPipeline = "pipeline"
	timerChat     = "chat-reply"
	timerScramble = "scramble"
	timerVoiceGo  = "voice-goto"
	timerReset    = "form-reset"

	headerRows = 2
	footerRows = 3
	heroRows   = 6
	chatMax    = 40
)

// Options configure a Model. Zero values fall back to defaults.
type Options struct {
	Config     *config.Config
	Rand       *rand.Rand
	Now        func() time.Time
	Recognizer voice.Recognizer
	// Mailer overrides the relay built from Config.
	Mailer   contact.Mailer
	SkipBoot bool
	Section  string
}

type sendResultMsg struct{ err error }

// voiceMsg carries one recognizer event; closed reports the stream ended.
type voiceMsg struct {
	t      voice.Transcript
	closed bool
}

// overlay lets a second field draw on a canvas without wiping the first.
type overlay struct{ *viz.Canvas }

func (overlay) Clear() {}

type Model struct {
	cfg   *config.Config
	rng   *rand.Rand
	now   func() time.Time
	keys  keyMap
	help  help.Model
	theme viz.Theme

	screen  screen
	section int
	pane    pane
	width   int
	height  int

	sched *schedule.Scheduler

	boot *feed.Boot
	rain *effects.Rain

	backdrop   *viz.Canvas
	heroCanvas *viz.Canvas
	network    *particle.Field
	name       *particle.Field
	trail      *particle.Field
	bdX, bdY   int
	heroX      int
	heroY      int

	typewriter *effects.Typewriter
	scramble   *effects.Scramble
	heading    string

	api          *feed.APILog
	git          *feed.GitFeed
	db           *feed.DBQueries
	metrics      *feed.ServerMetrics
	containers   *feed.Containers
	pipeline     *feed.Pipeline
	feedsStarted bool

	project int
	flipped map[int]bool

	term      *terminal.Terminal
	termInput textinput.Model
	termView  viewport.Model

	chat      *chat.Session
	chatInput textinput.Model
	chatView  viewport.Model
	spinner   spinner.Model

	form       *contact.Form
	formInputs []textinput.Model
	formFocus  int
	formActive bool
	formErr    error

	voice      *voice.Controller
	voiceNote  voice.Feedback
	voiceUntil time.Time
	// voiceWait is set while a command is reading the recognizer stream.
	voiceWait bool

	konami       effects.Konami
	overlay      effects.Overlay
	achievements *effects.Achievements
	toasts       []effects.Toast
}

func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		cfg:          cfg,
		rng:          rng,
		now:          now,
		keys:         defaultKeys(),
		help:         help.New(),
		theme:        resolveTheme(cfg.Theme, now()),
		width:        80,
		height:       24,
		sched:        schedule.New(),
		boot:         feed.NewBoot(rng),
		rain:         effects.NewRain(rng, effects.BootGlyphs, 80, 10),
		backdrop:     viz.NewCanvas(1, 1),
		heroCanvas:   viz.NewCanvas(1, 1),
		typewriter:   effects.NewTypewriter(portfolio.Titles),
		api:          feed.NewAPILog(),
		git:          feed.NewGitFeed(rng),
		db:           feed.NewDBQueries(),
		metrics:      feed.NewServerMetrics(rng),
		containers:   feed.NewContainers(rng),
		pipeline:     feed.NewPipeline(),
		flipped:      map[int]bool{},
		term:         terminal.New(rng, now),
		chat:         chat.NewSession(chat.New(), chatMax),
		voice:        voice.NewController(opts.Recognizer),
		achievements: effects.NewAchievements(),
	}

	var err error
	shift := m.theme.ParticleHue
	if m.network, err = particle.New(cfg.Field("network").Shifted(shift), rng); err != nil {
		return nil, err
	}
	if m.name, err = particle.New(cfg.Field("name").Shifted(shift), rng); err != nil {
		return nil, err
	}
	if m.trail, err = particle.New(cfg.Field("trail").Shifted(shift), rng); err != nil {
		return nil, err
	}

	mailer := opts.Mailer
	if mailer == nil {
		mailer = cfg.Mailer()
	}
	m.form = contact.NewForm(mailer)

	m.termInput = newInput("$ ", "type 'help'")
	m.termView = viewport.New(40, 10)
	m.chatInput = newInput("› ", chat.Chips[0])
	m.chatView = viewport.New(40, 10)
	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.MiniDot
	m.formInputs = []textinput.Model{
		newInput("name    ", "Your name"),
		newInput("email   ", "you@example.com"),
		newInput("subject ", "Let's build something"),
		newInput("message ", "Hello Jomin..."),
	}

	m.sched.Add(taskFrame, cfg.FrameInterval(), m.frame)
	m.sched.Add(taskRain, effects.RainInterval, func(time.Time) { m.rain.Step() })
	if cfg.Feeds.Enabled {
		for _, f := range m.feeds() {
			m.sched.Add(f.Name(), f.Interval(), f.Tick)
		}
	}

	if opts.SkipBoot {
		m.screen = screenMain
	}
	if i := portfolio.IndexOf(opts.Section); i >= 0 {
		m.section = i
	}
	return m, nil
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = 280
	return ti
}

func resolveTheme(name string, now time.Time) viz.Theme {
	if name == "" || name == config.DefaultTheme {
		return viz.ThemeAt(now)
	}
	return viz.GetTheme(name)
}

func (m *Model) feeds() []feed.Feed {
	return []feed.Feed{m.api, m.git, m.db, m.metrics, m.containers}
}

func (m *Model) Init() tea.Cmd {
	if m.screen == screenMain {
		return m.enterMain()
	}
	return tea.Batch(
		m.sched.Start(taskRain),
		m.nextBootLine(),
		schedule.After(timerBootDone, feed.HideLoaderAfter, nil),
	)
}

func (m *Model) nextBootLine() tea.Cmd {
	if _, delay, ok := m.boot.Next(); ok {
		return schedule.After(timerBootLine, delay, nil)
	}
	return nil
}

// enterMain leaves the boot screen and starts the page animations.
func (m *Model) enterMain() tea.Cmd {
	m.screen = screenMain
	m.sched.Stop(taskRain)
	cmds := []tea.Cmd{
		m.sched.Start(taskFrame),
		schedule.After(timerType, effects.TypeDelay, nil),
		m.spinner.Tick,
	}
	if m.cfg.Feeds.Enabled {
		cmds = append(cmds, m.sched.Start(m.containers.Name()))
	}
	cmds = append(cmds, m.visit(m.now()))
	log.Printf("main screen, section=%s", portfolio.Sections[m.section].ID)
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.sched.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.BlurMsg:
		m.network.PointerLeave()
		m.name.PointerLeave()
		return m, nil

	case schedule.TimerMsg:
		return m, m.handleTimer(msg)

	case sendResultMsg:
		m.form.Complete(msg.err, m.now())
		if msg.err != nil {
			log.Printf("contact relay failed: %v", msg.err)
		} else {
			for i := range m.formInputs {
				m.formInputs[i].Reset()
			}
		}
		return m, schedule.After(timerReset, contact.ResetDelay, nil)

	case voiceMsg:
		return m, m.handleVoice(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleTimer(msg schedule.TimerMsg) tea.Cmd {
	switch msg.Name {
	case timerBootLine:
		if m.screen == screenBoot {
			return m.nextBootLine()
		}
	case timerBootDone:
		if m.screen == screenBoot {
			return m.enterMain()
		}
	case timerType:
		return schedule.After(timerType, m.typewriter.Step(), nil)
	case timerPipeline:
		return schedule.After(timerPipeline, m.pipeline.Advance(), nil)
	case timerChat:
		m.chat.Respond()
		m.refreshChat()
	case timerScramble:
		if m.scramble == nil {
			return nil
		}
		frame, done := m.scramble.Step()
		m.heading = frame
		if done {
			m.scramble = nil
			return nil
		}
		return schedule.After(timerScramble, effects.ScrambleInterval, nil)
	case timerVoiceGo:
		if id, ok := msg.Payload.(string); ok {
			return m.gotoSection(id)
		}
	case timerReset:
		m.form.Expire(msg.At)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.screen == screenBoot {
		// Any key skips the boot console.
		return m.enterMain()
	}

	if m.konami.Press(msg.String()) {
		m.overlay.Show(m.now())
		m.rain = effects.NewRain(m.rng, effects.KonamiGlyphs, m.width, m.height)
		log.Printf("konami overlay")
		return m.sched.Start(taskRain)
	}

	switch {
	case m.pane == paneTerminal:
		return m.terminalKey(msg)
	case m.pane == paneChat:
		return m.chatKey(msg)
	case m.formActive:
		return m.formKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		return m.setSection(m.section + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.setSection(m.section - 1)
	case key.Matches(msg, m.keys.Up):
		if m.project > 0 {
			m.project--
		}
	case key.Matches(msg, m.keys.Down):
		if m.project < len(portfolio.Projects)-1 {
			m.project++
		}
	case key.Matches(msg, m.keys.Select):
		return m.selectInSection()
	case key.Matches(msg, m.keys.Terminal):
		m.openPane(paneTerminal)
		return textinput.Blink
	case key.Matches(msg, m.keys.Chat):
		m.openPane(paneChat)
		return textinput.Blink
	case key.Matches(msg, m.keys.Voice):
		return m.toggleVoice()
	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
	case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		return m.setSection(int(msg.Runes[0] - '1'))
	}
	return nil
}

func (m *Model) selectInSection() tea.Cmd {
	switch portfolio.Sections[m.section].ID {
	case "projects":
		m.flipped[m.project] = !m.flipped[m.project]
	case "contact":
		m.formActive = true
		m.formFocus = 0
		return m.focusField()
	}
	return nil
}

func (m *Model) openPane(p pane) {
	m.pane = p
	m.termInput.Blur()
	m.chatInput.Blur()
	switch p {
	case paneTerminal:
		m.termInput.Focus()
		m.refreshTerminal()
	case paneChat:
		m.chatInput.Focus()
		m.refreshChat()
	}
	m.layout()
}

func (m *Model) closePane() {
	m.pane = paneNone
	m.termInput.Blur()
	m.chatInput.Blur()
	m.layout()
}

func (m *Model) terminalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePane()
		return nil
	case tea.KeyEnter:
		res := m.term.Execute(m.termInput.Value())
		m.termInput.Reset()
		m.refreshTerminal()
		if res.Goto != "" {
			return m.gotoSection(res.Goto)
		}
		return nil
	}
	var cmd tea.Cmd
	m.termInput, cmd = m.termInput.Update(msg)
	return cmd
}

func (m *Model) chatKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePane()
		return nil
	case tea.KeyEnter:
		q := m.chatInput.Value()
		if q == "" {
			q = m.chatInput.Placeholder
		}
		m.chatInput.Reset()
		if !m.chat.Ask(q) {
			return nil
		}
		m.refreshChat()
		return tea.Batch(schedule.After(timerChat, chat.TypingDelay(m.rng), nil), m.spinner.Tick)
	case tea.KeyTab:
		m.chatInput.SetValue(chat.Chips[m.rng.Intn(len(chat.Chips))])
		m.chatInput.CursorEnd()
		return nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return cmd
}

func (m *Model) formKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.formActive = false
		m.formInputs[m.formFocus].Blur()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case msg.Type == tea.KeyEnter:
		if m.formFocus == len(m.formInputs)-1 {
			return m.submit()
		}
		return m.moveFocus(1)
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		return m.moveFocus(1)
	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		return m.moveFocus(-1)
	}
	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return cmd
}

func (m *Model) moveFocus(d int) tea.Cmd {
	m.formInputs[m.formFocus].Blur()
	n := len(m.formInputs)
	m.formFocus = (m.formFocus + d + n) % n
	return m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	return m.formInputs[m.formFocus].Focus()
}

// submit validates the form and hands the send to a command so the relay
// call never blocks Update.
func (m *Model) submit() tea.Cmd {
	m.form.Fields = contact.Message{
		Name:    strings.TrimSpace(m.formInputs[0].Value()),
		Email:   strings.TrimSpace(m.formInputs[1].Value()),
		Subject: strings.TrimSpace(m.formInputs[2].Value()),
		Body:    strings.TrimSpace(m.formInputs[3].Value()),
	}
	msg, err := m.form.Submit()
	m.formErr = err
	if err != nil {
		log.Printf("contact submit rejected: %v", err)
		return nil
	}
	form, timeout := m.form, m.cfg.SendTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sendResultMsg{err: form.Transmit(ctx, msg)}
	}
}

func (m *Model) toggleVoice() tea.Cmd {
	fb, err := m.voice.Toggle(context.Background())
	if errors.Is(err, voice.ErrUnsupported) {
		m.setVoiceNote(voice.Feedback{Text: "Speech not supported here", Duration: voice.FeedbackDuration, Error: true})
		return nil
	}
	if err != nil {
		m.setVoiceNote(voice.Feedback{Text: "✗ " + err.Error(), Duration: voice.FeedbackDuration, Error: true})
		return nil
	}
	if !m.voice.Listening() {
		return nil
	}
	m.setVoiceNote(fb)
	return m.readVoice()
}

// readVoice keeps exactly one reader on the recognizer stream.
func (m *Model) readVoice() tea.Cmd {
	if m.voiceWait {
		return nil
	}
	ch := m.voice.Results()
	if ch == nil {
		return nil
	}
	m.voiceWait = true
	return func() tea.Msg {
		t, ok := <-ch
		return voiceMsg{t: t, closed: !ok}
	}
}

func (m *Model) handleVoice(msg voiceMsg) tea.Cmd {
	m.voiceWait = false
	if msg.closed {
		return nil
	}
	next := m.readVoice()
	fb, show := m.voice.Handle(msg.t)
	if !show {
		return next
	}
	m.setVoiceNote(fb)
	if fb.Section != "" {
		return tea.Batch(next, schedule.After(timerVoiceGo, voice.ScrollDelay, fb.Section))
	}
	return next
}

func (m *Model) setVoiceNote(fb voice.Feedback) {
	m.voiceNote = fb
	m.voiceUntil = m.now().Add(fb.Duration)
}

func (m *Model) cycleTheme() {
	names := viz.ThemeNames()
	next := names[0]
	for i, n := range names {
		if n == m.theme.Name {
			next = names[(i+1)%len(names)]
		}
	}
	t := viz.GetTheme(next)
	delta := t.ParticleHue - m.theme.ParticleHue
	m.theme = t
	for _, f := range []*particle.Field{m.network, m.name, m.trail} {
		f.ShiftHue(delta)
	}
}

func (m *Model) gotoSection(id string) tea.Cmd {
	i := portfolio.IndexOf(id)
	if i < 0 {
		return nil
	}
	return m.setSection(i)
}

func (m *Model) setSection(i int) tea.Cmd {
	if i < 0 || i >= len(portfolio.Sections) || i == m.section {
		return nil
	}
	m.section = i
	m.formActive = false
	m.layout()
	return m.visit(m.now())
}

// visit runs the scroll-into-view behaviour for the current section:
// achievements, the heading scramble and lazily started feeds.
func (m *Model) visit(now time.Time) tea.Cmd {
	sec := portfolio.Sections[m.section]
	if _, ok := m.achievements.Visit(sec.ID, now); ok {
		log.Printf("achievement: %s", sec.ID)
	}
	pct := 100
	if n := len(portfolio.Sections); n > 1 {
		pct = m.section * 100 / (n - 1)
	}
	m.achievements.Scroll(pct, now)
	m.toasts = m.achievements.Active(now)

	m.scramble = effects.NewScramble(m.rng, sec.Title)
	m.heading, _ = m.scramble.Step()
	cmds := []tea.Cmd{schedule.After(timerScramble, effects.ScrambleInterval, nil)}

	if sec.ID == "playground" && !m.feedsStarted {
		m.feedsStarted = true
		cmds = append(cmds, schedule.After(timerPipeline, m.pipeline.Advance(), nil))
		if m.cfg.Feeds.Enabled {
			for _, f := range m.feeds() {
				if f.Name() == m.containers.Name() {
					continue
				}
				f.Start(now)
				cmds = append(cmds, m.sched.Start(f.Name()))
			}
		}
	}
	return tea.Batch(cmds...)
}

// frame is the animation tick.
func (m *Model) frame(now time.Time) {
	if m.network.Running() {
		m.network.Step()
		m.network.Render()
	}
	if m.trail.Running() {
		m.trail.Step()
		m.trail.Render()
	}
	if m.name.Running() && portfolio.Sections[m.section].ID == "hero" {
		m.name.Step()
		m.name.Render()
	}
	m.toasts = m.achievements.Active(now)
	m.form.Expire(now)
	if t, ok := m.sched.Task(taskRain); ok && t.Running() && !m.overlay.Active(now) {
		m.sched.Stop(taskRain)
	}
}

func (m *Model) quit() tea.Cmd {
	m.network.Stop()
	m.name.Stop()
	m.trail.Stop()
	m.sched.StopAll()
	return tea.Quit
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return
	}
	if x, y, ok := toPixels(msg.X, msg.Y, m.bdX, m.bdY, m.backdrop); ok && m.pane == paneNone {
		m.network.PointerMove(x, y)
		m.trail.PointerMove(x, y)
	} else {
		m.network.PointerLeave()
		m.trail.PointerLeave()
	}
	if x, y, ok := toPixels(msg.X, msg.Y, m.heroX, m.heroY, m.heroCanvas); ok && portfolio.Sections[m.section].ID == "hero" {
		m.name.PointerMove(x, y)
	} else {
		m.name.PointerLeave()
	}
}

// toPixels maps a terminal cell onto the centre of its braille sub-pixel
// block in canvas c placed at (ox, oy).
func toPixels(cx, cy, ox, oy int, c *viz.Canvas) (float64, float64, bool) {
	lx, ly := cx-ox, cy-oy
	if lx < 0 || ly < 0 || lx >= c.Width || ly >= c.Height {
		return 0, 0, false
	}
	return float64(lx*2) + 1, float64(ly*4) + 2, true
}

// layout sizes the canvases and panes for the current window.
func (m *Model) layout() {
	bodyH := max(m.height-headerRows-footerRows, 6)
	leftW := m.width * 3 / 5
	rightW := max(m.width-leftW-1, 10)

	m.bdX, m.bdY = leftW+1, headerRows
	m.backdrop.Resize(rightW, bodyH)
	bw, bh := m.backdrop.PixelSize()
	if m.network.Inert() {
		m.network.Initialize(m.backdrop, bw, bh)
		m.trail.Initialize(overlay{m.backdrop}, bw, bh)
	} else {
		m.network.Resize(bw, bh)
		m.trail.Resize(bw, bh)
	}

	m.heroX, m.heroY = 0, headerRows+2
	m.heroCanvas.Resize(max(leftW-2, 10), heroRows)
	hw, hh := m.heroCanvas.PixelSize()
	if m.name.Inert() {
		m.name.Initialize(m.heroCanvas, hw, hh)
	} else {
		m.name.Resize(hw, hh)
	}

	paneW := max(rightW-4, 10)
	m.termInput.Width = paneW - 4
	m.chatInput.Width = paneW - 4
	m.termView.Width, m.termView.Height = paneW, max(bodyH-4, 3)
	m.chatView.Width, m.chatView.Height = paneW, max(bodyH-5, 3)
	for i := range m.formInputs {
		m.formInputs[i].Width = max(leftW-14, 10)
	}
	m.help.Width = m.width
	m.rain.Resize(m.width, max(m.height-12, 4))
	m.refreshTerminal()
	m.refreshChat()
}

func (m *Model) refreshTerminal() {
	m.termView.SetContent(m.renderTerminalHistory())
	m.termView.GotoBottom()
}

func (m *Model) refreshChat() {
	m.chatView.SetContent(m.renderChatHistory())
	m.chatView.GotoBottom()
}

// Section is the id of the section on screen.
func (m *Model) Section() string { return portfolio.Sections[m.section].ID }
