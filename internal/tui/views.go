package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/jominkmathew/neonfolio/internal/chat"
	"github.com/jominkmathew/neonfolio/internal/contact"
	"github.com/jominkmathew/neonfolio/internal/feed"
	"github.com/jominkmathew/neonfolio/internal/portfolio"
	"github.com/jominkmathew/neonfolio/internal/terminal"
	"github.com/jominkmathew/neonfolio/internal/viz"
)

const (
	konamiBanner   = "🎮 KONAMI CODE ACTIVATED 🎮"
	selectedMarker = "▸ "
)

var (
	navStyle  = lipgloss.NewStyle().Padding(0, 1)
	bodyStyle = lipgloss.NewStyle().PaddingLeft(1)
)

func (m *Model) View() string {
	if m.screen == screenBoot {
		return m.viewBoot()
	}
	now := m.now()
	if m.overlay.Active(now) {
		return m.viewKonami()
	}

	bodyH := max(m.height-headerRows-footerRows, 6)
	leftW := m.width * 3 / 5

	left := lipgloss.NewStyle().Width(leftW).Height(bodyH).MaxHeight(bodyH).
		Render(bodyStyle.Render(m.viewSection(now, leftW-2)))

	var right string
	switch m.pane {
	case paneTerminal:
		right = m.viewTerminal()
	case paneChat:
		right = m.viewChat()
	default:
		right = m.backdrop.String()
	}
	right = lipgloss.NewStyle().MaxHeight(bodyH).Render(right)

	var s strings.Builder
	s.WriteString(m.viewNav())
	s.WriteString("\n")
	s.WriteString(viz.Separator(m.theme, m.width))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	s.WriteString("\n")
	s.WriteString(m.viewFooter(now))
	return s.String()
}

func (m *Model) viewBoot() string {
	var s strings.Builder
	rain := viz.Good(m.theme).Faint(true)
	for _, row := range m.rain.Rows() {
		s.WriteString(rain.Render(row) + "\n")
	}
	s.WriteString("\n")
	for _, l := range m.boot.Shown() {
		s.WriteString("  " + bootStyle(m.theme, l.Kind).Render(l.Text) + "\n")
	}
	s.WriteString("\n  " + viz.ProgressBar(m.theme, m.boot.Progress(), 30))
	s.WriteString(viz.Subtle(m.theme).Render(fmt.Sprintf(" %3.0f%%  any key to skip", m.boot.Progress()*100)))
	return s.String()
}

func bootStyle(t viz.Theme, k feed.LineKind) lipgloss.Style {
	switch k {
	case feed.LineCmd:
		return viz.Accent(t)
	case feed.LineSuccess:
		return viz.Good(t)
	case feed.LineInfo:
		return viz.Title(t)
	case feed.LineWarn:
		return viz.Warn(t)
	}
	return lipgloss.NewStyle().Foreground(t.Text)
}

func (m *Model) viewKonami() string {
	rain := viz.Good(m.theme)
	var s strings.Builder
	s.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, viz.Title(m.theme).Render(konamiBanner)))
	s.WriteString("\n")
	s.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, viz.Subtle(m.theme).Render("↑↑↓↓←→←→BA")))
	s.WriteString("\n")
	for _, row := range m.rain.Rows() {
		s.WriteString(rain.Render(row) + "\n")
	}
	return s.String()
}

func (m *Model) viewNav() string {
	var parts []string
	for i, sec := range portfolio.Sections {
		label := fmt.Sprintf("%d %s", i+1, sec.Nav)
		if i == m.section {
			parts = append(parts, navStyle.Inherit(viz.Title(m.theme)).Underline(true).Render(label))
		} else {
			parts = append(parts, navStyle.Inherit(viz.Subtle(m.theme)).Render(label))
		}
	}
	mic := "🎤"
	if m.voice.Listening() {
		mic = viz.Bad(m.theme).Render("● REC")
	} else if !m.voice.Available() {
		mic = viz.Subtle(m.theme).Render("🎤✗")
	}
	brand := viz.GradientText("<JKM/>", m.theme.Primary, m.theme.Secondary)
	return brand + " " + strings.Join(parts, "") + "  " + mic
}

func (m *Model) viewFooter(now time.Time) string {
	var toast string
	if n := len(m.toasts); n > 0 {
		t := m.toasts[n-1]
		toast = viz.Warn(m.theme).Render("🏆 "+t.Label) + " " + t.Msg
	}
	var note string
	if m.voiceNote.Text != "" && now.Before(m.voiceUntil) {
		if m.voiceNote.Error {
			note = viz.Bad(m.theme).Render(m.voiceNote.Text)
		} else {
			note = viz.Good(m.theme).Render(m.voiceNote.Text)
		}
	}
	return toast + "\n" + note + "\n" + m.help.View(m.keys)
}

func (m *Model) viewHeading() string {
	h := m.heading
	if h == "" {
		h = portfolio.Sections[m.section].Title
	}
	return viz.Title(m.theme).Render(h)
}

func (m *Model) viewSection(now time.Time, w int) string {
	switch portfolio.Sections[m.section].ID {
	case "hero":
		return m.viewHero()
	case "about":
		return m.viewAbout()
	case "experience":
		return m.viewExperience()
	case "skills":
		return m.viewSkills(w)
	case "projects":
		return m.viewProjects()
	case "playground":
		return m.viewPlayground(now, w)
	case "contact":
		return m.viewContact()
	}
	return ""
}

func (m *Model) viewHero() string {
	var s strings.Builder
	s.WriteString(viz.Subtle(m.theme).Render("Hi, I'm") + "\n")
	s.WriteString(viz.GradientText(strings.ToUpper(portfolio.Me.Name), m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(m.heroCanvas.String() + "\n")
	s.WriteString(viz.Accent(m.theme).Render("$ ") + m.typewriter.Text() + viz.Title(m.theme).Blink(true).Render("▌") + "\n\n")
	s.WriteString(portfolio.Me.Role + " @ " + portfolio.Me.Company + "\n")
	s.WriteString(viz.Subtle(m.theme).Render(portfolio.Me.Summary))
	return s.String()
}

func (m *Model) viewAbout() string {
	var s strings.Builder
	s.WriteString(m.viewHeading() + "\n\n")
	for _, l := range portfolio.About {
		s.WriteString(l + "\n")
	}
	s.WriteString("\n")
	rows := [][2]string{
		{"location", portfolio.Me.Location},
		{"email", portfolio.Me.Email},
		{"phone", portfolio.Me.Phone},
		{"github", portfolio.Me.GitHub},
	}
	label := viz.Subtle(m.theme).Width(10)
	for _, r := range rows {
		s.WriteString(label.Render(r[0]) + r[1] + "\n")
	}
	return s.String()
}

func (m *Model) viewExperience() string {
	var s strings.Builder
	s.WriteString(m.viewHeading() + "\n\n")
	for _, j := range portfolio.Experience {
		s.WriteString(viz.Accent(m.theme).Render(j.Title) + "\n")
		s.WriteString(j.Company + viz.Subtle(m.theme).Render("  "+j.Period) + "\n")
		for _, p := range j.Points {
			s.WriteString("  • " + p + "\n")
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) viewSkills(w int) string {
	var s strings.Builder
	s.WriteString(m.viewHeading() + "\n\n")
	barW := max(min(w-20, 30), 5)
	for _, sk := range portfolio.Skills {
		fmt.Fprintf(&s, "%-10s %s %d%%\n", sk.Name, viz.Accent(m.theme).Render(viz.SkillBar(sk.Percent, barW)), sk.Percent)
	}
	return s.String()
}

func (m *Model) viewProjects() string {
	var s strings.Builder
	s.WriteString(m.viewHeading() + "\n\n")
	for i, p := range portfolio.Projects {
		marker := "  "
		name := p.Name
		if i == m.project {
			marker = selectedMarker
			name = viz.Title(m.theme).Render(name)
		}
		s.WriteString(marker + name + "\n")
		if m.flipped[i] {
			s.WriteString("    " + p.Back + "\n")
			s.WriteString("    " + viz.Accent(m.theme).Render(strings.Join(p.Stack, " · ")) + "\n")
		} else {
			s.WriteString("    " + viz.Subtle(m.theme).Render(p.Front) + "\n")
		}
	}
	return s.String()
}

func (m *Model) viewPlayground(now time.Time, w int) string {
	var s strings.Builder
	s.WriteString(m.viewHeading() + "\n")
	if !m.cfg.Feeds.Enabled {
		s.WriteString(viz.Subtle(m.theme).Render("\nfeeds disabled"))
		return s.String()
	}

	sub := viz.Subtle(m.theme)
	s.WriteString(sub.Render("uptime ") + m.metrics.Uptime() + "\n")
	for _, k := range []feed.Metric{feed.CPU, feed.RAM} {
		if chart := metricChart(m.metrics.History(k), k, min(m.cfg.Feeds.HistoryWidth, w-10)); chart != "" {
			s.WriteString(viz.Accent(m.theme).Render(chart) + "\n")
		}
	}
	for _, k := range []feed.Metric{feed.Disk, feed.Net} {
		fmt.Fprintf(&s, "%-5s %s %5.1f%%\n", k, viz.ProgressBar(m.theme, m.metrics.Value(k)/100, 20), m.metrics.Value(k))
	}

	s.WriteString("\n" + viz.Title(m.theme).Render("API") + "\n")
	for _, c := range m.api.Entries() {
		fmt.Fprintf(&s, "%s %-6s %s %s\n", sub.Render(c.Timestamp()), c.Method, c.URL, apiStatus(m.theme, c.Status).Render(c.Status+" "+c.Latency))
	}
	s.WriteString("\n" + viz.Title(m.theme).Render("GIT") + "\n")
	for _, c := range m.git.Entries() {
		s.WriteString(viz.Warn(m.theme).Render(c.Hash) + " " + c.Msg + sub.Render(" ("+c.Branch+", "+c.Age+")") + "\n")
	}
	s.WriteString("\n" + viz.Title(m.theme).Render("DB") + "\n")
	for _, q := range m.db.Entries() {
		s.WriteString(q.SQL + sub.Render(" "+q.Rows+" "+q.Latency) + "\n")
	}
	s.WriteString("\n" + viz.Title(m.theme).Render("DOCKER") + "\n")
	for _, c := range m.containers.Snapshot(now) {
		status := viz.Good(m.theme).Render(c.Status)
		if c.Status == feed.SyncingText {
			status = viz.Warn(m.theme).Render(c.Status)
		}
		fmt.Fprintf(&s, "%-15s :%-5d %s\n", c.Name, c.Port, status)
	}
	s.WriteString("\n" + m.viewPipeline() + "\n")
	return s.String()
}

func apiStatus(t viz.Theme, status string) lipgloss.Style {
	if strings.HasPrefix(status, "2") {
		return viz.Good(t)
	}
	return viz.Bad(t)
}

// metricChart plots the recent history of one metric. Fewer than two
// samples plot nothing.
func metricChart(history []float64, k feed.Metric, width int) string {
	if len(history) < 2 {
		return ""
	}
	if width < 10 {
		width = 10
	}
	return asciigraph.Plot(history,
		asciigraph.Height(3),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%s %.1f%%", k, history[len(history)-1])),
	)
}

func (m *Model) viewPipeline() string {
	parts := make([]string, len(m.pipeline.Stages))
	for i, st := range m.pipeline.Stages {
		if m.pipeline.Lit(i) {
			parts[i] = viz.Good(m.theme).Render("● " + st)
		} else {
			parts[i] = viz.Subtle(m.theme).Render("○ " + st)
		}
	}
	return strings.Join(parts, viz.Subtle(m.theme).Render(" → "))
}

func (m *Model) viewContact() string {
	var s strings.Builder
	s.WriteString(m.viewHeading() + "\n\n")
	s.WriteString(viz.Subtle(m.theme).Render(portfolio.Me.Email+"  "+portfolio.Me.Phone) + "\n\n")
	for i := range m.formInputs {
		s.WriteString(m.formInputs[i].View() + "\n")
	}
	s.WriteString("\n")

	label := "[ " + m.form.ButtonLabel() + " ]"
	switch m.form.State() {
	case contact.Sent:
		s.WriteString(viz.Good(m.theme).Render(label))
	case contact.Failed:
		s.WriteString(viz.Bad(m.theme).Render(label))
	case contact.Transmitting:
		s.WriteString(m.spinner.View() + " " + viz.Warn(m.theme).Render(label))
	default:
		if m.formActive {
			s.WriteString(viz.Title(m.theme).Render(label))
		} else {
			s.WriteString(viz.Subtle(m.theme).Render(label + "  enter to write"))
		}
	}
	s.WriteString("\n")

	if st := m.form.Status(); st != "" {
		if m.form.State() == contact.Failed {
			s.WriteString(viz.Bad(m.theme).Render(st))
		} else {
			s.WriteString(viz.Good(m.theme).Render(st))
		}
	} else if m.formErr != nil {
		s.WriteString(viz.Warn(m.theme).Render(m.formErr.Error()))
	}
	return s.String()
}

func (m *Model) viewTerminal() string {
	title := viz.Title(m.theme).Render("jomin@portfolio:~")
	body := title + "\n" + m.termView.View() + "\n" + m.termInput.View()
	return viz.Panel(m.theme).Render(body)
}

func (m *Model) renderTerminalHistory() string {
	var s strings.Builder
	s.WriteString(viz.Subtle(m.theme).Render("Type 'help' for available commands.") + "\n")
	for _, l := range m.term.History() {
		var st lipgloss.Style
		switch l.Kind {
		case terminal.KindCommand:
			st = viz.Accent(m.theme)
		case terminal.KindError:
			st = viz.Bad(m.theme)
		case terminal.KindSystem:
			st = viz.Subtle(m.theme)
		default:
			st = lipgloss.NewStyle().Foreground(m.theme.Text)
		}
		s.WriteString(st.Render(l.Text) + "\n")
	}
	return lipgloss.NewStyle().Width(m.termView.Width).Render(s.String())
}

func (m *Model) viewChat() string {
	title := viz.Title(m.theme).Render("jomin.ai") + viz.Subtle(m.theme).Render("  tab: suggestion")
	status := ""
	if m.chat.Typing() {
		status = m.spinner.View() + viz.Subtle(m.theme).Render(" typing...")
	}
	body := title + "\n" + m.chatView.View() + "\n" + status + "\n" + m.chatInput.View()
	return viz.Panel(m.theme).Render(body)
}

func (m *Model) renderChatHistory() string {
	var s strings.Builder
	s.WriteString(viz.Subtle(m.theme).Render(chat.Greeting) + "\n")
	for _, msg := range m.chat.Messages() {
		if msg.User {
			s.WriteString(viz.Accent(m.theme).Render("you › ") + msg.Text + "\n")
		} else {
			s.WriteString(viz.Title(m.theme).Render("ai  › ") + msg.Text + "\n")
		}
	}
	return lipgloss.NewStyle().Width(m.chatView.Width).Render(s.String())
}
