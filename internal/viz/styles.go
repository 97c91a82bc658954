package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Panel is the rounded glass box every widget sits in.
func Panel(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)
}

func Title(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
}

func Subtle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

func Accent(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

func Good(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Success)
}

func Bad(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Error)
}

func Warn(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err := colorful.Hex(string(startColor))
	if err != nil {
		return text
	}
	to, err := colorful.Hex(string(endColor))
	if err != nil {
		return text
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLuv(to, t).Clamped()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return result.String()
}

// ProgressBar renders a filled/empty bar. Colour follows the level.
func ProgressBar(t Theme, percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return Bad(t).Render(bar)
	case percent > 0.5:
		return Warn(t).Render(bar)
	}
	return Good(t).Render(bar)
}

// SkillBar is the terminal-style "Java ██████████ 90%" bar.
func SkillBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	// newest values on the right
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) * float64(len(chars)-1) / span)
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

// Separator is a decorative rule.
func Separator(t Theme, width int) string {
	if width < 8 {
		return Subtle(t).Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle(t).Render(left + " ◆ " + right)
}
