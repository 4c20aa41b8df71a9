package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Frostpaw theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconBear    = "🐻‍❄️"
	IconSnow    = "❄️"
	IconSparkle = "✨"
	IconQuest   = "📋"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconHeart   = "💙"
	IconFood    = "🐟"
	IconSleep   = "💤"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconStreak  = "🔥"
)

var (
	cPrimary = lipgloss.Color("39")  // ice blue
	cAccent  = lipgloss.Color("51")  // cyan
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeEvolved = lipgloss.NewStyle().Bold(true).Foreground(cAccent).Render("EVOLVED")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// VitalText colors a 0-100 vital by how healthy it looks; invert flips the
// scale for vitals where high is bad (hunger).
func VitalText(value float64, invert bool) string {
	v := value
	if invert {
		v = 100 - v
	}
	text := fmt.Sprintf("%d", int(value))
	switch {
	case v >= 60:
		return Good.Render(text)
	case v >= 30:
		return Warn.Render(text)
	default:
		return Bad.Render(text)
	}
}

func StageText(stage string) string {
	switch strings.ToLower(strings.TrimSpace(stage)) {
	case "adult":
		return Gold.Render("adult")
	case "adolescent":
		return H2.Render("adolescent")
	case "juvenile":
		return Good.Render("juvenile")
	default:
		return Muted.Render("cub")
	}
}
