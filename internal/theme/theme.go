package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/derive"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorGold   = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorSilver = lipgloss.AdaptiveColor{Dark: "#CED4DA", Light: "#718096"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the session detail content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TimerStyle renders the live session timer readout.
var TimerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// TipStyle renders the study tip line.
var TipStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// XPStyle renders the XP/level badge in the header.
var XPStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGold)

// DimmedStyle de-emphasizes completed tasks and secondary text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// CompletionStyle returns a color-coded style for a session's
// gold/silver/red completion status.
func CompletionStyle(status derive.CompletionStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case derive.StatusGold:
		return base.Foreground(ColorGold)
	case derive.StatusSilver:
		return base.Foreground(ColorSilver)
	case derive.StatusRed:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// DueStyle returns a style for a days-until-due readout: red when
// overdue, orange when due within two days, gray otherwise.
func DueStyle(daysLeft int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case daysLeft < 0:
		return base.Foreground(ColorRed)
	case daysLeft <= 2:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorGray)
	}
}

// GoalStyle returns a style for a task's goal label.
func GoalStyle(goal string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch goal {
	case "full":
		return base.Foreground(ColorGreen)
	case "partial":
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}
