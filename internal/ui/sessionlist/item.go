package sessionlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tpham/study-tracker/internal/derive"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// SessionItem wraps a model.Session for display in the list.
type SessionItem struct {
	Session model.Session

	// Seconds is the elapsed timer value for this session, or zero
	// when no timer is active.
	Seconds int
}

// FilterValue returns the string used for list filtering.
func (i SessionItem) FilterValue() string {
	return i.Session.Date
}

// Title returns the session date as the primary display string.
func (i SessionItem) Title() string {
	return derive.FormatDate(i.Session.Date)
}

// Description returns the secondary display string.
func (i SessionItem) Description() string {
	return derive.FormatMinutes(i.Session.Duration)
}

// SessionDelegate renders session items in the list.
type SessionDelegate struct{}

// Height returns the height of each list item.
func (d SessionDelegate) Height() int { return 1 }

// Spacing returns the spacing between list items.
func (d SessionDelegate) Spacing() int { return 0 }

// Update handles item-level messages (none needed).
func (d SessionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single session item.
func (d SessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(SessionItem)
	if !ok {
		return
	}

	status := derive.SessionStatus(si.Session)
	badge := theme.CompletionStyle(status).Render(statusGlyph(status))

	done := 0
	for _, t := range si.Session.Tasks {
		if t.Completed {
			done++
		}
	}
	tasks := fmt.Sprintf("%d/%d tasks", done, len(si.Session.Tasks))

	line := fmt.Sprintf("%s %s  %s  %s",
		badge,
		si.Title(),
		derive.FormatMinutes(si.Session.Duration),
		theme.DimmedStyle.Render(tasks),
	)

	if si.Seconds > 0 {
		line += "  " + theme.TimerStyle.Render("⏱ "+derive.FormatTimer(si.Seconds))
	}
	if si.Session.ReminderInterval > 0 {
		line += "  " + theme.DimmedStyle.Render(
			fmt.Sprintf("🔔 %dm", si.Session.ReminderInterval/60),
		)
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

// statusGlyph maps a completion status to its display glyph.
func statusGlyph(status derive.CompletionStatus) string {
	switch status {
	case derive.StatusGold:
		return "●"
	case derive.StatusSilver:
		return "◐"
	default:
		return "○"
	}
}

var _ list.ItemDelegate = SessionDelegate{}
