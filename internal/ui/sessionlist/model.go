package sessionlist

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/keys"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// SelectedSessionMsg is sent when the user opens a session's detail view.
type SelectedSessionMsg struct {
	SessionID string
}

// NewSessionMsg is sent when the user asks to create a new session.
type NewSessionMsg struct{}

// EditSessionMsg is sent when the user asks to edit the selected session.
type EditSessionMsg struct {
	Session model.Session
}

// DeleteSessionMsg is sent when the user deletes the selected session.
type DeleteSessionMsg struct {
	SessionID string
}

// OpenTodayMsg is sent when the user jumps to today's session.
type OpenTodayMsg struct{}

// Model is the study session list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new session list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, SessionDelegate{}, width, height-2)
	l.Title = "Study Sessions"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetState rebuilds the list items from the application state, most
// recent session first. The selection index is preserved where possible.
func (m *Model) SetState(s model.AppState) {
	sessions := make([]model.Session, len(s.Sessions))
	copy(sessions, s.Sessions)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})

	items := make([]list.Item, len(sessions))
	for i, sess := range sessions {
		items[i] = SessionItem{
			Session: sess,
			Seconds: s.ActiveTimers[sess.ID],
		}
	}
	m.list.SetItems(items)
}

// Update handles messages for the session list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(SessionItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedSessionMsg{SessionID: item.Session.ID}
			}

		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewSessionMsg{} }

		case key.Matches(msg, m.keys.Edit):
			item, ok := m.list.SelectedItem().(SessionItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return EditSessionMsg{Session: item.Session}
			}

		case key.Matches(msg, m.keys.Delete):
			item, ok := m.list.SelectedItem().(SessionItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return DeleteSessionMsg{SessionID: item.Session.ID}
			}

		case key.Matches(msg, m.keys.Today):
			return m, func() tea.Msg { return OpenTodayMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the session list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no sessions exist yet.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render(
		"No study sessions yet.\n\n" +
			"Press n to plan one, or t to start today's session.",
	)
}

// SelectedSession returns the currently highlighted session, if any.
func (m Model) SelectedSession() (model.Session, bool) {
	item, ok := m.list.SelectedItem().(SessionItem)
	if !ok {
		return model.Session{}, false
	}
	return item.Session, true
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
