package assignmentlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/derive"
	"github.com/tpham/study-tracker/internal/keys"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// NewAssignmentMsg is sent when the user asks to create a new assignment.
type NewAssignmentMsg struct{}

// EditAssignmentMsg is sent when the user asks to edit the selected
// assignment.
type EditAssignmentMsg struct {
	Assignment model.Assignment
}

// DeleteAssignmentMsg is sent when the user deletes the selected
// assignment.
type DeleteAssignmentMsg struct {
	AssignmentID string
}

// Model is the assignment list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new assignment list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, NewDelegate(), width, height-2)
	l.Title = "Assignments"
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

// SetState rebuilds the list items from the application state, ordered
// by due date with the most urgent first.
func (m *Model) SetState(s model.AppState) {
	sorted := derive.SortByDueDate(s.Assignments)

	items := make([]list.Item, len(sorted))
	for i, a := range sorted {
		items[i] = AssignmentItem{Assignment: a}
	}
	m.list.SetItems(items)
}

// Update handles messages for the assignment list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewAssignmentMsg{} }

		case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(AssignmentItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return EditAssignmentMsg{Assignment: item.Assignment}
			}

		case key.Matches(msg, m.keys.Delete):
			item, ok := m.list.SelectedItem().(AssignmentItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return DeleteAssignmentMsg{AssignmentID: item.Assignment.ID}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the assignment list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no assignments exist yet.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No assignments yet.\n\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
