package sessiondetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/derive"
	"github.com/tpham/study-tracker/internal/keys"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/pedometer"
	"github.com/tpham/study-tracker/internal/theme"
)

// StartPauseTimerMsg is sent when the user starts or pauses the
// session timer.
type StartPauseTimerMsg struct {
	SessionID string
}

// ResetTimerMsg is sent when the user resets the session timer to zero.
type ResetTimerMsg struct {
	SessionID string
}

// ToggleTaskMsg is sent when the user toggles a task's completion.
type ToggleTaskMsg struct {
	SessionID string
	TaskID    string
}

// NewTaskMsg is sent when the user asks to add a task to the session.
type NewTaskMsg struct {
	SessionID string
}

// EditTaskMsg is sent when the user asks to edit the selected task.
type EditTaskMsg struct {
	SessionID string
	Task      model.Task
}

// DeleteTaskMsg is sent when the user removes the selected task.
type DeleteTaskMsg struct {
	SessionID string
	TaskID    string
}

// CycleReminderMsg is sent when the user cycles the session's reminder
// interval through the configured choices.
type CycleReminderMsg struct {
	SessionID string
}

// ClosedMsg is sent when the user leaves the detail view.
type ClosedMsg struct{}

// Model is the session detail view component. It shows one session's
// tasks, live timer, and reminder settings.
type Model struct {
	sessionID string
	state     model.AppState
	keys      *keys.KeyMap
	tip       string
	running   bool
	cursor    int
	width     int
	height    int
}

// New creates a new session detail model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// Open points the view at a session and resets the task cursor.
func (m *Model) Open(sessionID string) {
	m.sessionID = sessionID
	m.cursor = 0
}

// SessionID returns the ID of the session being shown.
func (m Model) SessionID() string {
	return m.sessionID
}

// SetState stores the latest application state snapshot.
func (m *Model) SetState(s model.AppState) {
	m.state = s
	if sess, ok := m.session(); ok && m.cursor >= len(sess.Tasks) {
		m.cursor = len(sess.Tasks) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
}

// SetRunning records whether the session's timer goroutine is active.
func (m *Model) SetRunning(running bool) {
	m.running = running
}

// SetTip sets the study tip line shown at the bottom of the panel.
func (m *Model) SetTip(tip string) {
	m.tip = tip
}

// session looks up the viewed session in the current state.
func (m Model) session() (model.Session, bool) {
	for _, s := range m.state.Sessions {
		if s.ID == m.sessionID {
			return s, true
		}
	}
	return model.Session{}, false
}

// Update handles messages for the session detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sess, found := m.session()
	if !found {
		if key.Matches(keyMsg, m.keys.Back) {
			return m, func() tea.Msg { return ClosedMsg{} }
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return ClosedMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(sess.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.StartPause):
		id := sess.ID
		return m, func() tea.Msg { return StartPauseTimerMsg{SessionID: id} }

	case key.Matches(keyMsg, m.keys.ResetTimer):
		id := sess.ID
		return m, func() tea.Msg { return ResetTimerMsg{SessionID: id} }

	case key.Matches(keyMsg, m.keys.Reminder):
		id := sess.ID
		return m, func() tea.Msg { return CycleReminderMsg{SessionID: id} }

	case key.Matches(keyMsg, m.keys.New):
		id := sess.ID
		return m, func() tea.Msg { return NewTaskMsg{SessionID: id} }

	case key.Matches(keyMsg, m.keys.Toggle):
		if task, ok := m.selectedTask(sess); ok {
			id, taskID := sess.ID, task.ID
			return m, func() tea.Msg {
				return ToggleTaskMsg{SessionID: id, TaskID: taskID}
			}
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Edit):
		if task, ok := m.selectedTask(sess); ok {
			id := sess.ID
			return m, func() tea.Msg {
				return EditTaskMsg{SessionID: id, Task: task}
			}
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Delete):
		if task, ok := m.selectedTask(sess); ok {
			id, taskID := sess.ID, task.ID
			return m, func() tea.Msg {
				return DeleteTaskMsg{SessionID: id, TaskID: taskID}
			}
		}
		return m, nil
	}

	return m, nil
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask(sess model.Session) (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(sess.Tasks) {
		return model.Task{}, false
	}
	return sess.Tasks[m.cursor], true
}

// View renders the session detail panel.
func (m Model) View() string {
	sess, found := m.session()
	if !found {
		return theme.DimmedStyle.Render("Session not found.")
	}

	var b strings.Builder

	status := derive.SessionStatus(sess)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Bold(true).Render(derive.FormatDate(sess.Date)),
		theme.CompletionStyle(status).Render(string(status)),
	))
	b.WriteString("\n\n")

	b.WriteString(m.renderTimer(sess))
	b.WriteString("\n")
	b.WriteString(m.renderReminder(sess))
	b.WriteString("\n\n")

	b.WriteString(m.renderTasks(sess))

	if m.state.Settings.PedometerEnabled &&
		pedometer.SuggestBreak(0, sess.Duration) {
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render(
			"You've been at it a while. Stretch your legs?",
		))
		b.WriteString("\n")
	}

	if m.tip != "" {
		b.WriteString("\n")
		b.WriteString(theme.TipStyle.Render("💡 " + m.tip))
		b.WriteString("\n")
	}

	return theme.DetailPanelStyle.Width(m.width - 4).Render(b.String())
}

// renderTimer draws the elapsed timer and logged duration line.
func (m Model) renderTimer(sess model.Session) string {
	secs := m.state.ActiveTimers[sess.ID]

	timer := derive.FormatTimer(secs)
	if m.running {
		timer = "▶ " + timer
	} else if secs > 0 {
		timer = "⏸ " + timer
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.TimerStyle.Render(timer),
		theme.DimmedStyle.Render(
			"   logged "+derive.FormatMinutes(sess.Duration),
		),
	)
}

// renderReminder draws the reminder interval line.
func (m Model) renderReminder(sess model.Session) string {
	if sess.ReminderInterval <= 0 {
		return theme.DimmedStyle.Render("🔔 reminders off  (r to cycle)")
	}
	return theme.DimmedStyle.Render(fmt.Sprintf(
		"🔔 remind every %d min  (r to cycle)",
		sess.ReminderInterval/60,
	))
}

// renderTasks draws the task list with the cursor and goal labels.
func (m Model) renderTasks(sess model.Session) string {
	if len(sess.Tasks) == 0 {
		return theme.DimmedStyle.Render("No tasks yet. Press n to add one.") + "\n"
	}

	var b strings.Builder
	for i, t := range sess.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		goal := theme.GoalStyle(t.Goal).Render(goalLabel(t))

		line := fmt.Sprintf("%s%s %s  %s", cursor, check, t.Name, goal)
		if name, ok := m.assignmentName(t.AssignmentID); ok {
			line += theme.DimmedStyle.Render("  → " + name)
		}

		if t.Completed {
			line = theme.DimmedStyle.Render(line)
		} else if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// goalLabel formats a task's goal for display, including the partial
// contribution percentage.
func goalLabel(t model.Task) string {
	if t.Goal == model.GoalPartial {
		pct := t.PartialPercent
		if pct == 0 {
			pct = 50
		}
		return fmt.Sprintf("partial %d%%", pct)
	}
	return t.Goal
}

// assignmentName resolves a task's linked assignment name.
func (m Model) assignmentName(assignmentID string) (string, bool) {
	if assignmentID == "" {
		return "", false
	}
	for _, a := range m.state.Assignments {
		if a.ID == assignmentID {
			return a.Name, true
		}
	}
	return "", false
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
