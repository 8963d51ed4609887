package sessionform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// SessionCreatedMsg is dispatched when a new session is created via the
// form. The session carries no ID; the caller assigns one.
type SessionCreatedMsg struct {
	Session model.Session
}

// SessionUpdatedMsg is dispatched when an existing session is updated
// via the form.
type SessionUpdatedMsg struct {
	Session model.Session
}

// SessionFormCancelMsg is dispatched when the user cancels the form.
type SessionFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	date     string
	duration string
	reminder int
}

// Model is the Bubble Tea model for the session create/edit form.
type Model struct {
	form            *huh.Form
	fb              *formBindings
	editMode        bool
	editing         model.Session
	reminderChoices []int
	width           int
	height          int
}

// New creates a new session form model. reminderChoices lists the
// selectable reminder intervals in seconds.
func New(reminderChoices []int, width, height int) Model {
	return Model{
		fb:              &formBindings{},
		reminderChoices: reminderChoices,
		width:           width,
		height:          height,
	}
}

// StartCreate initializes the form for planning a new session,
// defaulting the date to today.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editing = model.Session{}
	m.fb.date = time.Now().Format("2006-01-02")
	m.fb.duration = ""
	m.fb.reminder = 0
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing session.
func (m *Model) StartEdit(sess model.Session) tea.Cmd {
	m.editMode = true
	m.editing = sess
	m.fb.date = sess.Date
	m.fb.duration = strconv.Itoa(sess.Duration)
	m.fb.reminder = sess.ReminderInterval
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the session form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SessionFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the session form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Session"
	if m.editMode {
		titleText = "Edit Session"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Duration (minutes)").
				Placeholder("0").
				Value(&m.fb.duration).
				Validate(validateOptionalMinutes),
			huh.NewSelect[int]().
				Title("Reminder").
				Options(m.reminderOptions()...).
				Value(&m.fb.reminder),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) reminderOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("Off", 0)}
	for _, secs := range m.reminderChoices {
		opts = append(opts, huh.NewOption(
			fmt.Sprintf("Every %d min", secs/60), secs,
		))
	}
	return opts
}

func (m Model) handleSubmit() tea.Cmd {
	sess := model.Session{
		Date:             strings.TrimSpace(m.fb.date),
		ReminderInterval: m.fb.reminder,
	}
	if mins, err := strconv.Atoi(strings.TrimSpace(m.fb.duration)); err == nil && mins > 0 {
		sess.Duration = mins
	}

	if m.editMode {
		sess.ID = m.editing.ID
		sess.Tasks = m.editing.Tasks
		return func() tea.Msg { return SessionUpdatedMsg{Session: sess} }
	}
	return func() tea.Msg { return SessionCreatedMsg{Session: sess} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("minutes must be a non-negative number")
	}
	return nil
}
