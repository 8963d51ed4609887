package taskform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is created via the form.
// The task carries no ID; the caller assigns one.
type TaskCreatedMsg struct {
	SessionID string
	Task      model.Task
}

// TaskUpdatedMsg is dispatched when an existing task is updated via the
// form.
type TaskUpdatedMsg struct {
	SessionID string
	Task      model.Task
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name         string
	description  string
	goal         string
	percent      string
	assignmentID string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      string
	sessionID   string
	assignments []model.Assignment
	width       int
	height      int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{goal: model.GoalFull},
		width:  width,
		height: height,
	}
}

// SetAssignments sets the assignments selectable for linking.
func (m *Model) SetAssignments(assignments []model.Assignment) {
	m.assignments = assignments
}

// StartCreate initializes the form for adding a task to a session.
func (m *Model) StartCreate(sessionID string) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.sessionID = sessionID
	m.fb.name = ""
	m.fb.description = ""
	m.fb.goal = model.GoalFull
	m.fb.percent = ""
	m.fb.assignmentID = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(sessionID string, task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.sessionID = sessionID
	m.fb.name = task.Name
	m.fb.description = task.Description
	m.fb.goal = task.Goal
	if task.PartialPercent > 0 {
		m.fb.percent = strconv.Itoa(task.PartialPercent)
	} else {
		m.fb.percent = ""
	}
	m.fb.assignmentID = task.AssignmentID
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
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
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
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
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("What will you work on?").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Goal").
			Options(
				huh.NewOption("Full (finishes the assignment)", model.GoalFull),
				huh.NewOption("Partial (moves it forward)", model.GoalPartial),
			).
			Value(&m.fb.goal),
		huh.NewInput().
			Title("Partial contribution %").
			Placeholder("50 (partial goal only)").
			Value(&m.fb.percent).
			Validate(validateOptionalPercent),
	}
	fields = append(fields, m.assignmentField())

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) assignmentField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, a := range m.assignments {
		opts = append(opts, huh.NewOption(a.Name, a.ID))
	}
	return huh.NewSelect[string]().
		Title("Assignment").
		Options(opts...).
		Value(&m.fb.assignmentID)
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Name:         strings.TrimSpace(m.fb.name),
		Description:  m.fb.description,
		Goal:         m.fb.goal,
		AssignmentID: m.fb.assignmentID,
	}
	if task.Goal == model.GoalPartial {
		if pct, err := strconv.Atoi(strings.TrimSpace(m.fb.percent)); err == nil {
			task.PartialPercent = pct
		}
	}

	sessionID := m.sessionID
	if m.editMode {
		task.ID = m.editID
		return func() tea.Msg {
			return TaskUpdatedMsg{SessionID: sessionID, Task: task}
		}
	}
	return func() tea.Msg {
		return TaskCreatedMsg{SessionID: sessionID, Task: task}
	}
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalPercent(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 100 {
		return fmt.Errorf("percent must be between 1 and 100")
	}
	return nil
}
