package assignmentform

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

// AssignmentCreatedMsg is dispatched when a new assignment is created
// via the form. The assignment carries no ID; the caller assigns one.
type AssignmentCreatedMsg struct {
	Assignment model.Assignment
}

// AssignmentUpdatedMsg is dispatched when an existing assignment is
// updated via the form.
type AssignmentUpdatedMsg struct {
	Assignment model.Assignment
}

// ProgressOverrideMsg is dispatched when the user manually sets an
// assignment's progress from the edit form.
type ProgressOverrideMsg struct {
	AssignmentID string
	Progress     int
}

// AssignmentFormCancelMsg is dispatched when the user cancels the form.
type AssignmentFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	dueDate  string
	progress string
}

// Model is the Bubble Tea model for the assignment create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editing  model.Assignment
	width    int
	height   int
}

// New creates a new assignment form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new assignment.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editing = model.Assignment{}
	m.fb.name = ""
	m.fb.dueDate = ""
	m.fb.progress = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing assignment.
func (m *Model) StartEdit(a model.Assignment) tea.Cmd {
	m.editMode = true
	m.editing = a
	m.fb.name = a.Name
	m.fb.dueDate = a.DueDate
	m.fb.progress = strconv.Itoa(a.Progress)
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the assignment form.
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
		return m, func() tea.Msg { return AssignmentFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the assignment form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Assignment"
	if m.editMode {
		titleText = "Edit Assignment"
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
			Placeholder("Course or assignment name").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.dueDate).
			Validate(validateDate),
	}
	if m.editMode {
		fields = append(fields,
			huh.NewInput().
				Title("Progress %").
				Placeholder("0-100").
				Value(&m.fb.progress).
				Validate(validatePercent),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	a := model.Assignment{
		Name:    strings.TrimSpace(m.fb.name),
		DueDate: strings.TrimSpace(m.fb.dueDate),
	}

	if m.editMode {
		a.ID = m.editing.ID
		a.Progress = m.editing.Progress

		if pct, err := strconv.Atoi(strings.TrimSpace(m.fb.progress)); err == nil && pct != m.editing.Progress {
			override := pct
			return tea.Batch(
				func() tea.Msg { return AssignmentUpdatedMsg{Assignment: a} },
				func() tea.Msg {
					return ProgressOverrideMsg{AssignmentID: a.ID, Progress: override}
				},
			)
		}
		return func() tea.Msg { return AssignmentUpdatedMsg{Assignment: a} }
	}
	return func() tea.Msg { return AssignmentCreatedMsg{Assignment: a} }
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

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validatePercent(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}
