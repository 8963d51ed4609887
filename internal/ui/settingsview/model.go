package settingsview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// SettingsSavedMsg is dispatched when the user saves the settings form.
type SettingsSavedMsg struct {
	Settings model.Settings
}

// SettingsCancelMsg is dispatched when the user leaves without saving.
type SettingsCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	notifications bool
	theme         string
	pedometer     bool
}

// Model is the settings editor view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new settings view model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form from the current settings.
func (m *Model) Start(s model.Settings) tea.Cmd {
	m.fb.notifications = s.NotificationsEnabled
	m.fb.theme = s.Theme
	m.fb.pedometer = s.PedometerEnabled
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		settings := model.Settings{
			NotificationsEnabled: m.fb.notifications,
			Theme:                m.fb.theme,
			PedometerEnabled:     m.fb.pedometer,
		}
		return m, func() tea.Msg { return SettingsSavedMsg{Settings: settings} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SettingsCancelMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n" + m.form.View()

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
			huh.NewConfirm().
				Title("Study reminders").
				Affirmative("On").
				Negative("Off").
				Value(&m.fb.notifications),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Auto", model.ThemeAuto),
					huh.NewOption("Dark", model.ThemeDark),
					huh.NewOption("Light", model.ThemeLight),
				).
				Value(&m.fb.theme),
			huh.NewConfirm().
				Title("Break suggestions").
				Affirmative("On").
				Negative("Off").
				Value(&m.fb.pedometer),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
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
