package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/tpham/study-tracker/internal/keys"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/notify"
	"github.com/tpham/study-tracker/internal/state"
	storage "github.com/tpham/study-tracker/internal/store"
	"github.com/tpham/study-tracker/internal/timer"
	"github.com/tpham/study-tracker/internal/tip"
	"github.com/tpham/study-tracker/internal/ui"
	"github.com/tpham/study-tracker/internal/ui/assignmentform"
	"github.com/tpham/study-tracker/internal/ui/assignmentlist"
	"github.com/tpham/study-tracker/internal/ui/helpview"
	"github.com/tpham/study-tracker/internal/ui/sessiondetail"
	"github.com/tpham/study-tracker/internal/ui/sessionform"
	"github.com/tpham/study-tracker/internal/ui/sessionlist"
	"github.com/tpham/study-tracker/internal/ui/settingsview"
	"github.com/tpham/study-tracker/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewSessions ViewState = iota
	ViewDetail
	ViewAssignments
	ViewSessionForm
	ViewTaskForm
	ViewAssignmentForm
	ViewSettings
	ViewHelp
)

// flashDuration is how long a reminder message stays in the status bar.
const flashDuration = 10 * time.Second

// Model is the root Bubble Tea model. It routes messages between views,
// dispatches actions into the state store, and runs the timer and
// reminder side effects the pure reducer cannot perform.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cfg          *model.AppConfig
	store        *state.Store
	gateway      storage.Gateway
	runner       *timer.Runner
	scheduler    *notify.CronScheduler
	tips         *tip.Client
	keys         *keys.KeyMap
	stateCh      chan model.AppState

	sessionList    sessionlist.Model
	sessionDetail  sessiondetail.Model
	assignmentList assignmentlist.Model
	sessionForm    sessionform.Model
	taskForm       taskform.Model
	assignmentForm assignmentform.Model
	settingsView   settingsview.Model
	helpView       helpview.Model

	ready       bool
	unreadCount int
	flash       string
}

// New creates the root application model wired to the given store,
// persistence gateway, and reminder scheduler.
func New(
	cfg *model.AppConfig,
	st *state.Store,
	gw storage.Gateway,
	sched *notify.CronScheduler,
) Model {
	k := keys.DefaultKeyMap()

	ch := make(chan model.AppState, 16)
	st.Subscribe(func(s model.AppState) {
		select {
		case ch <- s:
		default:
			// Channel is full; drop the oldest snapshot so the
			// latest one wins.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	})

	return Model{
		currentView:    ViewSessions,
		cfg:            cfg,
		store:          st,
		gateway:        gw,
		runner:         timer.New(st),
		scheduler:      sched,
		tips:           tip.NewClient(cfg.Tip.URL, time.Duration(cfg.Tip.TimeoutSec)*time.Second),
		keys:           k,
		stateCh:        ch,
		sessionList:    sessionlist.New(k, 80, 24),
		sessionDetail:  sessiondetail.New(k, 80, 24),
		assignmentList: assignmentlist.New(k, 80, 24),
		sessionForm:    sessionform.New(cfg.ReminderChoicesSec, 80, 24),
		taskForm:       taskform.New(80, 24),
		assignmentForm: assignmentform.New(80, 24),
		settingsView:   settingsview.New(80, 24),
		helpView:       helpview.New(k, 80, 24),
	}
}

// Init loads the persisted state and starts the background listeners.
func (m Model) Init() tea.Cmd {
	m.scheduler.Start()
	return tea.Batch(
		m.loadPersisted(),
		m.waitForState(),
		m.waitForReminder(),
		m.fetchTip(),
		m.fetchUnreadCount(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.sessionList.SetSize(w, h)
		m.sessionDetail.SetSize(w, h)
		m.assignmentList.SetSize(w, h)
		m.sessionForm.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.assignmentForm.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case stateLoadedMsg:
		m.applyState(msg.state)
		// Re-arm reminders for sessions that had one configured when
		// the app last ran. Timers never auto-resume.
		for _, sess := range msg.state.Sessions {
			if sess.ReminderInterval > 0 {
				m.scheduler.ScheduleReminder(sess.ReminderInterval, sess.ID)
			}
		}
		return m, nil

	case stateChangedMsg:
		m.applyState(msg.state)
		return m, m.waitForState()

	case reminderFiredMsg:
		m.flash = msg.reminder.Message
		return m, tea.Batch(
			m.waitForReminder(),
			m.markReminderRead(msg.reminder.ID),
			clearFlashAfter(flashDuration),
		)

	case flashClearMsg:
		m.flash = ""
		return m, nil

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case tipLoadedMsg:
		m.sessionDetail.SetTip(msg.tip.Text)
		return m, nil

	case sessionlist.SelectedSessionMsg:
		return m.openDetail(msg.SessionID)

	case sessionlist.NewSessionMsg:
		m.previousView = m.currentView
		m.currentView = ViewSessionForm
		return m, m.sessionForm.StartCreate()

	case sessionlist.EditSessionMsg:
		m.previousView = m.currentView
		m.currentView = ViewSessionForm
		return m, m.sessionForm.StartEdit(msg.Session)

	case sessionlist.DeleteSessionMsg:
		m.runner.Stop(msg.SessionID)
		m.scheduler.CancelReminders(msg.SessionID)
		m.store.Dispatch(state.DeleteSession{SessionID: msg.SessionID})
		return m, nil

	case sessionlist.OpenTodayMsg:
		return m.openToday()

	case sessiondetail.ClosedMsg:
		m.currentView = ViewSessions
		return m, nil

	case sessiondetail.StartPauseTimerMsg:
		if m.runner.Running(msg.SessionID) {
			m.runner.Stop(msg.SessionID)
		} else {
			m.runner.Start(msg.SessionID)
		}
		m.sessionDetail.SetRunning(m.runner.Running(msg.SessionID))
		return m, nil

	case sessiondetail.ResetTimerMsg:
		m.store.Dispatch(state.ResetTimer{SessionID: msg.SessionID})
		return m, nil

	case sessiondetail.CycleReminderMsg:
		m.cycleReminder(msg.SessionID)
		return m, nil

	case sessiondetail.ToggleTaskMsg:
		m.store.Dispatch(state.ToggleTaskComplete{
			SessionID: msg.SessionID,
			TaskID:    msg.TaskID,
		})
		return m, nil

	case sessiondetail.NewTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewTaskForm
		m.taskForm.SetAssignments(m.store.State().Assignments)
		return m, m.taskForm.StartCreate(msg.SessionID)

	case sessiondetail.EditTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewTaskForm
		m.taskForm.SetAssignments(m.store.State().Assignments)
		return m, m.taskForm.StartEdit(msg.SessionID, msg.Task)

	case sessiondetail.DeleteTaskMsg:
		m.store.Dispatch(state.DeleteTask{
			SessionID: msg.SessionID,
			TaskID:    msg.TaskID,
		})
		return m, nil

	case sessionform.SessionCreatedMsg:
		m.currentView = m.previousView
		sess := msg.Session
		sess.ID = uuid.NewString()
		m.store.Dispatch(state.AddSession{Session: sess})
		if sess.ReminderInterval > 0 {
			m.scheduler.ScheduleReminder(sess.ReminderInterval, sess.ID)
		}
		return m, nil

	case sessionform.SessionUpdatedMsg:
		m.currentView = m.previousView
		m.store.Dispatch(state.UpdateSession{Session: msg.Session})
		m.rescheduleReminder(msg.Session)
		return m, nil

	case sessionform.SessionFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case taskform.TaskCreatedMsg:
		m.currentView = ViewDetail
		task := msg.Task
		task.ID = uuid.NewString()
		m.store.Dispatch(state.AddTask{SessionID: msg.SessionID, Task: task})
		return m, nil

	case taskform.TaskUpdatedMsg:
		m.currentView = ViewDetail
		m.replaceTask(msg.SessionID, msg.Task)
		return m, nil

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewDetail
		return m, nil

	case assignmentlist.NewAssignmentMsg:
		m.previousView = m.currentView
		m.currentView = ViewAssignmentForm
		return m, m.assignmentForm.StartCreate()

	case assignmentlist.EditAssignmentMsg:
		m.previousView = m.currentView
		m.currentView = ViewAssignmentForm
		return m, m.assignmentForm.StartEdit(msg.Assignment)

	case assignmentlist.DeleteAssignmentMsg:
		m.store.Dispatch(state.DeleteAssignment{AssignmentID: msg.AssignmentID})
		return m, nil

	case assignmentform.AssignmentCreatedMsg:
		m.currentView = ViewAssignments
		a := msg.Assignment
		a.ID = uuid.NewString()
		m.store.Dispatch(state.AddAssignment{Assignment: a})
		return m, nil

	case assignmentform.AssignmentUpdatedMsg:
		m.currentView = ViewAssignments
		m.store.Dispatch(state.UpdateAssignment{Assignment: msg.Assignment})
		return m, nil

	case assignmentform.ProgressOverrideMsg:
		m.store.Dispatch(state.UpdateAssignmentProgress{
			AssignmentID: msg.AssignmentID,
			Progress:     msg.Progress,
		})
		return m, nil

	case assignmentform.AssignmentFormCancelMsg:
		m.currentView = ViewAssignments
		return m, nil

	case settingsview.SettingsSavedMsg:
		m.currentView = m.previousView
		m.applySettings(msg.Settings)
		return m, nil

	case settingsview.SettingsCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.shutdown()

		case "q":
			if m.currentView == ViewSessions || m.currentView == ViewAssignments {
				return m, m.shutdown()
			}

		case "?":
			if m.isFormView() {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "a":
			if m.currentView == ViewSessions {
				m.previousView = m.currentView
				m.currentView = ViewAssignments
				return m, nil
			}

		case "s":
			if m.currentView == ViewSessions {
				m.previousView = m.currentView
				m.currentView = ViewSettings
				return m, m.settingsView.Start(m.store.State().Settings)
			}

		case "esc":
			switch m.currentView {
			case ViewAssignments, ViewHelp:
				m.currentView = ViewSessions
				return m, nil
			}
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewSessions:
		m.sessionList, cmd = m.sessionList.Update(msg)
	case ViewDetail:
		m.sessionDetail, cmd = m.sessionDetail.Update(msg)
	case ViewAssignments:
		m.assignmentList, cmd = m.assignmentList.Update(msg)
	case ViewSessionForm:
		m.sessionForm, cmd = m.sessionForm.Update(msg)
	case ViewTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewAssignmentForm:
		m.assignmentForm, cmd = m.assignmentForm.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// applyState pushes a state snapshot into every view that renders it.
func (m *Model) applyState(s model.AppState) {
	m.sessionList.SetState(s)
	m.sessionDetail.SetState(s)
	m.sessionDetail.SetRunning(m.runner.Running(m.sessionDetail.SessionID()))
	m.assignmentList.SetState(s)
}

// openDetail switches to the detail view for the given session.
func (m Model) openDetail(sessionID string) (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewDetail
	m.sessionDetail.Open(sessionID)
	m.sessionDetail.SetState(m.store.State())
	m.sessionDetail.SetRunning(m.runner.Running(sessionID))

	if m.unreadCount > 0 {
		return m, m.markAllRead()
	}
	return m, nil
}

// openToday jumps to today's session, creating it first if needed.
func (m Model) openToday() (tea.Model, tea.Cmd) {
	today := time.Now().Format("2006-01-02")
	for _, sess := range m.store.State().Sessions {
		if sess.Date == today {
			return m.openDetail(sess.ID)
		}
	}

	sess := model.Session{ID: uuid.NewString(), Date: today}
	m.store.Dispatch(state.AddSession{Session: sess})
	return m.openDetail(sess.ID)
}

// cycleReminder advances the session's reminder interval through
// off and the configured choices, updating both state and scheduler.
func (m *Model) cycleReminder(sessionID string) {
	sess, ok := m.findSession(sessionID)
	if !ok {
		return
	}

	choices := append([]int{0}, m.cfg.ReminderChoicesSec...)
	next := choices[0]
	for i, c := range choices {
		if c == sess.ReminderInterval {
			next = choices[(i+1)%len(choices)]
			break
		}
	}

	m.store.Dispatch(state.UpdateReminderInterval{
		SessionID:   sessionID,
		IntervalSec: next,
	})
	if next > 0 {
		m.scheduler.ScheduleReminder(next, sessionID)
	} else {
		m.scheduler.CancelReminders(sessionID)
	}
}

// rescheduleReminder syncs the scheduler with a session's reminder
// interval after an edit.
func (m *Model) rescheduleReminder(sess model.Session) {
	if sess.ReminderInterval > 0 {
		m.scheduler.ScheduleReminder(sess.ReminderInterval, sess.ID)
		return
	}
	m.scheduler.CancelReminders(sess.ID)
}

// replaceTask swaps a task in place, preserving its completion state.
// Delete-then-add keeps the linked assignment progress consistent on
// both the old and new assignment link.
func (m *Model) replaceTask(sessionID string, task model.Task) {
	sess, ok := m.findSession(sessionID)
	if !ok {
		return
	}
	for _, t := range sess.Tasks {
		if t.ID == task.ID {
			task.Completed = t.Completed
			break
		}
	}

	m.store.Dispatch(state.DeleteTask{SessionID: sessionID, TaskID: task.ID})
	m.store.Dispatch(state.AddTask{SessionID: sessionID, Task: task})
}

// applySettings dispatches the full settings patch and cancels all
// reminders when notifications were switched off.
func (m *Model) applySettings(s model.Settings) {
	notifications := s.NotificationsEnabled
	theme := s.Theme
	pedometer := s.PedometerEnabled
	m.store.Dispatch(state.UpdateSettings{Patch: model.SettingsPatch{
		NotificationsEnabled: &notifications,
		Theme:                &theme,
		PedometerEnabled:     &pedometer,
	}})

	if !notifications {
		for _, sess := range m.store.State().Sessions {
			m.scheduler.CancelReminders(sess.ID)
		}
	}
}

// findSession looks up a session in the current state.
func (m Model) findSession(sessionID string) (model.Session, bool) {
	for _, sess := range m.store.State().Sessions {
		if sess.ID == sessionID {
			return sess, true
		}
	}
	return model.Session{}, false
}

// isFormView reports whether the active view owns text input.
func (m Model) isFormView() bool {
	switch m.currentView {
	case ViewSessionForm, ViewTaskForm, ViewAssignmentForm, ViewSettings:
		return true
	}
	return false
}

// shutdown stops background workers and quits.
func (m Model) shutdown() tea.Cmd {
	m.runner.StopAll()
	m.scheduler.Stop()
	return tea.Quit
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "Study Tracker"
	if m.unreadCount > 0 {
		headerTitle = fmt.Sprintf("Study Tracker [%d reminders]", m.unreadCount)
	}
	s := m.store.State()
	badge := fmt.Sprintf("XP %d · Lv %d", s.XP, s.Level)

	header := m.layout.RenderHeader(headerTitle, badge)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSessions:
		return m.sessionList.View()
	case ViewDetail:
		return m.sessionDetail.View()
	case ViewAssignments:
		return m.assignmentList.View()
	case ViewSessionForm:
		return m.sessionForm.View()
	case ViewTaskForm:
		return m.taskForm.View()
	case ViewAssignmentForm:
		return m.assignmentForm.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar. A
// reminder flash takes precedence while it is visible.
func (m Model) keyHints() string {
	if m.flash != "" {
		return m.flash
	}

	switch m.currentView {
	case ViewDetail:
		return "space timer | 0 reset | x toggle | n task | r reminder | esc back"
	case ViewAssignments:
		return "n new | enter edit | d delete | esc back"
	case ViewSessionForm, ViewTaskForm, ViewAssignmentForm, ViewSettings:
		return "enter submit | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return "q quit | ? help | n new | t today | a assignments | s settings"
	}
}
