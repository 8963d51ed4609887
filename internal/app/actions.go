package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/tip"
)

// stateChangedMsg carries a new state snapshot from the store
// subscription to the UI.
type stateChangedMsg struct {
	state model.AppState
}

// stateLoadedMsg signals that the persisted state finished loading.
type stateLoadedMsg struct {
	state model.AppState
}

// reminderFiredMsg carries a reminder delivered by the scheduler.
type reminderFiredMsg struct {
	reminder model.Reminder
}

// unreadCountMsg carries the number of unread reminders to the UI.
type unreadCountMsg struct {
	count int
}

// tipLoadedMsg carries the fetched study tip.
type tipLoadedMsg struct {
	tip tip.Tip
}

// flashClearMsg clears the status bar flash message.
type flashClearMsg struct{}

// waitForState returns a command that blocks on the store subscription
// channel until the next state transition.
func (m Model) waitForState() tea.Cmd {
	ch := m.stateCh
	return func() tea.Msg {
		return stateChangedMsg{state: <-ch}
	}
}

// loadPersisted returns a command that loads the persisted state and
// dispatches it into the store.
func (m Model) loadPersisted() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return stateLoadedMsg{state: st.Load(context.Background())}
	}
}

// waitForReminder returns a command that blocks until the scheduler
// fires the next reminder.
func (m Model) waitForReminder() tea.Cmd {
	ch := m.scheduler.Reminders()
	return func() tea.Msg {
		return reminderFiredMsg{reminder: <-ch}
	}
}

// fetchTip returns a command that fetches the study tip of the day,
// or nil when tips are disabled.
func (m Model) fetchTip() tea.Cmd {
	if !m.cfg.Tip.Enabled {
		return nil
	}
	c := m.tips
	return func() tea.Msg {
		return tipLoadedMsg{tip: c.Fetch(context.Background())}
	}
}

// fetchUnreadCount returns a command that counts unread reminders in
// the history.
func (m Model) fetchUnreadCount() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		reminders, err := gw.UnreadReminders(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: len(reminders)}
	}
}

// markReminderRead returns a command that marks one reminder as read.
func (m Model) markReminderRead(id string) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		_ = gw.MarkReminderRead(context.Background(), id)
		return nil
	}
}

// markAllRead returns a command that marks every unread reminder as
// read. Used when the user engages with a session after seeing the
// unread badge.
func (m Model) markAllRead() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		reminders, err := gw.UnreadReminders(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		for _, r := range reminders {
			_ = gw.MarkReminderRead(context.Background(), r.ID)
		}
		return unreadCountMsg{count: 0}
	}
}

// clearFlashAfter returns a command that clears the status bar flash
// after the given delay.
func clearFlashAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}
