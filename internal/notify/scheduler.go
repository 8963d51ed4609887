// Package notify schedules reminder notifications. The state reducer
// only records reminder intent; the presentation layer drives actual
// scheduling and cancellation through the Scheduler interface.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tpham/study-tracker/internal/derive"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/state"
)

// recordTimeout bounds a single reminder-history write.
const recordTimeout = 5 * time.Second

// Scheduler is the notification boundary the presentation layer talks
// to. "No permission" is a normal outcome: RequestPermissions returns
// false and ScheduleReminder returns an empty identifier.
type Scheduler interface {
	RequestPermissions() bool
	ScheduleReminder(intervalSeconds int, sessionID string) string
	CancelReminders(sessionID string)
}

// ReminderStore is the slice of the persistence gateway the scheduler
// needs for recording fired reminders and deduplicating the due-date
// sweep.
type ReminderStore interface {
	RecordReminder(ctx context.Context, r model.Reminder) error
	ReminderExistsSince(ctx context.Context, assignmentID string, since time.Time) (bool, error)
}

// CronScheduler implements Scheduler on a cron runner: one @every entry
// per session with a configured reminder, plus a daily sweep that
// surfaces assignments due today or tomorrow. Fired reminders are
// recorded in the history and pushed onto a channel the UI listens on.
type CronScheduler struct {
	cron  *cron.Cron
	store *state.Store
	hist  ReminderStore
	log   *zap.Logger
	ch    chan model.Reminder

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewCronScheduler creates a scheduler reading settings and sessions
// from the given state store and recording history through hist.
func NewCronScheduler(st *state.Store, hist ReminderStore, log *zap.Logger) *CronScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CronScheduler{
		cron:    cron.New(),
		store:   st,
		hist:    hist,
		log:     log,
		ch:      make(chan model.Reminder, 16),
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins the cron runner and registers the daily due-date sweep
// at 9 AM, mirroring the reminder hour the mobile planners use.
func (c *CronScheduler) Start() {
	if _, err := c.cron.AddFunc("0 9 * * *", c.sweepAssignments); err != nil {
		c.log.Warn("registering due-date sweep", zap.Error(err))
	}
	c.cron.Start()

	// Also sweep once at startup so a reminder is not missed when the
	// app was closed at 9 AM.
	go c.sweepAssignments()
}

// Stop halts the cron runner. Scheduled entries are discarded.
func (c *CronScheduler) Stop() {
	c.cron.Stop()
}

// Reminders returns the channel fired reminders are delivered on.
func (c *CronScheduler) Reminders() <-chan model.Reminder {
	return c.ch
}

// RequestPermissions reports whether notifications may be shown. On a
// terminal host this maps to the notificationsEnabled setting.
func (c *CronScheduler) RequestPermissions() bool {
	return c.store.State().Settings.NotificationsEnabled
}

// ScheduleReminder registers a repeating study reminder for the
// session, replacing any existing one so at most one entry is active
// per session. Returns the reminder identifier, or an empty string when
// the interval is invalid or notifications are not permitted.
func (c *CronScheduler) ScheduleReminder(intervalSeconds int, sessionID string) string {
	if intervalSeconds < 1 || !c.RequestPermissions() {
		return ""
	}

	c.CancelReminders(sessionID)

	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	entryID, err := c.cron.AddFunc(spec, func() {
		c.fireStudyReminder(sessionID, intervalSeconds)
	})
	if err != nil {
		c.log.Warn("scheduling study reminder",
			zap.String("session_id", sessionID), zap.Error(err))
		return ""
	}

	c.mu.Lock()
	c.entries[sessionID] = entryID
	c.mu.Unlock()

	return fmt.Sprintf("study-reminder-%s-%d", sessionID, time.Now().UnixMilli())
}

// CancelReminders removes the session's scheduled reminder, if any.
func (c *CronScheduler) CancelReminders(sessionID string) {
	c.mu.Lock()
	entryID, ok := c.entries[sessionID]
	if ok {
		delete(c.entries, sessionID)
	}
	c.mu.Unlock()

	if ok {
		c.cron.Remove(entryID)
	}
}

// fireStudyReminder records and delivers one study reminder tick.
func (c *CronScheduler) fireStudyReminder(sessionID string, intervalSeconds int) {
	if !c.RequestPermissions() {
		return
	}

	cadence := fmt.Sprintf("%d second(s)", intervalSeconds)
	if intervalSeconds >= 60 {
		cadence = fmt.Sprintf("%d minute(s)", intervalSeconds/60)
	}

	c.deliver(model.Reminder{
		SessionID: sessionID,
		Kind:      model.ReminderKindStudy,
		Message:   fmt.Sprintf("Time to study! You scheduled a reminder every %s.", cadence),
		CreatedAt: time.Now(),
	})
}

// sweepAssignments emits a reminder for each assignment due today or
// tomorrow, at most once per assignment per day.
func (c *CronScheduler) sweepAssignments() {
	if !c.RequestPermissions() {
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	for _, a := range c.store.State().Assignments {
		var message string
		switch derive.DaysUntilDue(a.DueDate) {
		case 0:
			message = fmt.Sprintf("%s is due today!", a.Name)
		case 1:
			message = fmt.Sprintf("%s is due tomorrow!", a.Name)
		default:
			continue
		}

		if c.hist != nil {
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			seen, err := c.hist.ReminderExistsSince(ctx, a.ID, startOfDay)
			cancel()
			if err != nil {
				c.log.Warn("checking reminder history",
					zap.String("assignment_id", a.ID), zap.Error(err))
			}
			if seen {
				continue
			}
		}

		c.deliver(model.Reminder{
			AssignmentID: a.ID,
			Kind:         model.ReminderKindAssignment,
			Message:      message,
			CreatedAt:    now,
		})
	}
}

// deliver records the reminder in the history and pushes it to the UI
// channel without blocking.
func (c *CronScheduler) deliver(r model.Reminder) {
	if c.hist != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := c.hist.RecordReminder(ctx, r); err != nil {
			c.log.Warn("recording reminder", zap.Error(err))
		}
		cancel()
	}

	select {
	case c.ch <- r:
	default:
		// Drop if the channel is full to avoid blocking the cron runner.
	}
}
