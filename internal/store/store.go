package store

import (
	"context"
	"time"

	"github.com/tpham/study-tracker/internal/model"
)

// Persisted blob keys, one per logical state group.
const (
	blobSessions     = "study-sessions"
	blobAssignments  = "assignments"
	blobSettings     = "app-settings"
	blobActiveTimers = "active-timers"
	blobGamification = "gamification"
)

// Gateway defines the persistence interface for the state tree and the
// reminder history. LoadState is total: any missing or corrupt group
// falls back to its default rather than surfacing an error.
type Gateway interface {
	LoadState(ctx context.Context) model.AppState
	SaveState(ctx context.Context, s model.AppState) error

	RecordReminder(ctx context.Context, r model.Reminder) error
	UnreadReminders(ctx context.Context) ([]model.Reminder, error)
	MarkReminderRead(ctx context.Context, id string) error
	ReminderExistsSince(ctx context.Context, assignmentID string, since time.Time) (bool, error)

	Close() error
}
