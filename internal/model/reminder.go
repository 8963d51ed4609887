package model

import "time"

// Reminder kind constants.
const (
	ReminderKindStudy      = "study"
	ReminderKindAssignment = "assignment"
)

// Reminder records a notification that has fired, so the user can
// review reminders they missed while away from the screen.
type Reminder struct {
	// ID is the unique identifier for this reminder.
	ID string `json:"id"`

	// SessionID links a study reminder to its session. Empty for
	// assignment reminders.
	SessionID string `json:"session_id,omitempty"`

	// AssignmentID links a due-date reminder to its assignment. Empty
	// for study reminders.
	AssignmentID string `json:"assignment_id,omitempty"`

	// Kind is either "study" or "assignment".
	Kind string `json:"kind"`

	// Message is the human-readable reminder text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this reminder.
	Read bool `json:"read"`

	// CreatedAt is when the reminder fired.
	CreatedAt time.Time `json:"created_at"`
}
