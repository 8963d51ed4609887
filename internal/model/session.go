package model

// Session is one day's (or one continuous study period's) record of
// tasks and elapsed study time. A session owns its tasks exclusively.
type Session struct {
	// ID is the unique identifier for this session.
	ID string `json:"id" validate:"required"`

	// Date is the day-level identity key used for "today's session"
	// lookups, formatted 2006-01-02.
	Date string `json:"date" validate:"required"`

	// Duration is elapsed study time in whole minutes. It is derived
	// from the session timer, updated once per minute boundary.
	Duration int `json:"duration" validate:"min=0"`

	// Tasks is the ordered task list; order is insertion order.
	Tasks []Task `json:"tasks"`

	// ReminderInterval is the reminder cadence in seconds. Zero means
	// no reminder is configured for this session.
	ReminderInterval int `json:"reminder_interval,omitempty" validate:"min=0"`
}
