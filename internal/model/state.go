package model

// ActiveTimers maps a session id to elapsed whole seconds. One entry
// exists per session for the session's lifetime. This is the single
// source of truth for session timers; display code reads from here and
// never holds authoritative timer state of its own.
type ActiveTimers map[string]int

// AppState is the aggregate root of all application state. Exactly one
// instance exists per running app; every accepted action replaces it
// wholesale rather than mutating it in place.
type AppState struct {
	Sessions     []Session    `json:"sessions"`
	Assignments  []Assignment `json:"assignments"`
	ActiveTimers ActiveTimers `json:"active_timers"`
	Settings     Settings     `json:"settings"`

	// Gamification counters. XP only ever increases; Level is derived
	// as floor(XP / 500).
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// NewAppState returns the default empty state the app runs on until the
// persisted state loads.
func NewAppState() AppState {
	return AppState{
		ActiveTimers: ActiveTimers{},
		Settings:     DefaultSettings(),
	}
}
