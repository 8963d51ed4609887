package model

// Theme constants.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Settings holds process-wide user preferences. They live inside the
// state tree and are mutated only through the settings update action.
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Theme                string `json:"theme" validate:"oneof=light dark auto"`
	PedometerEnabled     bool   `json:"pedometer_enabled"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		Theme:                ThemeAuto,
		PedometerEnabled:     false,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left
// unchanged by the merge.
type SettingsPatch struct {
	NotificationsEnabled *bool
	Theme                *string
	PedometerEnabled     *bool
}
