package model

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Views selectable as the dashboard default.
const (
	ViewList     = "list"
	ViewBoard    = "board"
	ViewCalendar = "calendar"
)

// Settings are the per-user preferences persisted alongside the task list.
type Settings struct {
	Theme       string `json:"theme"`
	DefaultView string `json:"defaultView"`
}

// DefaultSettings returns the settings applied to a fresh account.
func DefaultSettings() Settings {
	return Settings{
		Theme:       ThemeLight,
		DefaultView: ViewList,
	}
}
