package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/model"
)

// Theme is the resolved style set for one of the two selectable themes.
// The active theme lives in application state; views receive a Theme
// when that slice changes.
type Theme struct {
	Name string

	Header       lipgloss.Style
	StatusBar    lipgloss.Style
	Panel        lipgloss.Style
	Title        lipgloss.Style
	ListItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Help         lipgloss.Style
	Dimmed       lipgloss.Style
}

// Priority accent colors, shared by both themes.
var priorityColors = map[string]string{
	model.PriorityHigh:   "#f44336",
	model.PriorityMedium: "#FF9800",
	model.PriorityLow:    "#4CAF50",
	model.PriorityNone:   "#9e9e9e",
}

// Severity accent colors for notifications.
var severityColors = map[string]string{
	model.SeverityInfo:    "#2196F3",
	model.SeveritySuccess: "#4CAF50",
	model.SeverityWarning: "#FF9800",
	model.SeverityError:   "#f44336",
}

// Load resolves a theme by name. Unknown names fall back to light.
func Load(name string) Theme {
	if name == model.ThemeDark {
		return dark()
	}
	return light()
}

func light() Theme {
	fg := lipgloss.Color("#1A202C")
	accent := lipgloss.Color("#2B6CB0")
	subtle := lipgloss.Color("#CBD5E0")
	gray := lipgloss.Color("#718096")

	return Theme{
		Name: model.ThemeLight,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8F9FA")).
			Background(accent).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(subtle).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(fg),
		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent),
		Help: lipgloss.NewStyle().
			Foreground(gray).
			Italic(true),
		Dimmed: lipgloss.NewStyle().
			Foreground(gray),
	}
}

func dark() Theme {
	fg := lipgloss.Color("#F8F9FA")
	accent := lipgloss.Color("#5B9BD5")
	subtle := lipgloss.Color("#495057")
	gray := lipgloss.Color("#868E96")

	return Theme{
		Name: model.ThemeDark,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(lipgloss.Color("#2D3748")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(subtle).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(fg),
		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent),
		Help: lipgloss.NewStyle().
			Foreground(gray).
			Italic(true),
		Dimmed: lipgloss.NewStyle().
			Foreground(gray),
	}
}

// PriorityStyle returns a color-coded style for the given task priority.
func PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	if c, ok := priorityColors[priority]; ok {
		return base.Foreground(lipgloss.Color(c))
	}
	return base.Foreground(lipgloss.Color(priorityColors[model.PriorityNone]))
}

// SeverityStyle returns a color-coded style for a notification severity.
func SeverityStyle(severity string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	if c, ok := severityColors[severity]; ok {
		return base.Foreground(lipgloss.Color(c))
	}
	return base.Foreground(lipgloss.Color(severityColors[model.SeverityInfo]))
}

// AvatarStyle renders a user's avatar badge in its assigned color.
func AvatarStyle(a model.Avatar) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F8F9FA")).
		Background(lipgloss.Color(a.Color)).
		Padding(0, 1)
}
