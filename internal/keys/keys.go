package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Task actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
	Star   key.Binding

	// Filters
	CycleStatus   key.Binding
	CyclePriority key.Binding
	ClearFilters  key.Binding
	Search        key.Binding

	// Views
	Workspaces key.Binding
	Theme      key.Binding
	Command    key.Binding
	Help       key.Binding

	// Session
	Logout key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "toggle complete"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star task"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "cycle status filter"),
		),
		CyclePriority: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "cycle priority filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "clear filters"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Workspaces: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "workspaces"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the mini help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Search, k.Help, k.Quit}
}

// FullHelp returns all bindings, grouped by column.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Quit},
		{k.New, k.Edit, k.Delete, k.Toggle, k.Star},
		{k.CycleStatus, k.CyclePriority, k.ClearFilters, k.Search},
		{k.Workspaces, k.Theme, k.Command, k.Help, k.Logout},
	}
}
