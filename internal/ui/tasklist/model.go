package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/keys"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// SearchChangedMsg is emitted when the user commits or clears the
// search query. The parent writes it into the filter state; the
// resulting state change pushes a new task slice back down.
type SearchChangedMsg struct {
	Query string
}

// Model is the main task list view component. It renders whatever
// filtered tasks the parent pushes into it; it never queries storage
// itself.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	theme       *theme.Theme
	filters     model.FilterSet
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	t := theme.Load("")
	th := &t

	l := list.New([]list.Item{}, ItemDelegate{theme: th, now: time.Now}, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = th.Header

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		theme:       th,
		filters:     model.DefaultFilters(),
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetTasks replaces the displayed items with a freshly filtered slice,
// keeping the cursor on the same task when it survives the change.
func (m *Model) SetTasks(tasks []model.Task) tea.Cmd {
	selectedID := m.SelectedID()

	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task}
	}
	cmd := m.list.SetItems(items)

	if selectedID != "" {
		for i, task := range tasks {
			if task.ID == selectedID {
				m.list.Select(i)
				break
			}
		}
	}
	return cmd
}

// SetFilters records the active filters for empty-state and title text.
func (m *Model) SetFilters(f model.FilterSet) {
	m.filters = f
	m.list.Title = listTitle(f)
	if !m.searchMode {
		m.searchInput.SetValue(f.Search)
	}
}

// SetTheme swaps the style set used for list chrome and items.
func (m *Model) SetTheme(t theme.Theme) {
	*m.theme = t
	m.list.Styles.Title = t.Header
}

// SelectedID returns the id of the task under the cursor, or "".
func (m Model) SelectedID() string {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return ""
	}
	return item.Task.ID
}

// Searching reports whether the search input has keyboard focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(key)
		}
		if key.String() == "/" {
			m.searchMode = true
			m.searchInput.SetValue(m.filters.Search)
			return m, m.searchInput.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		return m, func() tea.Msg {
			return SearchChangedMsg{Query: query}
		}

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		return m, func() tea.Msg {
			return SearchChangedMsg{Query: ""}
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	if m.filters.Active() {
		return style.Render(m.theme.Dimmed.Render(
			"No matching tasks.\nPress 3 to clear filters."))
	}

	return style.Render(m.theme.Dimmed.Render(
		"No tasks yet.\n\nPress n to create your first task."))
}

// listTitle builds the list header from the active filters.
func listTitle(f model.FilterSet) string {
	title := "Tasks"
	if f.Status != model.StatusAll {
		title = fmt.Sprintf("%s: %s", title, f.Status)
	}
	if f.Priority != model.PriorityAll {
		title = fmt.Sprintf("%s [%s]", title, f.Priority)
	}
	return title
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
