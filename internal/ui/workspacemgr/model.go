package workspacemgr

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/keys"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// CloseMsg signals the parent to close the workspace view.
type CloseMsg struct{}

// SwitchMsg asks the parent to make the given workspace current.
type SwitchMsg struct {
	ID string
}

// CreateMsg asks the parent to create a workspace with the given name.
type CreateMsg struct {
	Name string
}

// DeleteMsg asks the parent to delete a workspace and its tasks.
type DeleteMsg struct {
	ID string
}

type wsMode int

const (
	modeList wsMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	confirm bool
}

// Model is the Bubble Tea model for workspace management. The
// workspace slice is pushed in by the parent whenever state changes;
// all mutations round-trip through the parent as messages.
type Model struct {
	mode        wsMode
	keys        *keys.KeyMap
	theme       theme.Theme
	workspaces  []model.Workspace
	currentID   string
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	width       int
	height      int
}

// New creates a new workspace manager model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:  modeList,
		keys:  k,
		theme: theme.Load(""),
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// SetWorkspaces replaces the displayed workspaces and remembers which
// one is current.
func (m *Model) SetWorkspaces(workspaces []model.Workspace, currentID string) {
	m.workspaces = workspaces
	m.currentID = currentID
	if m.selectedIdx >= len(m.workspaces) && m.selectedIdx > 0 {
		m.selectedIdx = len(m.workspaces) - 1
	}
}

// SetTheme updates the styles used by the view.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.handleListKey(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.workspaces) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.workspaces)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.workspaces) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.workspaces) - 1
			}
		}
		return m, nil

	case msg.String() == "enter":
		if len(m.workspaces) == 0 {
			return m, nil
		}
		id := m.workspaces[m.selectedIdx].ID
		return m, func() tea.Msg { return SwitchMsg{ID: id} }

	case msg.String() == "n":
		m.fb.name = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "d":
		if len(m.workspaces) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Workspace name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if m.selectedIdx < len(m.workspaces) {
		name = m.workspaces[m.selectedIdx].Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete workspace %q?", name)).
				Description("All tasks in this workspace will be deleted too.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		name := strings.TrimSpace(m.fb.name)
		m.mode = modeList
		return m, func() tea.Msg { return CreateMsg{Name: name} }
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm && m.selectedIdx < len(m.workspaces) {
			id := m.workspaces[m.selectedIdx].ID
			return m, func() tea.Msg { return DeleteMsg{ID: id} }
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the workspace manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Workspaces"))
	b.WriteString("\n\n")

	if len(m.workspaces) == 0 {
		b.WriteString(m.theme.Dimmed.Render("No workspaces. Press 'n' to create one."))
	} else {
		for i, w := range m.workspaces {
			swatch := lipgloss.NewStyle().
				Foreground(lipgloss.Color(w.Color)).
				Render("●")

			label := fmt.Sprintf("%s %s", swatch, w.Name)
			if w.ID == m.currentID {
				label += " (current)"
			}

			if i == m.selectedIdx {
				b.WriteString(m.theme.SelectedItem.Render(label))
			} else {
				b.WriteString(m.theme.ListItem.Render(label))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.Dimmed.Render(
		"enter switch | n new | d delete | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
