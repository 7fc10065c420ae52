package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg carries the user's answer back to the parent along with
// the id of the record the question was about.
type ResultMsg struct {
	TargetID  string
	Confirmed bool
}

type formBindings struct {
	confirm bool
}

// Model is a yes/no confirmation dialog.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	targetID string
	width    int
	height   int
}

// New creates a new confirmation dialog model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start arms the dialog with a question about the given record.
func (m *Model) Start(targetID, subject string) tea.Cmd {
	m.targetID = targetID
	m.fb.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", subject)).
				Description("This cannot be undone.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(min(m.width-6, 60))
	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		id, ok := m.targetID, m.fb.confirm
		return m, func() tea.Msg {
			return ResultMsg{TargetID: id, Confirmed: ok}
		}
	}
	if m.form.State == huh.StateAborted {
		id := m.targetID
		return m, func() tea.Msg {
			return ResultMsg{TargetID: id, Confirmed: false}
		}
	}

	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
