package register

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// SubmitMsg carries the registration fields to the parent. Validation
// happens in the auth service so every failure reason is reported the
// same way.
type SubmitMsg struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// SwitchToLoginMsg asks the parent to show the sign-in form.
type SwitchToLoginMsg struct{}

type formBindings struct {
	name     string
	email    string
	password string
	confirm  string
}

// Model is the account-creation form view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	theme  theme.Theme
	errMsg string
	width  int
	height int
}

// New creates a new registration form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		theme:  theme.Load(""),
		width:  width,
		height: height,
	}
}

// Start resets the fields and builds a fresh form.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.errMsg = ""
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Ada Lovelace").
				Value(&m.fb.name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm),
		),
	).WithWidth(min(m.width-6, 60))
}

// SetError shows a validation failure and re-arms the form with the
// entered name/email kept.
func (m *Model) SetError(msg string) tea.Cmd {
	m.errMsg = msg
	m.fb.password = ""
	m.fb.confirm = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetTheme updates the styles used by the chrome around the form.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
}

// Update handles messages for the registration form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		fb := *m.fb
		return m, func() tea.Msg {
			return SubmitMsg{
				Name:     fb.name,
				Email:    fb.email,
				Password: fb.password,
				Confirm:  fb.confirm,
			}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SwitchToLoginMsg{} }
	}

	return m, cmd
}

// View renders the registration form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	parts := []string{
		m.theme.Title.Render("Create your account"),
		m.form.View(),
	}
	if m.errMsg != "" {
		parts = append(parts, theme.SeverityStyle(model.SeverityError).Render(m.errMsg))
	}
	parts = append(parts,
		m.theme.Help.Render("enter submit | esc back to sign in"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
