package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// SubmitMsg carries the entered credentials to the parent.
type SubmitMsg struct {
	Email    string
	Password string
}

// SwitchToRegisterMsg asks the parent to show the registration form.
type SwitchToRegisterMsg struct{}

// formBindings holds field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
}

// Model is the sign-in form view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	theme  theme.Theme
	errMsg string
	width  int
	height int
}

// New creates a new login form model.
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
	m.fb.email = ""
	m.fb.password = ""
	m.errMsg = ""
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(min(m.width-6, 60))
}

// SetError shows an authentication failure message and re-arms the form
// so the user can try again.
func (m *Model) SetError(msg string) tea.Cmd {
	m.errMsg = msg
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetTheme updates the styles used by the chrome around the form.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+r" {
		return m, func() tea.Msg { return SwitchToRegisterMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		email, password := m.fb.email, m.fb.password
		return m, func() tea.Msg {
			return SubmitMsg{Email: email, Password: password}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	parts := []string{
		m.theme.Title.Render("Sign in to Taskdeck"),
		m.form.View(),
	}
	if m.errMsg != "" {
		parts = append(parts, theme.SeverityStyle(model.SeverityError).Render(m.errMsg))
	}
	parts = append(parts,
		m.theme.Help.Render("enter submit | ctrl+r create an account | esc quit"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
