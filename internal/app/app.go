package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/keys"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/theme"
	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/internal/ui/command"
	"github.com/taskdeck/taskdeck/internal/ui/confirm"
	helpview "github.com/taskdeck/taskdeck/internal/ui/help"
	loginview "github.com/taskdeck/taskdeck/internal/ui/login"
	registerview "github.com/taskdeck/taskdeck/internal/ui/register"
	"github.com/taskdeck/taskdeck/internal/ui/taskform"
	"github.com/taskdeck/taskdeck/internal/ui/tasklist"
	"github.com/taskdeck/taskdeck/internal/ui/workspacemgr"
	"github.com/taskdeck/taskdeck/internal/workspace"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewRegister
	ViewList
	ViewTaskForm
	ViewConfirmDelete
	ViewWorkspaces
	ViewCommand
	ViewHelp
)

// Deps bundles the services the root model drives.
type Deps struct {
	State      *state.Store
	Auth       *auth.Service
	Tasks      *task.Service
	Workspaces *workspace.Service

	// ExportDir is where export files are written. Defaults to the
	// working directory.
	ExportDir string
}

// Model is the root Bubble Tea model that manages view routing, the
// layout, and the bridge between the state store and the views.
type Model struct {
	deps Deps

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	theme        theme.Theme
	snap         state.Snapshot

	loginView     loginview.Model
	registerView  registerview.Model
	taskList      tasklist.Model
	taskForm      taskform.Model
	confirmView   confirm.Model
	workspaceView workspacemgr.Model
	commandView   command.Model
	helpView      helpview.Model

	changes     chan stateChangedMsg
	unsubscribe func()
	ready       bool
}

// New creates the root application model. The initial view depends on
// whether a session was resumed before the program started.
func New(deps Deps) *Model {
	if deps.ExportDir == "" {
		deps.ExportDir = "."
	}

	k := keys.DefaultKeyMap()
	snap := deps.State.GetState()

	m := &Model{
		deps:          deps,
		keys:          k,
		snap:          snap,
		loginView:     loginview.New(80, 24),
		registerView:  registerview.New(80, 24),
		taskList:      tasklist.New(k, 80, 24),
		taskForm:      taskform.New(80, 24),
		confirmView:   confirm.New(80, 24),
		workspaceView: workspacemgr.New(k, 80, 24),
		commandView:   command.New(80, 24),
		helpView:      helpview.New(k, 80, 24),
	}

	m.applyTheme(theme.Load(snap.UI.Theme))
	m.workspaceView.SetWorkspaces(snap.Workspaces, snap.CurrentWorkspace)
	m.taskForm.SetWorkspaces(snap.Workspaces)
	m.taskList.SetFilters(snap.Filters)

	if snap.User.Active() {
		m.currentView = ViewList
	} else {
		m.currentView = ViewLogin
	}

	m.subscribe()
	return m
}

// Init returns the initial commands.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForStateChange()}
	if m.currentView == ViewLogin {
		cmds = append(cmds, m.loginView.Start())
	} else {
		cmds = append(cmds, m.taskList.SetTasks(
			state.FilterTasks(m.snap.Tasks, m.snap.Filters)))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.registerView.SetSize(w, h)
		m.taskList.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.confirmView.SetSize(w, h)
		m.workspaceView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case stateChangedMsg:
		cmd := m.applyStateChange(msg)
		return m, tea.Batch(cmd, m.waitForStateChange())

	case loginview.SubmitMsg:
		if _, err := m.deps.Auth.Login(msg.Email, msg.Password); err != nil {
			return m, m.loginView.SetError(err.Error())
		}
		return m, nil

	case loginview.SwitchToRegisterMsg:
		m.currentView = ViewRegister
		return m, m.registerView.Start()

	case registerview.SubmitMsg:
		if _, err := m.deps.Auth.Register(msg.Name, msg.Email, msg.Password, msg.Confirm); err != nil {
			return m, m.registerView.SetError(err.Error())
		}
		return m, nil

	case registerview.SwitchToLoginMsg:
		m.currentView = ViewLogin
		return m, m.loginView.Start()

	case tasklist.SearchChangedMsg:
		m.deps.State.SetSearch(msg.Query)
		return m, nil

	case taskform.SubmitMsg:
		if _, err := m.deps.Tasks.Save(msg.Task); err != nil {
			m.deps.State.AddNotification(err.Error(), model.SeverityError)
			return m, nil
		}
		m.deps.State.CloseModal()
		return m, nil

	case taskform.CancelMsg:
		m.deps.State.CloseModal()
		return m, nil

	case confirm.ResultMsg:
		if msg.Confirmed {
			m.deps.Tasks.Delete(msg.TargetID)
		}
		m.deps.State.CloseModal()
		return m, nil

	case workspacemgr.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case workspacemgr.SwitchMsg:
		m.deps.Workspaces.Switch(msg.ID)
		m.currentView = ViewList
		return m, nil

	case workspacemgr.CreateMsg:
		if _, err := m.deps.Workspaces.Create(msg.Name, ""); err != nil {
			m.deps.State.AddNotification(err.Error(), model.SeverityError)
		}
		return m, nil

	case workspacemgr.DeleteMsg:
		m.deps.Workspaces.Delete(msg.ID)
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that apply across views. Keys are not
// intercepted while a text input or form has focus.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.unsubscribe()
		return true, tea.Quit
	}

	// The command palette closes on the same key that opened it.
	if m.currentView == ViewCommand {
		switch msg.String() {
		case ":", "esc":
			m.currentView = m.previousView
			return true, nil
		}
	}

	// Forms and the search input own the keyboard.
	if m.formFocused() {
		return false, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewList {
			m.unsubscribe()
			return true, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, nil
		}
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return true, nil
		}

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return true, nil
		}
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return true, m.commandView.Focus()
		}

	case "esc":
		switch m.currentView {
		case ViewHelp, ViewCommand:
			m.currentView = m.previousView
			return true, nil
		}

	case "ctrl+l":
		if m.snap.User.Active() && m.currentView == ViewList {
			m.deps.Auth.Logout()
			return true, nil
		}
	}

	if m.currentView == ViewList {
		return m.handleListKey(msg)
	}
	return false, nil
}

// handleListKey processes task-list actions and filter keys.
func (m *Model) handleListKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.deps.State.OpenModal(model.Modal{Kind: model.ModalTaskCreate})
		return true, nil

	case "e":
		if id := m.taskList.SelectedID(); id != "" {
			m.deps.State.OpenModal(model.Modal{Kind: model.ModalTaskEdit, TaskID: id})
		}
		return true, nil

	case "d":
		if id := m.taskList.SelectedID(); id != "" {
			m.deps.State.OpenModal(model.Modal{Kind: model.ModalConfirmDelete, TaskID: id})
		}
		return true, nil

	case "x", " ":
		if id := m.taskList.SelectedID(); id != "" {
			m.deps.Tasks.ToggleComplete(id)
		}
		return true, nil

	case "s":
		if id := m.taskList.SelectedID(); id != "" {
			m.deps.State.UpdateTask(id, func(t *model.Task) {
				t.Starred = !t.Starred
			})
		}
		return true, nil

	case "1":
		m.deps.State.SetStatusFilter(nextStatus(m.snap.Filters.Status))
		return true, nil

	case "2":
		m.deps.State.SetPriorityFilter(nextPriority(m.snap.Filters.Priority))
		return true, nil

	case "3":
		m.deps.State.ClearFilters()
		return true, nil

	case "w":
		m.previousView = m.currentView
		m.currentView = ViewWorkspaces
		return true, m.workspaceView.Init()

	case "t":
		m.deps.State.ToggleTheme()
		return true, nil
	}
	return false, nil
}

// formFocused reports whether keyboard input currently belongs to a
// form or text input rather than to global shortcuts.
func (m *Model) formFocused() bool {
	switch m.currentView {
	case ViewLogin, ViewRegister, ViewTaskForm, ViewConfirmDelete, ViewCommand, ViewWorkspaces:
		return true
	case ViewList:
		return m.taskList.Searching()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m *Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewConfirmDelete:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewWorkspaces:
		m.workspaceView, cmd = m.workspaceView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if !m.snap.User.Active() {
		// The auth screens render without the app chrome.
		switch m.currentView {
		case ViewRegister:
			return m.registerView.View()
		default:
			return m.loginView.View()
		}
	}

	header := m.layout.RenderHeader(m.theme, m.headerTitle(), m.headerRight())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.theme, m.statusContent())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m *Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewTaskForm:
		return m.taskForm.View()
	case ViewConfirmDelete:
		return m.confirmView.View()
	case ViewWorkspaces:
		return m.workspaceView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerTitle shows the app name and the current workspace.
func (m *Model) headerTitle() string {
	title := "Taskdeck"
	for _, w := range m.snap.Workspaces {
		if w.ID == m.snap.CurrentWorkspace {
			title = fmt.Sprintf("Taskdeck | %s", w.Name)
			break
		}
	}
	return title
}

// headerRight shows the completion statistics and the session avatar.
func (m *Model) headerRight() string {
	stats := state.ComputeStatistics(m.snap.Tasks, timeNow())
	summary := fmt.Sprintf("%d/%d done (%d%%)",
		stats.Completed, stats.Total, stats.CompletionRate)
	if stats.Overdue > 0 {
		summary += fmt.Sprintf(" | %d overdue", stats.Overdue)
	}

	avatar := theme.AvatarStyle(m.snap.User.Avatar).Render(m.snap.User.Avatar.Initials)
	return summary + " " + avatar
}

// statusContent shows the most recent notification when one is live,
// otherwise contextual key hints.
func (m *Model) statusContent() string {
	if n := len(m.snap.UI.Notifications); n > 0 {
		latest := m.snap.UI.Notifications[n-1]
		return theme.SeverityStyle(latest.Severity).Render(latest.Message)
	}
	if m.snap.UI.Loading {
		return "Working..."
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m *Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewTaskForm:
		return "enter submit | esc cancel"
	case ViewConfirmDelete:
		return "enter confirm | esc cancel"
	case ViewWorkspaces:
		return "enter switch | n new | d delete | esc back"
	default:
		if m.snap.Filters.Active() {
			return filterSummary(m.snap.Filters) + " | 3 clear"
		}
		return "q quit | ? help | n new | x toggle | / search | 1 status | 2 priority | w workspaces"
	}
}

// nextStatus cycles the status filter all -> active -> completed.
func nextStatus(current string) string {
	switch current {
	case model.StatusAll:
		return model.StatusActive
	case model.StatusActive:
		return model.StatusCompleted
	default:
		return model.StatusAll
	}
}

// nextPriority cycles the priority filter through the fixed set.
func nextPriority(current string) string {
	switch current {
	case model.PriorityAll:
		return model.PriorityHigh
	case model.PriorityHigh:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityLow
	case model.PriorityLow:
		return model.PriorityNone
	default:
		return model.PriorityAll
	}
}
