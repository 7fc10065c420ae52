package app

import (
	"log"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// stateChangedMsg delivers a state transition from the store's
// subscription into the Bubble Tea update loop.
type stateChangedMsg struct {
	old state.Snapshot
	new state.Snapshot
}

// subscribe registers the bridge listener. The listener runs on
// whatever goroutine mutated the store, so it only forwards the
// snapshots into a channel the update loop drains.
func (m *Model) subscribe() {
	m.changes = make(chan stateChangedMsg, 64)
	m.unsubscribe = m.deps.State.Subscribe(func(old, new state.Snapshot) {
		select {
		case m.changes <- stateChangedMsg{old: old, new: new}:
		default:
			log.Printf("app: dropping state change, update loop is behind")
		}
	})
}

// waitForStateChange blocks until the next state transition arrives.
// The returned message re-arms itself via Update.
func (m Model) waitForStateChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		return <-ch
	}
}

// applyStateChange re-renders only the slices of the UI whose backing
// state actually changed, mirroring a subscriber diffing old against
// new. Unconditional work here would repaint every view on every
// keystroke-sized state change.
func (m *Model) applyStateChange(msg stateChangedMsg) tea.Cmd {
	old, new := msg.old, msg.new
	m.snap = new

	var cmds []tea.Cmd

	if old.UI.Theme != new.UI.Theme {
		m.applyTheme(theme.Load(new.UI.Theme))
	}

	if !reflect.DeepEqual(old.Tasks, new.Tasks) || !reflect.DeepEqual(old.Filters, new.Filters) {
		m.taskList.SetFilters(new.Filters)
		cmds = append(cmds, m.taskList.SetTasks(state.FilterTasks(new.Tasks, new.Filters)))
	}

	if !reflect.DeepEqual(old.Workspaces, new.Workspaces) || old.CurrentWorkspace != new.CurrentWorkspace {
		m.workspaceView.SetWorkspaces(new.Workspaces, new.CurrentWorkspace)
		m.taskForm.SetWorkspaces(new.Workspaces)
	}

	if old.User != new.User {
		cmds = append(cmds, m.applySessionChange(old.User, new.User)...)
	}

	if old.UI.Modal != new.UI.Modal {
		cmds = append(cmds, m.applyModalChange(new)...)
	}

	return tea.Batch(cmds...)
}

// applyTheme swaps the style set on every view.
func (m *Model) applyTheme(t theme.Theme) {
	m.theme = t
	m.loginView.SetTheme(t)
	m.registerView.SetTheme(t)
	m.taskList.SetTheme(t)
	m.taskForm.SetTheme(t)
	m.workspaceView.SetTheme(t)
	m.commandView.SetTheme(t)
	m.helpView.SetTheme(t)
}

// applySessionChange routes between the authenticated shell and the
// login screen when a session appears or disappears.
func (m *Model) applySessionChange(old, new model.Session) []tea.Cmd {
	if !old.Active() && new.Active() {
		m.currentView = ViewList
		m.taskList.SetFilters(m.snap.Filters)
		return []tea.Cmd{
			m.taskList.SetTasks(state.FilterTasks(m.snap.Tasks, m.snap.Filters)),
		}
	}
	if old.Active() && !new.Active() {
		m.currentView = ViewLogin
		return []tea.Cmd{m.loginView.Start()}
	}
	return nil
}

// applyModalChange drives the modal state machine: exactly one modal
// is open at a time, and closing it always returns to the list.
func (m *Model) applyModalChange(snap state.Snapshot) []tea.Cmd {
	modal := snap.UI.Modal
	if !modal.Open() {
		if m.currentView == ViewTaskForm || m.currentView == ViewConfirmDelete {
			m.currentView = ViewList
		}
		return nil
	}

	switch modal.Kind {
	case model.ModalTaskCreate:
		m.currentView = ViewTaskForm
		return []tea.Cmd{m.taskForm.StartCreate(snap.CurrentWorkspace)}

	case model.ModalTaskEdit:
		for _, t := range snap.Tasks {
			if t.ID == modal.TaskID {
				m.currentView = ViewTaskForm
				return []tea.Cmd{m.taskForm.StartEdit(t)}
			}
		}
		// The task vanished between opening and rendering; give up.
		m.deps.State.CloseModal()
		return nil

	case model.ModalConfirmDelete:
		subject := "this task"
		for _, t := range snap.Tasks {
			if t.ID == modal.TaskID {
				subject = "task " + strconvQuote(t.Title)
				break
			}
		}
		m.currentView = ViewConfirmDelete
		return []tea.Cmd{m.confirmView.Start(modal.TaskID, subject)}
	}
	return nil
}
