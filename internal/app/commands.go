package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/model"
)

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	fields := strings.Fields(strings.ToLower(cmd))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "quit", "q":
		m.unsubscribe()
		return tea.Quit

	case "new", "todo":
		m.deps.State.OpenModal(model.Modal{Kind: model.ModalTaskCreate})
		return nil

	case "filter":
		if len(fields) < 2 {
			return nil
		}
		return m.executeFilter(fields[1])

	case "search":
		m.deps.State.SetSearch(argAfterVerb(cmd))
		return nil

	case "tag":
		m.deps.State.SetTagFilter(strings.Fields(argAfterVerb(cmd)))
		return nil

	case "clear":
		m.deps.State.ClearFilters()
		return nil

	case "theme":
		m.deps.State.ToggleTheme()
		return nil

	case "workspaces", "ws":
		m.previousView = m.currentView
		m.currentView = ViewWorkspaces
		return m.workspaceView.Init()

	case "export":
		if _, err := m.deps.Tasks.Export(m.deps.ExportDir); err != nil {
			m.deps.State.AddNotification(
				fmt.Sprintf("Export failed: %v", err), model.SeverityError)
		}
		return nil

	case "import":
		if len(fields) < 2 {
			m.deps.State.AddNotification("Usage: import <path>", model.SeverityWarning)
			return nil
		}
		if _, err := m.deps.Tasks.Import(argAfterVerb(cmd)); err != nil {
			m.deps.State.AddNotification(
				fmt.Sprintf("Import failed: %v", err), model.SeverityError)
		}
		return nil

	case "logout":
		m.deps.Auth.Logout()
		return nil

	default:
		m.deps.State.AddNotification(
			fmt.Sprintf("Unknown command %q", cmd), model.SeverityWarning)
		return nil
	}
}

// argAfterVerb returns everything after the first word with its
// original casing, so search terms and file paths survive intact.
func argAfterVerb(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if i := strings.IndexAny(cmd, " \t"); i >= 0 {
		return strings.TrimSpace(cmd[i:])
	}
	return ""
}

// executeFilter maps a palette filter argument onto the status or
// priority filter.
func (m *Model) executeFilter(arg string) tea.Cmd {
	switch arg {
	case model.StatusAll, model.StatusActive, model.StatusCompleted:
		m.deps.State.SetStatusFilter(arg)
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow, model.PriorityNone:
		m.deps.State.SetPriorityFilter(arg)
	default:
		m.deps.State.AddNotification(
			fmt.Sprintf("Unknown filter %q", arg), model.SeverityWarning)
	}
	return nil
}
