package storage

import (
	"github.com/taskdeck/taskdeck/internal/model"
)

// SaveSession persists the current-session pointer.
func (a *Adapter) SaveSession(s model.Session) bool {
	return a.Set(keySession, s)
}

// Session returns the persisted current-session pointer, or a zero
// session when nobody is logged in.
func (a *Adapter) Session() model.Session {
	var s model.Session
	a.Get(keySession, &s)
	return s
}

// ClearSession removes the current-session pointer.
func (a *Adapter) ClearSession() {
	a.Remove(keySession)
}

// Users returns the global user directory.
func (a *Adapter) Users() []model.User {
	var users []model.User
	a.Get(keyUsers, &users)
	return users
}

// SaveUsers persists the global user directory.
func (a *Adapter) SaveUsers(users []model.User) bool {
	return a.Set(keyUsers, users)
}

// Tasks returns the task list of the current session's user. When no
// session exists it returns an empty list; that is the fail-safe default,
// not an error.
func (a *Adapter) Tasks() []model.Task {
	s := a.Session()
	if !s.Active() {
		return nil
	}
	var tasks []model.Task
	a.Get(keyTasks+s.ID, &tasks)
	return tasks
}

// SaveTasks persists the task list for the current session's user.
// Returns false when no session exists.
func (a *Adapter) SaveTasks(tasks []model.Task) bool {
	s := a.Session()
	if !s.Active() {
		return false
	}
	return a.Set(keyTasks+s.ID, tasks)
}

// Workspaces returns the workspace list of the current session's user.
func (a *Adapter) Workspaces() []model.Workspace {
	s := a.Session()
	if !s.Active() {
		return nil
	}
	var workspaces []model.Workspace
	a.Get(keyWorkspaces+s.ID, &workspaces)
	return workspaces
}

// SaveWorkspaces persists the workspace list for the current session's user.
func (a *Adapter) SaveWorkspaces(workspaces []model.Workspace) bool {
	s := a.Session()
	if !s.Active() {
		return false
	}
	return a.Set(keyWorkspaces+s.ID, workspaces)
}

// Settings returns the current session user's settings, falling back to
// defaults when no session or no stored settings exist.
func (a *Adapter) Settings() model.Settings {
	settings := model.DefaultSettings()
	s := a.Session()
	if !s.Active() {
		return settings
	}
	a.Get(keySettings+s.ID, &settings)
	return settings
}

// SaveSettings persists the settings for the current session's user.
func (a *Adapter) SaveSettings(settings model.Settings) bool {
	s := a.Session()
	if !s.Active() {
		return false
	}
	return a.Set(keySettings+s.ID, settings)
}
