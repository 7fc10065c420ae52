package state

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// Login installs the session, loads the user's persisted tasks,
// workspaces, and settings, and seeds the default workspaces for a
// fresh account. The session pointer is written first so the per-user
// storage accessors resolve against the new user.
func (s *Store) Login(sess model.Session) Snapshot {
	s.storage.SaveSession(sess)

	tasks := s.storage.Tasks()
	workspaces := s.storage.Workspaces()
	if len(workspaces) == 0 {
		workspaces = model.DefaultWorkspaces(time.Now().UTC())
	}
	current := ""
	if len(workspaces) > 0 {
		current = workspaces[0].ID
	}
	settings := s.storage.Settings()

	return s.SetState(Patch{
		User:             &sess,
		Tasks:            &tasks,
		Workspaces:       &workspaces,
		CurrentWorkspace: &current,
		UI: &UIPatch{
			Theme: &settings.Theme,
			View:  &settings.DefaultView,
		},
	})
}

// Logout clears the session pointer and empties the per-user slices.
// The theme preference is kept for the login screen.
func (s *Store) Logout() Snapshot {
	s.storage.ClearSession()

	empty := model.Session{}
	var tasks []model.Task
	var workspaces []model.Workspace
	current := ""
	filters := model.DefaultFilters()

	return s.SetState(Patch{
		User:             &empty,
		Tasks:            &tasks,
		Workspaces:       &workspaces,
		CurrentWorkspace: &current,
		Filters:          &filters,
	})
}

// AddTask prepends the task to the list.
func (s *Store) AddTask(task model.Task) Snapshot {
	s.mu.Lock()
	tasks := append([]model.Task{task}, s.snapshot.Tasks...)
	s.mu.Unlock()
	return s.SetState(Patch{Tasks: &tasks})
}

// UpdateTask applies mutate to the task with the given id and bumps its
// UpdatedAt. Unknown ids are a no-op.
func (s *Store) UpdateTask(id string, mutate func(*model.Task)) Snapshot {
	s.mu.Lock()
	tasks := make([]model.Task, len(s.snapshot.Tasks))
	for i, t := range s.snapshot.Tasks {
		t = t.Clone()
		if t.ID == id {
			mutate(&t)
			t.ID = id // the id is immutable after creation
			t.UpdatedAt = time.Now().UTC()
		}
		tasks[i] = t
	}
	s.mu.Unlock()
	return s.SetState(Patch{Tasks: &tasks})
}

// DeleteTask removes the task with the given id.
func (s *Store) DeleteTask(id string) Snapshot {
	s.mu.Lock()
	tasks := make([]model.Task, 0, len(s.snapshot.Tasks))
	for _, t := range s.snapshot.Tasks {
		if t.ID != id {
			tasks = append(tasks, t.Clone())
		}
	}
	s.mu.Unlock()
	return s.SetState(Patch{Tasks: &tasks})
}

// ToggleTaskComplete flips the completed flag of the task with the
// given id.
func (s *Store) ToggleTaskComplete(id string) Snapshot {
	return s.UpdateTask(id, func(t *model.Task) {
		t.Completed = !t.Completed
	})
}

// SetStatusFilter sets the status predicate (all/active/completed).
func (s *Store) SetStatusFilter(status string) Snapshot {
	return s.patchFilters(func(f *model.FilterSet) { f.Status = status })
}

// SetPriorityFilter sets the priority predicate ("all" or one priority).
func (s *Store) SetPriorityFilter(priority string) Snapshot {
	return s.patchFilters(func(f *model.FilterSet) { f.Priority = priority })
}

// SetSearch sets the free-text search predicate.
func (s *Store) SetSearch(search string) Snapshot {
	return s.patchFilters(func(f *model.FilterSet) { f.Search = search })
}

// SetTagFilter sets the tag subset predicate.
func (s *Store) SetTagFilter(tags []string) Snapshot {
	return s.patchFilters(func(f *model.FilterSet) {
		f.Tags = append([]string(nil), tags...)
	})
}

// ClearFilters resets every filter to its all-pass default.
func (s *Store) ClearFilters() Snapshot {
	filters := model.DefaultFilters()
	return s.SetState(Patch{Filters: &filters})
}

func (s *Store) patchFilters(mutate func(*model.FilterSet)) Snapshot {
	s.mu.Lock()
	filters := s.snapshot.Filters.Clone()
	s.mu.Unlock()
	mutate(&filters)
	return s.SetState(Patch{Filters: &filters})
}

// SwitchWorkspace makes the given workspace the current one.
func (s *Store) SwitchWorkspace(id string) Snapshot {
	return s.SetState(Patch{CurrentWorkspace: &id})
}

// ToggleTheme flips between the light and dark themes.
func (s *Store) ToggleTheme() Snapshot {
	s.mu.Lock()
	theme := model.ThemeLight
	if s.snapshot.UI.Theme == model.ThemeLight {
		theme = model.ThemeDark
	}
	s.mu.Unlock()
	return s.SetState(Patch{UI: &UIPatch{Theme: &theme}})
}

// SetLoading sets the UI loading flag.
func (s *Store) SetLoading(loading bool) Snapshot {
	return s.SetState(Patch{UI: &UIPatch{Loading: &loading}})
}

// OpenModal opens a modal; any previously open modal is replaced.
func (s *Store) OpenModal(m model.Modal) Snapshot {
	return s.SetState(Patch{UI: &UIPatch{Modal: &m}})
}

// CloseModal closes the current modal.
func (s *Store) CloseModal() Snapshot {
	closed := model.Modal{}
	return s.SetState(Patch{UI: &UIPatch{Modal: &closed}})
}

// AddNotification appends a notification and schedules its automatic
// removal after the store's TTL. The generated id is returned.
func (s *Store) AddNotification(message, severity string) string {
	n := model.Notification{
		ID:        model.NewID("notif"),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	notifications := append(
		append([]model.Notification(nil), s.snapshot.UI.Notifications...), n)
	s.mu.Unlock()
	s.SetState(Patch{UI: &UIPatch{Notifications: &notifications}})

	time.AfterFunc(s.notifTTL, func() {
		s.RemoveNotification(n.ID)
	})

	return n.ID
}

// RemoveNotification removes a notification by id. Already-expired ids
// are a no-op.
func (s *Store) RemoveNotification(id string) Snapshot {
	s.mu.Lock()
	notifications := make([]model.Notification, 0, len(s.snapshot.UI.Notifications))
	for _, n := range s.snapshot.UI.Notifications {
		if n.ID != id {
			notifications = append(notifications, n)
		}
	}
	s.mu.Unlock()
	return s.SetState(Patch{UI: &UIPatch{Notifications: &notifications}})
}
