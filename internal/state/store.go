package state

import (
	"log"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// DefaultNotificationTTL is how long a notification stays in state before
// it is removed automatically.
const DefaultNotificationTTL = 5 * time.Second

// UIState holds the transient interface slice of the snapshot.
type UIState struct {
	Theme         string
	View          string
	Loading       bool
	Notifications []model.Notification
	Modal         model.Modal
}

// Snapshot is the full in-memory application state at a point in time.
type Snapshot struct {
	User             model.Session
	Tasks            []model.Task
	Workspaces       []model.Workspace
	CurrentWorkspace string
	Filters          model.FilterSet
	UI               UIState
}

// Clone returns a deep, independent copy of the snapshot. Callers can
// mutate the copy freely without affecting the live state.
func (s Snapshot) Clone() Snapshot {
	c := s
	if s.Tasks != nil {
		c.Tasks = make([]model.Task, len(s.Tasks))
		for i, t := range s.Tasks {
			c.Tasks[i] = t.Clone()
		}
	}
	if s.Workspaces != nil {
		c.Workspaces = append([]model.Workspace(nil), s.Workspaces...)
	}
	c.Filters = s.Filters.Clone()
	if s.UI.Notifications != nil {
		c.UI.Notifications = append([]model.Notification(nil), s.UI.Notifications...)
	}
	return c
}

// UIPatch describes a partial update of the UI slice. Nil fields are
// left unchanged.
type UIPatch struct {
	Theme         *string
	View          *string
	Loading       *bool
	Notifications *[]model.Notification
	Modal         *model.Modal
}

// Patch describes a partial update of the snapshot. Nil fields are left
// unchanged; non-nil fields replace the corresponding slice wholesale.
type Patch struct {
	User             *model.Session
	Tasks            *[]model.Task
	Workspaces       *[]model.Workspace
	CurrentWorkspace *string
	Filters          *model.FilterSet
	UI               *UIPatch
}

// Listener observes state transitions. It receives independent copies of
// the snapshots before and after the change.
type Listener func(old, new Snapshot)

// Store is the single authoritative holder of application state. All
// mutations go through SetState, which merges a patch, persists the
// durable slices, and notifies subscribers. A mutex guards the snapshot
// because Bubble Tea commands and notification timers run on their own
// goroutines.
type Store struct {
	mu        sync.Mutex
	snapshot  Snapshot
	storage   *storage.Adapter
	listeners map[int]Listener
	nextID    int
	notifTTL  time.Duration
}

// New creates a state store bound to the given storage adapter. If a
// session pointer is persisted, the matching user's tasks, workspaces,
// and settings are loaded into the initial snapshot. A notificationTTL
// of zero or less selects DefaultNotificationTTL.
func New(st *storage.Adapter, notificationTTL time.Duration) *Store {
	if notificationTTL <= 0 {
		notificationTTL = DefaultNotificationTTL
	}

	s := &Store{
		storage:   st,
		listeners: make(map[int]Listener),
		notifTTL:  notificationTTL,
		snapshot: Snapshot{
			Filters: model.DefaultFilters(),
			UI: UIState{
				Theme: model.ThemeLight,
				View:  model.ViewList,
			},
		},
	}

	if sess := st.Session(); sess.Active() {
		s.snapshot.User = sess
		s.snapshot.Tasks = st.Tasks()
		s.snapshot.Workspaces = st.Workspaces()
		if len(s.snapshot.Workspaces) > 0 {
			s.snapshot.CurrentWorkspace = s.snapshot.Workspaces[0].ID
		}
		settings := st.Settings()
		s.snapshot.UI.Theme = settings.Theme
		s.snapshot.UI.View = settings.DefaultView
	}

	return s
}

// GetState returns a deep, independent copy of the current snapshot.
func (s *Store) GetState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// SetState merges the patch into the snapshot, persists the durable
// slices while a session exists, and notifies every subscriber with the
// old and new snapshots. Notification happens synchronously, after the
// lock is released so listeners may call back into the store.
func (s *Store) SetState(p Patch) Snapshot {
	s.mu.Lock()

	old := s.snapshot.Clone()
	s.merge(p)
	s.persistLocked()
	updated := s.snapshot.Clone()

	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		notify(l, old, updated)
	}

	return updated
}

// merge applies non-nil patch fields. Caller holds the lock.
func (s *Store) merge(p Patch) {
	if p.User != nil {
		s.snapshot.User = *p.User
	}
	if p.Tasks != nil {
		s.snapshot.Tasks = *p.Tasks
	}
	if p.Workspaces != nil {
		s.snapshot.Workspaces = *p.Workspaces
	}
	if p.CurrentWorkspace != nil {
		s.snapshot.CurrentWorkspace = *p.CurrentWorkspace
	}
	if p.Filters != nil {
		s.snapshot.Filters = *p.Filters
	}
	if p.UI != nil {
		if p.UI.Theme != nil {
			s.snapshot.UI.Theme = *p.UI.Theme
		}
		if p.UI.View != nil {
			s.snapshot.UI.View = *p.UI.View
		}
		if p.UI.Loading != nil {
			s.snapshot.UI.Loading = *p.UI.Loading
		}
		if p.UI.Notifications != nil {
			s.snapshot.UI.Notifications = *p.UI.Notifications
		}
		if p.UI.Modal != nil {
			s.snapshot.UI.Modal = *p.UI.Modal
		}
	}
}

// persistLocked writes the durable slices through the storage adapter.
// Nothing is persisted without an active session; the worst-case outcome
// of a storage failure is an unpersisted in-memory change.
func (s *Store) persistLocked() {
	if !s.snapshot.User.Active() {
		return
	}
	s.storage.SaveSession(s.snapshot.User)
	s.storage.SaveTasks(s.snapshot.Tasks)
	s.storage.SaveWorkspaces(s.snapshot.Workspaces)
	s.storage.SaveSettings(model.Settings{
		Theme:       s.snapshot.UI.Theme,
		DefaultView: s.snapshot.UI.View,
	})
}

// notify invokes a single listener, recovering a panic so one failing
// subscriber cannot break the others.
func notify(l Listener, old, new Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("state: listener panic: %v", r)
		}
	}()
	l(old, new)
}

// Subscribe registers a change listener and returns its unsubscribe
// function.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
