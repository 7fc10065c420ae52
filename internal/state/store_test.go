package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Adapter) {
	t.Helper()
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return New(a, 0), a
}

func loggedInStore(t *testing.T) *Store {
	t.Helper()
	s, _ := newTestStore(t)
	s.Login(model.Session{ID: "user_1", Name: "Ada", Email: "ada@example.com"})
	return s
}

func TestGetStateReturnsIndependentCopy(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1", Title: "original", Tags: []string{"a"}})

	snap := s.GetState()
	snap.Tasks[0].Title = "mutated"
	snap.Tasks[0].Tags[0] = "mutated"

	fresh := s.GetState()
	assert.Equal(t, "original", fresh.Tasks[0].Title)
	assert.Equal(t, "a", fresh.Tasks[0].Tags[0])
}

func TestSetStateMergesOnlyPatchedFields(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1", Title: "keep me"})

	dark := model.ThemeDark
	updated := s.SetState(Patch{UI: &UIPatch{Theme: &dark}})

	assert.Equal(t, model.ThemeDark, updated.UI.Theme)
	require.Len(t, updated.Tasks, 1)
	assert.Equal(t, "keep me", updated.Tasks[0].Title)
	assert.True(t, updated.User.Active())
}

func TestSubscribeReceivesOldAndNew(t *testing.T) {
	s := loggedInStore(t)

	var gotOld, gotNew Snapshot
	calls := 0
	unsubscribe := s.Subscribe(func(old, new Snapshot) {
		calls++
		gotOld, gotNew = old, new
	})

	s.AddTask(model.Task{ID: "t1", Title: "first"})
	require.Equal(t, 1, calls)
	assert.Empty(t, gotOld.Tasks)
	require.Len(t, gotNew.Tasks, 1)

	unsubscribe()
	s.AddTask(model.Task{ID: "t2", Title: "second"})
	assert.Equal(t, 1, calls, "unsubscribed listener must not fire")
}

func TestListenerPanicDoesNotBreakOthers(t *testing.T) {
	s := loggedInStore(t)

	s.Subscribe(func(old, new Snapshot) {
		panic("boom")
	})
	survived := false
	s.Subscribe(func(old, new Snapshot) {
		survived = true
	})

	s.AddTask(model.Task{ID: "t1"})
	assert.True(t, survived)
}

func TestListenerSnapshotsAreIsolated(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1", Title: "original"})

	s.Subscribe(func(old, new Snapshot) {
		if len(new.Tasks) > 0 {
			new.Tasks[0].Title = "mutated by listener"
		}
	})
	s.SetState(Patch{})

	assert.Equal(t, "original", s.GetState().Tasks[0].Title)
}

func TestPersistenceAcrossStores(t *testing.T) {
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	first := New(a, 0)
	first.Login(model.Session{ID: "user_1", Name: "Ada"})
	first.AddTask(model.Task{ID: "t1", Title: "persisted"})
	dark := model.ThemeDark
	first.SetState(Patch{UI: &UIPatch{Theme: &dark}})

	// A new store over the same adapter resumes the persisted session.
	second := New(a, 0)
	snap := second.GetState()
	assert.Equal(t, "user_1", snap.User.ID)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "persisted", snap.Tasks[0].Title)
	assert.Equal(t, model.ThemeDark, snap.UI.Theme)
}

func TestNothingPersistsWithoutSession(t *testing.T) {
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	s := New(a, 0)
	s.AddTask(model.Task{ID: "t1", Title: "ephemeral"})

	// In-memory state holds the task, storage does not.
	assert.Len(t, s.GetState().Tasks, 1)
	assert.Empty(t, a.Tasks())
}

func TestLoginSeedsDefaultWorkspaces(t *testing.T) {
	s := loggedInStore(t)

	snap := s.GetState()
	require.Len(t, snap.Workspaces, 2)
	assert.Equal(t, "Personal", snap.Workspaces[0].Name)
	assert.Equal(t, "#4b6cb7", snap.Workspaces[0].Color)
	assert.Equal(t, "Work", snap.Workspaces[1].Name)
	assert.Equal(t, "#4CAF50", snap.Workspaces[1].Color)
	assert.Equal(t, snap.Workspaces[0].ID, snap.CurrentWorkspace)
}

func TestLogoutClearsPerUserState(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1"})
	s.SetStatusFilter(model.StatusCompleted)

	snap := s.Logout()

	assert.False(t, snap.User.Active())
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Workspaces)
	assert.Equal(t, model.DefaultFilters(), snap.Filters)
}

func TestAddTaskPrepends(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1", Title: "older"})
	s.AddTask(model.Task{ID: "t2", Title: "newer"})

	tasks := s.GetState().Tasks
	require.Len(t, tasks, 2)
	assert.Equal(t, "newer", tasks[0].Title)
	assert.Equal(t, "older", tasks[1].Title)
}

func TestUpdateTaskBumpsUpdatedAtAndKeepsID(t *testing.T) {
	s := loggedInStore(t)
	created := time.Now().UTC().Add(-time.Hour)
	s.AddTask(model.Task{ID: "t1", Title: "before", UpdatedAt: created})

	s.UpdateTask("t1", func(task *model.Task) {
		task.Title = "after"
		task.ID = "hijacked"
	})

	got := s.GetState().Tasks[0]
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.UpdatedAt.After(created))
}

func TestUpdateUnknownTaskIsNoOp(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1", Title: "untouched"})

	s.UpdateTask("missing", func(task *model.Task) {
		task.Title = "changed"
	})

	assert.Equal(t, "untouched", s.GetState().Tasks[0].Title)
}

func TestToggleTaskCompleteIsIdempotentPair(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1"})

	s.ToggleTaskComplete("t1")
	assert.True(t, s.GetState().Tasks[0].Completed)

	s.ToggleTaskComplete("t1")
	assert.False(t, s.GetState().Tasks[0].Completed)
}

func TestDeleteTask(t *testing.T) {
	s := loggedInStore(t)
	s.AddTask(model.Task{ID: "t1"})
	s.AddTask(model.Task{ID: "t2"})

	s.DeleteTask("t1")

	tasks := s.GetState().Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].ID)
}

func TestNotificationExpiresAfterTTL(t *testing.T) {
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	s := New(a, 30*time.Millisecond)
	id := s.AddNotification("saved", model.SeveritySuccess)

	notifications := s.GetState().UI.Notifications
	require.Len(t, notifications, 1)
	assert.Equal(t, id, notifications[0].ID)
	assert.Equal(t, model.SeveritySuccess, notifications[0].Severity)

	require.Eventually(t, func() bool {
		return len(s.GetState().UI.Notifications) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRemoveNotificationTwiceIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddNotification("hello", model.SeverityInfo)

	s.RemoveNotification(id)
	s.RemoveNotification(id)
	assert.Empty(t, s.GetState().UI.Notifications)
}

func TestToggleTheme(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, model.ThemeLight, s.GetState().UI.Theme)
	s.ToggleTheme()
	assert.Equal(t, model.ThemeDark, s.GetState().UI.Theme)
	s.ToggleTheme()
	assert.Equal(t, model.ThemeLight, s.GetState().UI.Theme)
}

func TestModalStateMachine(t *testing.T) {
	s, _ := newTestStore(t)

	assert.False(t, s.GetState().UI.Modal.Open())

	s.OpenModal(model.Modal{Kind: model.ModalTaskEdit, TaskID: "t1"})
	modal := s.GetState().UI.Modal
	assert.True(t, modal.Open())
	assert.Equal(t, "t1", modal.TaskID)

	// Opening another modal replaces the first.
	s.OpenModal(model.Modal{Kind: model.ModalConfirmDelete, TaskID: "t2"})
	assert.Equal(t, model.ModalConfirmDelete, s.GetState().UI.Modal.Kind)

	s.CloseModal()
	assert.False(t, s.GetState().UI.Modal.Open())
}
