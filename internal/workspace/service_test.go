package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/storage"
)

func newTestService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	store := state.New(a, 0)
	store.Login(model.Session{ID: "user_1", Name: "Ada"})
	return NewService(store), store
}

func TestDefaultWorkspacesSeededOnLogin(t *testing.T) {
	svc, _ := newTestService(t)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Personal", list[0].Name)
	assert.Equal(t, "Work", list[1].Name)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, list[0].ID, current.ID)
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create("Side Projects", "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Side Projects", created.Name)
	// Third workspace takes the third palette color.
	assert.Equal(t, colors[2], created.Color)
	assert.Equal(t, "user_1", created.CreatedBy)

	assert.Len(t, svc.List(), 3)
}

func TestCreateExplicitColorWins(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create("Tinted", "#123456")
	require.NoError(t, err)
	assert.Equal(t, "#123456", created.Color)
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create("   ", "")
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Len(t, svc.List(), 2)
}

func TestSwitch(t *testing.T) {
	svc, store := newTestService(t)
	list := svc.List()

	svc.Switch(list[1].ID)
	assert.Equal(t, list[1].ID, store.GetState().CurrentWorkspace)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "Work", current.Name)
}

func TestDeleteCascadesTasks(t *testing.T) {
	svc, store := newTestService(t)
	list := svc.List()
	doomed, kept := list[0], list[1]

	store.AddTask(model.Task{ID: "t1", Title: "in doomed", WorkspaceID: doomed.ID})
	store.AddTask(model.Task{ID: "t2", Title: "in kept", WorkspaceID: kept.ID})

	svc.Delete(doomed.ID)

	snap := store.GetState()
	require.Len(t, snap.Workspaces, 1)
	assert.Equal(t, kept.ID, snap.Workspaces[0].ID)

	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "t2", snap.Tasks[0].ID)
}

func TestDeleteCurrentRepointsToFirstRemaining(t *testing.T) {
	svc, store := newTestService(t)
	list := svc.List()

	// The seeded current workspace is the first one.
	require.Equal(t, list[0].ID, store.GetState().CurrentWorkspace)

	svc.Delete(list[0].ID)
	assert.Equal(t, list[1].ID, store.GetState().CurrentWorkspace)
}

func TestDeleteLastWorkspaceClearsCurrent(t *testing.T) {
	svc, store := newTestService(t)
	for _, w := range svc.List() {
		svc.Delete(w.ID)
	}

	snap := store.GetState()
	assert.Empty(t, snap.Workspaces)
	assert.Empty(t, snap.CurrentWorkspace)

	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestDeleteNonCurrentKeepsCurrent(t *testing.T) {
	svc, store := newTestService(t)
	list := svc.List()

	svc.Delete(list[1].ID)
	assert.Equal(t, list[0].ID, store.GetState().CurrentWorkspace)
}
