package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/model"
)

func openTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSetGetRoundTrip(t *testing.T) {
	a := openTestAdapter(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.True(t, a.Set("sample", payload{Name: "alpha", Count: 3}))

	var got payload
	require.True(t, a.Get("sample", &got))
	assert.Equal(t, payload{Name: "alpha", Count: 3}, got)

	// Overwrite under the same key.
	require.True(t, a.Set("sample", payload{Name: "beta", Count: 4}))
	require.True(t, a.Get("sample", &got))
	assert.Equal(t, "beta", got.Name)
}

func TestGetMissingKeyLeavesDestUntouched(t *testing.T) {
	a := openTestAdapter(t)

	got := "unchanged"
	assert.False(t, a.Get("nope", &got))
	assert.Equal(t, "unchanged", got)
}

func TestGetCorruptValueDegrades(t *testing.T) {
	a := openTestAdapter(t)

	// Bypass Set to plant a value that is not valid JSON for the target.
	_, err := a.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?)",
		keyPrefix+"broken", "{not json",
	)
	require.NoError(t, err)

	var got map[string]string
	assert.False(t, a.Get("broken", &got))
	assert.Nil(t, got)
}

func TestRemoveAndClear(t *testing.T) {
	a := openTestAdapter(t)

	a.Set("one", 1)
	a.Set("two", 2)

	a.Remove("one")
	var n int
	assert.False(t, a.Get("one", &n))
	assert.True(t, a.Get("two", &n))

	// Remove of a missing key is a no-op.
	a.Remove("one")

	a.Clear()
	assert.False(t, a.Get("two", &n))
}

func TestClearOnlyTouchesNamespace(t *testing.T) {
	a := openTestAdapter(t)

	_, err := a.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?)", "foreign_key", `"kept"`)
	require.NoError(t, err)

	a.Set("mine", "gone")
	a.Clear()

	var raw string
	require.NoError(t, a.db.Get(&raw, "SELECT value FROM kv WHERE key = ?", "foreign_key"))
	assert.Equal(t, `"kept"`, raw)
}

func TestPerUserAccessorsRequireSession(t *testing.T) {
	a := openTestAdapter(t)

	assert.Empty(t, a.Tasks())
	assert.False(t, a.SaveTasks([]model.Task{{ID: "t1"}}))
	assert.Empty(t, a.Workspaces())
	assert.Equal(t, model.DefaultSettings(), a.Settings())
}

func TestPerUserRecordsAreNamespacedByUser(t *testing.T) {
	a := openTestAdapter(t)
	now := time.Now().UTC()

	a.SaveSession(model.Session{ID: "user_a", Name: "A"})
	require.True(t, a.SaveTasks([]model.Task{{ID: "t1", Title: "A's task", CreatedAt: now}}))

	a.SaveSession(model.Session{ID: "user_b", Name: "B"})
	assert.Empty(t, a.Tasks())

	a.SaveSession(model.Session{ID: "user_a", Name: "A"})
	tasks := a.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "A's task", tasks[0].Title)
}

func TestSessionRoundTrip(t *testing.T) {
	a := openTestAdapter(t)

	assert.False(t, a.Session().Active())

	sess := model.Session{ID: "user_1", Name: "Ada", Email: "ada@example.com"}
	a.SaveSession(sess)
	assert.Equal(t, sess, a.Session())

	a.ClearSession()
	assert.False(t, a.Session().Active())
}

func TestOpenIsIdempotentOnMigrations(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/taskdeck.db"

	a, err := Open(path)
	require.NoError(t, err)
	a.Set("persisted", 42)
	require.NoError(t, a.Close())

	// Reopening must not re-run migrations destructively.
	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	var n int
	require.True(t, b.Get("persisted", &n))
	assert.Equal(t, 42, n)
}
