package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
)

func TestExportWritesVersionedDocument(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Save(model.Task{Title: "exported", Tags: []string{"a"}})
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := svc.Export(dir)
	require.NoError(t, err)

	wantName := fmt.Sprintf("tasks-export-%s.json", time.Now().Format("2006-01-02"))
	assert.Equal(t, wantName, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, ExportVersion, doc.Version)
	assert.False(t, doc.ExportedAt.IsZero())
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "exported", doc.Tasks[0].Title)
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newTestService(t)
	due := time.Now().UTC().Truncate(time.Second).Add(48 * time.Hour)
	_, err := src.Save(model.Task{
		Title:    "carry me over",
		Priority: model.PriorityHigh,
		DueDate:  &due,
		Tags:     []string{"move", "keep"},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := src.Export(dir)
	require.NoError(t, err)

	dst, dstStore := newTestService(t)
	count, err := dst.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	imported := dstStore.GetState().Tasks
	require.Len(t, imported, 1)
	assert.Equal(t, "carry me over", imported[0].Title)
	assert.Equal(t, model.PriorityHigh, imported[0].Priority)
	assert.Equal(t, []string{"move", "keep"}, imported[0].Tags)
	require.NotNil(t, imported[0].DueDate)
	assert.True(t, imported[0].DueDate.Equal(due))
}

func TestExportRaisesLoadingFlag(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Save(model.Task{Title: "exported"})
	require.NoError(t, err)

	var sawLoading bool
	unsubscribe := store.Subscribe(func(old, new state.Snapshot) {
		if new.UI.Loading {
			sawLoading = true
		}
	})
	defer unsubscribe()

	_, err = svc.Export(t.TempDir())
	require.NoError(t, err)

	assert.True(t, sawLoading, "export runs with the loading flag raised")
	assert.False(t, store.GetState().UI.Loading, "flag is lowered when done")
}

func TestImportRegeneratesIDs(t *testing.T) {
	svc, store := newTestService(t)
	created, err := svc.Save(model.Task{Title: "original"})
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := svc.Export(dir)
	require.NoError(t, err)

	// Importing into the same store must not collide with the original.
	count, err := svc.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	tasks := store.GetState().Tasks
	require.Len(t, tasks, 2)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
	assert.NotEqual(t, created.ID, tasks[0].ID, "imported task gets a fresh id")
}

func TestImportRejectsDocumentsWithoutTasks(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "no tasks field", content: `{"exportedAt":"2026-01-01T00:00:00Z","version":"1.0.0"}`},
		{name: "tasks is null", content: `{"tasks":null,"version":"1.0.0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := svc.Import(path)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestImportBadJSON(t *testing.T) {
	svc, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := svc.Import(path)
	assert.Error(t, err)
}

func TestImportMissingFile(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
