package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// ExportVersion is the format version stamped into export documents.
const ExportVersion = "1.0.0"

// ErrInvalidFormat is returned when an imported document lacks a task
// list.
var ErrInvalidFormat = errors.New("file does not contain a task list")

// ExportDocument is the on-disk export format.
type ExportDocument struct {
	Tasks      []model.Task `json:"tasks"`
	ExportedAt time.Time    `json:"exportedAt"`
	Version    string       `json:"version"`
}

// Export serializes the full task list to tasks-export-<date>.json in
// dir and returns the written path.
func (s *Service) Export(dir string) (string, error) {
	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	doc := ExportDocument{
		Tasks:      s.state.GetState().Tasks,
		ExportedAt: time.Now().UTC(),
		Version:    ExportVersion,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}

	name := fmt.Sprintf("tasks-export-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export to %s: %w", path, err)
	}

	s.state.AddNotification("Tasks exported successfully", model.SeveritySuccess)
	return path, nil
}

// Import parses a file in the export format and re-inserts every record
// as a new task. Imported ids are never reused; each task gets a freshly
// generated one to avoid collisions. Returns the number imported.
func (s *Service) Import(path string) (int, error) {
	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file %s: %w", path, err)
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parsing import file: %w", err)
	}
	if doc.Tasks == nil {
		return 0, ErrInvalidFormat
	}

	for _, record := range doc.Tasks {
		record.ID = ""
		s.state.AddTask(s.New(record))
	}

	s.state.AddNotification(
		fmt.Sprintf("%d tasks imported successfully", len(doc.Tasks)),
		model.SeveritySuccess)
	return len(doc.Tasks), nil
}
