package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
)

var (
	// ErrTitleRequired is returned when a saved task has an empty or
	// whitespace-only title.
	ErrTitleRequired = errors.New("task title is required")

	// ErrInvalidPriority is returned when a saved task carries a priority
	// outside the fixed set.
	ErrInvalidPriority = errors.New("invalid task priority")
)

// Service constructs, validates, and mutates task records. All reads and
// writes are delegated to the state store.
type Service struct {
	state *state.Store
}

// NewService creates a task service bound to the state store.
func NewService(store *state.Store) *Service {
	return &Service{state: store}
}

// New produces a task with a generated id, default priority, and current
// timestamps, overlaid with any caller-supplied fields. The owner and
// workspace default to the current session and workspace.
func (s *Service) New(partial model.Task) model.Task {
	snap := s.state.GetState()
	now := time.Now().UTC()

	t := partial.Clone()
	if t.ID == "" {
		t.ID = model.NewID("task")
	}
	if t.Priority == "" || !model.ValidPriority(t.Priority) {
		t.Priority = model.DefaultPriority
	}
	if t.CreatedBy == "" {
		t.CreatedBy = snap.User.ID
	}
	if t.WorkspaceID == "" {
		t.WorkspaceID = snap.CurrentWorkspace
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	return t
}

// Save validates the task and either merges it into the existing record
// with the same id (bumping UpdatedAt) or creates a new task and
// prepends it to the list.
func (s *Service) Save(data model.Task) (model.Task, error) {
	data.Title = strings.TrimSpace(data.Title)
	data.Description = strings.TrimSpace(data.Description)
	if data.Title == "" {
		return model.Task{}, ErrTitleRequired
	}
	if data.Priority != "" && !model.ValidPriority(data.Priority) {
		return model.Task{}, ErrInvalidPriority
	}

	snap := s.state.GetState()
	for _, existing := range snap.Tasks {
		if existing.ID == data.ID {
			// An omitted priority keeps the stored one, mirroring New's
			// defaulting for created tasks.
			priority := data.Priority
			if priority == "" {
				priority = existing.Priority
			}
			s.state.UpdateTask(data.ID, func(t *model.Task) {
				t.Title = data.Title
				t.Description = data.Description
				t.Priority = priority
				t.DueDate = data.DueDate
				t.Tags = append([]string(nil), data.Tags...)
				t.Assignee = data.Assignee
				t.WorkspaceID = data.WorkspaceID
				t.Completed = data.Completed
				t.Starred = data.Starred
			})
			s.state.AddNotification("Task updated successfully", model.SeveritySuccess)
			return s.find(data.ID), nil
		}
	}

	created := s.New(data)
	s.state.AddTask(created)
	s.state.AddNotification("Task created successfully", model.SeveritySuccess)
	return created, nil
}

// Delete removes a task. Interactive confirmation happens in the UI
// modal before this is called.
func (s *Service) Delete(id string) {
	s.state.DeleteTask(id)
	s.state.AddNotification("Task deleted", model.SeverityInfo)
}

// ToggleComplete flips the completed flag of a task.
func (s *Service) ToggleComplete(id string) {
	s.state.ToggleTaskComplete(id)

	if t := s.find(id); t.ID != "" {
		status := "marked as active"
		if t.Completed {
			status = "completed"
		}
		s.state.AddNotification(
			fmt.Sprintf("Task %q %s", t.Title, status), model.SeverityInfo)
	}
}

// find returns the task with the given id from the current snapshot, or
// a zero task when absent.
func (s *Service) find(id string) model.Task {
	for _, t := range s.state.GetState().Tasks {
		if t.ID == id {
			return t
		}
	}
	return model.Task{}
}
