package workspace

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
)

// ErrNameRequired is returned when a created workspace has an empty name.
var ErrNameRequired = errors.New("workspace name is required")

// colors is the palette new workspaces cycle through.
var colors = []string{
	"#4b6cb7", "#4CAF50", "#FF9800", "#9C27B0", "#2196F3", "#795548",
}

// Service manages the workspace list and workspace/task membership.
type Service struct {
	state *state.Store
}

// NewService creates a workspace service bound to the state store.
func NewService(store *state.Store) *Service {
	return &Service{state: store}
}

// List returns the current workspaces.
func (s *Service) List() []model.Workspace {
	return s.state.GetState().Workspaces
}

// Current returns the active workspace, falling back to the first one.
func (s *Service) Current() (model.Workspace, bool) {
	snap := s.state.GetState()
	for _, w := range snap.Workspaces {
		if w.ID == snap.CurrentWorkspace {
			return w, true
		}
	}
	if len(snap.Workspaces) > 0 {
		return snap.Workspaces[0], true
	}
	return model.Workspace{}, false
}

// Switch makes the given workspace current.
func (s *Service) Switch(id string) {
	s.state.SwitchWorkspace(id)
	s.state.AddNotification("Switched workspace", model.SeverityInfo)
}

// Create appends a new workspace. The color is assigned from the palette
// by position when none is given.
func (s *Service) Create(name, color string) (model.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Workspace{}, ErrNameRequired
	}

	snap := s.state.GetState()
	if color == "" {
		color = colors[len(snap.Workspaces)%len(colors)]
	}

	w := model.Workspace{
		ID:        model.NewID("workspace"),
		Name:      name,
		Color:     color,
		CreatedBy: snap.User.ID,
		CreatedAt: time.Now().UTC(),
	}

	workspaces := append(append([]model.Workspace(nil), snap.Workspaces...), w)
	s.state.SetState(state.Patch{Workspaces: &workspaces})
	s.state.AddNotification(fmt.Sprintf("Workspace %q created", name), model.SeveritySuccess)
	return w, nil
}

// Delete removes a workspace and cascade-deletes its tasks. When the
// deleted workspace was current, the first remaining one becomes current.
func (s *Service) Delete(id string) {
	snap := s.state.GetState()

	workspaces := make([]model.Workspace, 0, len(snap.Workspaces))
	for _, w := range snap.Workspaces {
		if w.ID != id {
			workspaces = append(workspaces, w)
		}
	}

	tasks := make([]model.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if t.WorkspaceID != id {
			tasks = append(tasks, t)
		}
	}

	patch := state.Patch{Workspaces: &workspaces, Tasks: &tasks}
	if snap.CurrentWorkspace == id {
		current := ""
		if len(workspaces) > 0 {
			current = workspaces[0].ID
		}
		patch.CurrentWorkspace = &current
	}

	s.state.SetState(patch)
	s.state.AddNotification("Workspace deleted", model.SeverityInfo)
}
