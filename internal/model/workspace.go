package model

import "time"

// Workspace is a named grouping for tasks. A task references at most
// one workspace.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultWorkspaces returns the two system-seeded workspaces every new
// account starts with.
func DefaultWorkspaces(now time.Time) []Workspace {
	return []Workspace{
		{
			ID:        "personal",
			Name:      "Personal",
			Color:     "#4b6cb7",
			CreatedBy: "system",
			CreatedAt: now,
		},
		{
			ID:        "work",
			Name:      "Work",
			Color:     "#4CAF50",
			CreatedBy: "system",
			CreatedAt: now,
		},
	}
}
