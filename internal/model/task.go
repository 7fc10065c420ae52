package model

import (
	"strings"
	"time"
)

// Task priority levels. The set is fixed; anything else is rejected
// at the task service boundary.
const (
	PriorityNone   = "none"
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultPriority is applied when a new task does not specify one.
const DefaultPriority = PriorityMedium

// ValidPriority reports whether p is one of the fixed priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item owned by a user.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	WorkspaceID string     `json:"workspaceId,omitempty"`
	Completed   bool       `json:"completed"`
	Starred     bool       `json:"starred"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CreatedBy   string     `json:"createdBy,omitempty"`
}

// IsOverdue reports whether the task has a due date strictly before now
// and is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// MatchesSearch reports whether the lowercased term occurs in the task's
// title, description, or any tag. An empty term matches everything.
func (t Task) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the task carries at least one of the given tags.
// An empty selection matches everything.
func (t Task) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Clone returns an independent copy of the task, including its tag slice.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return c
}
