package state

import (
	"math"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// Statistics summarizes the task list independent of any filter.
type Statistics struct {
	Total          int
	Completed      int
	Pending        int
	Overdue        int
	PriorityCounts map[string]int
	CompletionRate int
}

// FilteredTasks derives the visible task list from the current snapshot.
// Predicates apply in order status, priority, tag subset, text search,
// conjunctively: every returned task satisfies all active filters. The
// result is always a subset of the stored list, returned as copies.
func (s *Store) FilteredTasks() []model.Task {
	snap := s.GetState()
	return FilterTasks(snap.Tasks, snap.Filters)
}

// FilterTasks applies the filter set to a task list. It is a pure
// function of its arguments.
func FilterTasks(tasks []model.Task, f model.FilterSet) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		switch f.Status {
		case model.StatusActive:
			if t.Completed {
				continue
			}
		case model.StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		if f.Priority != "" && f.Priority != model.PriorityAll && t.Priority != f.Priority {
			continue
		}
		if !t.HasAnyTag(f.Tags) {
			continue
		}
		if !t.MatchesSearch(f.Search) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// Statistics computes counts over the full task list. CompletionRate is
// round(completed/total*100), defined as 0 when the list is empty.
func (s *Store) Statistics() Statistics {
	snap := s.GetState()
	return ComputeStatistics(snap.Tasks, time.Now())
}

// ComputeStatistics is the pure computation behind Statistics.
func ComputeStatistics(tasks []model.Task, now time.Time) Statistics {
	stats := Statistics{
		Total:          len(tasks),
		PriorityCounts: make(map[string]int),
	}

	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		stats.PriorityCounts[t.Priority]++
	}
	stats.Pending = stats.Total - stats.Completed

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = int(math.Round(rate))
	}

	return stats
}
