package model

// Status filter values.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// PriorityAll disables the priority filter.
const PriorityAll = "all"

// FilterSet is the ephemeral UI filter state applied to the task list.
// Active predicates are conjunctive: a task must satisfy all of them.
type FilterSet struct {
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
	Search   string   `json:"search"`
	Tags     []string `json:"tags,omitempty"`
}

// DefaultFilters returns the all-pass filter set.
func DefaultFilters() FilterSet {
	return FilterSet{
		Status:   StatusAll,
		Priority: PriorityAll,
	}
}

// Active reports whether any predicate differs from the all-pass
// defaults.
func (f FilterSet) Active() bool {
	return f.Status != StatusAll ||
		f.Priority != PriorityAll ||
		f.Search != "" ||
		len(f.Tags) > 0
}

// Clone returns an independent copy of the filter set.
func (f FilterSet) Clone() FilterSet {
	c := f
	if f.Tags != nil {
		c.Tags = append([]string(nil), f.Tags...)
	}
	return c
}
