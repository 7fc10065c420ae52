package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/model"
)

func TestNextStatusCycles(t *testing.T) {
	assert.Equal(t, model.StatusActive, nextStatus(model.StatusAll))
	assert.Equal(t, model.StatusCompleted, nextStatus(model.StatusActive))
	assert.Equal(t, model.StatusAll, nextStatus(model.StatusCompleted))
}

func TestNextPriorityCycles(t *testing.T) {
	order := []string{
		model.PriorityAll,
		model.PriorityHigh,
		model.PriorityMedium,
		model.PriorityLow,
		model.PriorityNone,
	}
	for i, current := range order {
		want := order[(i+1)%len(order)]
		assert.Equal(t, want, nextPriority(current), current)
	}
}

func TestFilterSummary(t *testing.T) {
	f := model.FilterSet{
		Status:   model.StatusActive,
		Priority: model.PriorityHigh,
		Search:   "report",
		Tags:     []string{"work", "q3"},
	}
	got := filterSummary(f)

	assert.Contains(t, got, "active")
	assert.Contains(t, got, "priority:high")
	assert.Contains(t, got, `search:"report"`)
	assert.Contains(t, got, "tags:work,q3")
}
