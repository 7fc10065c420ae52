package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{
		i.Task.Priority,
		relativeTime(i.Task.UpdatedAt),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering task lines.
type ItemDelegate struct {
	// theme is shared by reference with the tasklist Model so a theme
	// switch is visible without rebuilding the delegate.
	theme *theme.Theme
	now   func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Task
	isSelected := index == m.Index()
	t := *d.theme

	var checkbox string
	if task.Completed {
		checkbox = "[x]"
	} else {
		checkbox = "[ ]"
	}

	star := ""
	if task.Starred {
		star = theme.SeverityStyle(model.SeverityWarning).Render("*") + " "
	}

	priBadge := theme.PriorityStyle(task.Priority).Render(priorityLabel(task.Priority))

	dueStr := ""
	if task.DueDate != nil {
		dueStr = t.Dimmed.Render(" due " + task.DueDate.Format("Jan 02"))
		if task.IsOverdue(d.now()) {
			dueStr += theme.SeverityStyle(model.SeverityError).Render(" OVERDUE")
		}
	}

	tagStr := ""
	if len(task.Tags) > 0 {
		display := task.Tags
		if len(display) > 2 {
			display = append(display[:2:2], "...")
		}
		tagStr = t.Dimmed.Render(" #" + strings.Join(display, " #"))
	}

	line := fmt.Sprintf("%s %s%s %s%s%s", checkbox, star, priBadge, task.Title, tagStr, dueStr)

	if task.Completed {
		line = t.Dimmed.Render(line)
	}

	if isSelected {
		line = t.SelectedItem.Render(line)
	} else {
		line = t.ListItem.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p string) string {
	switch p {
	case model.PriorityHigh:
		return "HIGH"
	case model.PriorityMedium:
		return "MED "
	case model.PriorityLow:
		return "LOW "
	default:
		return "    "
	}
}
