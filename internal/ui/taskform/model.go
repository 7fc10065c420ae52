package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/theme"
)

// SubmitMsg is dispatched when the form is submitted. EditID is empty
// for a newly created task.
type SubmitMsg struct {
	Task   model.Task
	EditID string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    string
	dueDate     string
	tags        string
	assignee    string
	workspaceID string
	starred     bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	theme    theme.Theme
	editMode bool
	editID   string
	// editCompleted carries the completed flag through an edit; the
	// form has no field for it and must not reset it.
	editCompleted bool
	workspaces    []model.Workspace
	width         int
	height        int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.DefaultPriority},
		theme:  theme.Load(""),
		width:  width,
		height: height,
	}
}

// SetWorkspaces sets the available workspaces for the selector.
func (m *Model) SetWorkspaces(workspaces []model.Workspace) {
	m.workspaces = workspaces
}

// SetTheme updates the styles used for the form chrome.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
}

// StartCreate initializes the form for creating a new task in the
// given workspace.
func (m *Model) StartCreate(workspaceID string) tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{
		priority:    model.DefaultPriority,
		workspaceID: workspaceID,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing task's fields.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.editCompleted = task.Completed
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.priority = task.Priority
	m.fb.tags = strings.Join(task.Tags, ", ")
	m.fb.assignee = task.Assignee
	m.fb.workspaceID = task.WorkspaceID
	m.fb.starred = task.Starred
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.Format("2006-01-02")
	} else {
		m.fb.dueDate = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	content := m.theme.Title.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
				huh.NewOption("None", model.PriorityNone),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Tags").
			Placeholder("comma, separated").
			Value(&m.fb.tags),
		huh.NewInput().
			Title("Assignee").
			Placeholder("Optional").
			Value(&m.fb.assignee),
		m.workspaceField(),
		huh.NewConfirm().
			Title("Starred").
			Affirmative("Yes").
			Negative("No").
			Value(&m.fb.starred),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) workspaceField() huh.Field {
	opts := make([]huh.Option[string], len(m.workspaces))
	for i, w := range m.workspaces {
		opts[i] = huh.NewOption(w.Name, w.ID)
	}
	return huh.NewSelect[string]().
		Title("Workspace").
		Options(opts...).
		Value(&m.fb.workspaceID)
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		Priority:    m.fb.priority,
		Assignee:    strings.TrimSpace(m.fb.assignee),
		WorkspaceID: m.fb.workspaceID,
		Starred:     m.fb.starred,
		Tags:        parseTags(m.fb.tags),
	}

	if m.fb.dueDate != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.dueDate))
		if err == nil {
			task.DueDate = &t
		}
	}

	editID := ""
	if m.editMode {
		editID = m.editID
		task.ID = m.editID
		task.Completed = m.editCompleted
	}
	return func() tea.Msg { return SubmitMsg{Task: task, EditID: editID} }
}

// parseTags splits a comma-separated tag string, dropping empties and
// duplicates.
func parseTags(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(s, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
