package model

// Modal kinds. The modal state machine is: closed -> open(kind) on an
// open-modal action, open(*) -> closed on cancel or successful submit.
const (
	ModalTaskCreate    = "task-create"
	ModalTaskEdit      = "task-edit"
	ModalConfirmDelete = "confirm-delete"
)

// Modal describes the currently open modal. The zero value means no
// modal is open.
type Modal struct {
	Kind   string `json:"kind"`
	TaskID string `json:"taskId,omitempty"`
}

// Open reports whether a modal is currently open.
func (m Modal) Open() bool {
	return m.Kind != ""
}
