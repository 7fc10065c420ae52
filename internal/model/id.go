package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates a unique identifier of the form
// <kind>_<unix-millis>_<random>, e.g. "task_1756339200000_9f3c21aa".
// The millisecond component keeps ids roughly sortable by creation time;
// the random suffix prevents collisions within the same millisecond.
func NewID(kind string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%d_%s", kind, time.Now().UnixMilli(), suffix)
}
