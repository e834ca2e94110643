package progress

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("progress step not found")

// Step is a deliverable milestone for a client.
type Step struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Title     string
	Deadline  time.Time
	Completed bool
	Comments  []*Comment
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Comment is an ordered note attached to a step.
type Comment struct {
	ID        uuid.UUID
	StepID    uuid.UUID
	Text      string
	Author    string
	CreatedAt time.Time
}
