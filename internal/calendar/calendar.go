package calendar

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("calendar event not found")

// EventType classifies an event on a client's calendar.
type EventType string

const (
	TypeOnboarding EventType = "onboarding"
	TypeHandover   EventType = "handover"
	TypeMeeting    EventType = "meeting"
	TypeReview     EventType = "review"
	TypeDeadline   EventType = "deadline"
)

type Event struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Title       string
	Description string
	EventDate   time.Time
	StartTime   string // "15:04"
	EndTime     string
	Type        EventType
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
