package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/client"
)

var ErrBadSignature = errors.New("webhook signature mismatch")

// AppointmentPayload is the subset of a GHL appointment webhook the CMS
// consumes.
type AppointmentPayload struct {
	Contact struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"contact"`

	Appointment struct {
		Title     string    `json:"title"`
		StartTime time.Time `json:"startTime"`
		EndTime   time.Time `json:"endTime"`
		Notes     string    `json:"notes"`
	} `json:"appointment"`
}

// VerifySignature checks the x-ghl-signature header (hex HMAC-SHA256 of
// the raw body, with or without a "sha256=" prefix) against the shared
// secret. An empty secret disables verification.
func VerifySignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return nil
	}

	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrBadSignature
	}

	return nil
}

// ClientMatcher locates the client an inbound contact belongs to.
type ClientMatcher interface {
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*client.Client, error)
}

// EventCreator inserts the calendar event the appointment maps to.
type EventCreator interface {
	Create(ctx context.Context, params calendar.CreateParams) (*calendar.Event, error)
}

type Service struct {
	clients ClientMatcher
	events  EventCreator
}

func NewService(clients ClientMatcher, events EventCreator) *Service {
	return &Service{clients: clients, events: events}
}

// Outcome reports what ingestion did. An unmatched contact is a warning,
// not a failure: Matched is false and no event exists.
type Outcome struct {
	Matched    bool
	ClientName string
	Event      *calendar.Event
}

// Ingest maps an inbound appointment onto a calendar event for the
// matched client. eventType is fixed by the route (onboarding/handover).
func (s *Service) Ingest(ctx context.Context, payload *AppointmentPayload, eventType calendar.EventType) (*Outcome, error) {
	matched, err := s.clients.FindByEmailOrPhone(ctx, payload.Contact.Email, payload.Contact.Phone)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return &Outcome{Matched: false}, nil
		}

		return nil, fmt.Errorf("matching webhook contact: %w", err)
	}

	title := payload.Appointment.Title
	if title == "" {
		title = fmt.Sprintf("%s call with %s", eventType, matched.Name)
	}

	start := payload.Appointment.StartTime

	event, err := s.events.Create(ctx, calendar.CreateParams{
		ClientID:    matched.ID,
		Title:       title,
		Description: payload.Appointment.Notes,
		EventDate:   start,
		StartTime:   start.Format("15:04"),
		EndTime:     payload.Appointment.EndTime.Format("15:04"),
		Type:        eventType,
	})
	if err != nil {
		return nil, fmt.Errorf("creating webhook event: %w", err)
	}

	return &Outcome{Matched: true, ClientName: matched.Name, Event: event}, nil
}
