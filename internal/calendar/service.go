package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateEvent(ctx context.Context, e *Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, e *Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID    uuid.UUID
	Title       string
	Description string
	EventDate   time.Time
	StartTime   string
	EndTime     string
	Type        EventType
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	typ := params.Type
	if typ == "" {
		typ = TypeMeeting
	}

	e := &Event{
		ClientID:    params.ClientID,
		Title:       params.Title,
		Description: params.Description,
		EventDate:   params.EventDate,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Type:        typ,
	}
	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *Service) Update(ctx context.Context, e *Event) error {
	return s.repo.UpdateEvent(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEvent(ctx, id)
}
