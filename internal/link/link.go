package link

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client link not found")

// Link is a shared resource URL pinned to a client's portal.
type Link struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Title     string
	URL       string
	Category  string
	CreatedAt time.Time
}

type Repository interface {
	CreateLink(ctx context.Context, l *Link) error
	ListLinks(ctx context.Context) ([]*Link, error)
	ListLinksByClient(ctx context.Context, clientID uuid.UUID) ([]*Link, error)
	UpdateLink(ctx context.Context, l *Link) error
	DeleteLink(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID uuid.UUID
	Title    string
	URL      string
	Category string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Link, error) {
	l := &Link{
		ClientID: params.ClientID,
		Title:    params.Title,
		URL:      params.URL,
		Category: params.Category,
	}
	if err := s.repo.CreateLink(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) List(ctx context.Context) ([]*Link, error) {
	return s.repo.ListLinks(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Link, error) {
	return s.repo.ListLinksByClient(ctx, clientID)
}

func (s *Service) Update(ctx context.Context, l *Link) error {
	return s.repo.UpdateLink(ctx, l)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteLink(ctx, id)
}
