package client

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*Client, error)

	ListTags(ctx context.Context) ([]*Tag, error)
	EnsureTag(ctx context.Context, name, color string) (*Tag, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	BusinessName string
	Email        string
	Phone        string
	Status       Status
	Tags         []string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	status := params.Status
	if status == "" {
		status = StatusPending
	}

	c := &Client{
		Name:         params.Name,
		BusinessName: params.BusinessName,
		Email:        params.Email,
		Phone:        params.Phone,
		Status:       status,
		Tags:         params.Tags,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	return s.repo.UpdateClient(ctx, c)
}

// Delete removes the client and every dependent record (invoices,
// payments, calendar events, chats, progress steps, links) in one
// database transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}

// FindByEmailOrPhone matches by exact email first, falling back to
// phone. Webhook ingestion uses it to attach contacts to clients.
func (s *Service) FindByEmailOrPhone(ctx context.Context, email, phone string) (*Client, error) {
	return s.repo.FindByEmailOrPhone(ctx, email, phone)
}

func (s *Service) ListTags(ctx context.Context) ([]*Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *Service) EnsureTag(ctx context.Context, name, color string) (*Tag, error) {
	return s.repo.EnsureTag(ctx, name, color)
}
