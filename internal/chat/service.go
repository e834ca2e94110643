package chat

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	EnsureChat(ctx context.Context, clientID uuid.UUID) (*Chat, error)
	GetChat(ctx context.Context, id uuid.UUID) (*Chat, error)
	ListChats(ctx context.Context) ([]*Chat, error)
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]*Message, error)

	// AppendMessage inserts the message, bumps the chat's unread count
	// for client-sent messages and stamps last_message_at.
	AppendMessage(ctx context.Context, m *Message) error
	MarkRead(ctx context.Context, chatID uuid.UUID) error
	DeleteChat(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Open returns the client's chat thread, creating it on first use.
func (s *Service) Open(ctx context.Context, clientID uuid.UUID) (*Chat, error) {
	return s.repo.EnsureChat(ctx, clientID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Chat, error) {
	return s.repo.GetChat(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Chat, error) {
	return s.repo.ListChats(ctx)
}

func (s *Service) Messages(ctx context.Context, chatID uuid.UUID) ([]*Message, error) {
	return s.repo.ListMessages(ctx, chatID)
}

func (s *Service) Send(ctx context.Context, chatID uuid.UUID, sender Sender, content string) (*Message, error) {
	m := &Message{
		ChatID:  chatID,
		Sender:  sender,
		Content: content,
	}
	if err := s.repo.AppendMessage(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) MarkRead(ctx context.Context, chatID uuid.UUID) error {
	return s.repo.MarkRead(ctx, chatID)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteChat(ctx, id)
}
