package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/chat"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureChat(ctx context.Context, clientID uuid.UUID) (*chat.Chat, error) {
	query := `
		INSERT INTO chats (client_id, unread_count, created_at)
		VALUES ($1, 0, NOW())
		ON CONFLICT (client_id) DO UPDATE SET client_id = EXCLUDED.client_id
		RETURNING id, client_id, unread_count, last_message_at, created_at
	`

	var c chat.Chat
	if err := s.db.QueryRowContext(ctx, query, clientID).Scan(
		&c.ID, &c.ClientID, &c.UnreadCount, &c.LastMessageAt, &c.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("ensuring chat: %w", err)
	}

	return &c, nil
}

func (s *Store) GetChat(ctx context.Context, id uuid.UUID) (*chat.Chat, error) {
	query := `SELECT id, client_id, unread_count, last_message_at, created_at FROM chats WHERE id = $1`

	var c chat.Chat

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ClientID, &c.UnreadCount, &c.LastMessageAt, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, chat.ErrNotFound
		}

		return nil, fmt.Errorf("getting chat: %w", err)
	}

	return &c, nil
}

// ListChats returns chat threads without messages; message history is
// loaded per chat via ListMessages.
func (s *Store) ListChats(ctx context.Context) ([]*chat.Chat, error) {
	query := `SELECT id, client_id, unread_count, last_message_at, created_at FROM chats ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	defer rows.Close()

	var chats []*chat.Chat

	for rows.Next() {
		var c chat.Chat
		if err := rows.Scan(&c.ID, &c.ClientID, &c.UnreadCount, &c.LastMessageAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat: %w", err)
		}

		chats = append(chats, &c)
	}

	return chats, rows.Err()
}

func (s *Store) ListMessages(ctx context.Context, chatID uuid.UUID) ([]*chat.Message, error) {
	query := `
		SELECT id, chat_id, sender, content, sent_at
		FROM chat_messages WHERE chat_id = $1 ORDER BY sent_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []*chat.Message

	for rows.Next() {
		var m chat.Message

		var senderStr string

		if err := rows.Scan(&m.ID, &m.ChatID, &senderStr, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}

		m.Sender = chat.Sender(senderStr)

		msgs = append(msgs, &m)
	}

	return msgs, rows.Err()
}

func (s *Store) AppendMessage(ctx context.Context, m *chat.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning message append: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO chat_messages (chat_id, sender, content, sent_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, sent_at
	`

	if err := tx.QueryRowContext(ctx, query, m.ChatID, m.Sender, m.Content).Scan(&m.ID, &m.SentAt); err != nil {
		return fmt.Errorf("appending chat message: %w", err)
	}

	// Only client messages count toward the admin-facing unread badge.
	unreadBump := 0
	if m.Sender == chat.SenderClient {
		unreadBump = 1
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE chats SET unread_count = unread_count + $1, last_message_at = $2 WHERE id = $3
	`, unreadBump, m.SentAt, m.ChatID)
	if err != nil {
		return fmt.Errorf("updating chat thread: %w", err)
	}

	return tx.Commit()
}

func (s *Store) MarkRead(ctx context.Context, chatID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `UPDATE chats SET unread_count = 0 WHERE id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("marking chat read: %w", err)
	}

	return nil
}

func (s *Store) DeleteChat(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning chat delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE chat_id = $1`, id); err != nil {
		return fmt.Errorf("deleting chat messages: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting chat: %w", err)
	}

	return tx.Commit()
}
