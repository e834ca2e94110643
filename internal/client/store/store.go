package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanClient reads a client row.
// Expected column order: id, name, business_name, email, phone, status,
// total_sales, total_collection, balance, invoice_count, tags, created_at, updated_at
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var statusStr string

	var tagsJSON []byte

	if err := s.Scan(
		&c.ID, &c.Name, &c.BusinessName, &c.Email, &c.Phone, &statusStr,
		&c.TotalSales, &c.TotalCollection, &c.Balance, &c.InvoiceCount,
		&tagsJSON, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = client.Status(statusStr)

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &c.Tags); err != nil {
			return nil, fmt.Errorf("decoding client tags: %w", err)
		}
	}

	return &c, nil
}

const selectClientColumns = `
	id, name, business_name, email, phone, status,
	total_sales, total_collection, balance, invoice_count, tags, created_at, updated_at
`

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}

	return json.Marshal(tags)
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	tagsJSON, err := marshalTags(c.Tags)
	if err != nil {
		return fmt.Errorf("encoding client tags: %w", err)
	}

	query := `
		INSERT INTO clients (name, business_name, email, phone, status, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		c.Name,
		c.BusinessName,
		c.Email,
		c.Phone,
		c.Status,
		tagsJSON,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

// FindByEmailOrPhone matches a client by exact email first, then by phone.
// Used by webhook ingestion to attach inbound appointments.
func (s *Store) FindByEmailOrPhone(ctx context.Context, email, phone string) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE (email = $1 AND $1 <> '') OR (phone = $2 AND $2 <> '')
		ORDER BY (email = $1) DESC
		LIMIT 1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, email, phone))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("matching client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	tagsJSON, err := marshalTags(c.Tags)
	if err != nil {
		return fmt.Errorf("encoding client tags: %w", err)
	}

	query := `
		UPDATE clients
		SET name = $1, business_name = $2, email = $3, phone = $4, status = $5, tags = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err = s.db.ExecContext(ctx, query,
		c.Name,
		c.BusinessName,
		c.Email,
		c.Phone,
		c.Status,
		tagsJSON,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

// DeleteClient removes the client and all dependent rows in one
// transaction so no orphaned child rows survive a partial failure.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM chat_messages WHERE chat_id IN (SELECT id FROM chats WHERE client_id = $1)`,
		`DELETE FROM chats WHERE client_id = $1`,
		`DELETE FROM progress_comments WHERE step_id IN (SELECT id FROM progress_steps WHERE client_id = $1)`,
		`DELETE FROM progress_steps WHERE client_id = $1`,
		`DELETE FROM payments WHERE client_id = $1`,
		`DELETE FROM invoices WHERE client_id = $1`,
		`DELETE FROM calendar_events WHERE client_id = $1`,
		`DELETE FROM client_links WHERE client_id = $1`,
	}

	for _, q := range cascade {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("cascading client delete: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing client delete: %w", err)
	}

	return nil
}

func (s *Store) ListTags(ctx context.Context) ([]*client.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*client.Tag

	for rows.Next() {
		var t client.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}

		tags = append(tags, &t)
	}

	return tags, rows.Err()
}

func (s *Store) EnsureTag(ctx context.Context, name, color string) (*client.Tag, error) {
	query := `
		INSERT INTO tags (name, color, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, color, created_at
	`

	var t client.Tag
	if err := s.db.QueryRowContext(ctx, query, name, color).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("ensuring tag: %w", err)
	}

	return &t, nil
}
