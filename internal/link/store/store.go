package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/link"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateLink(ctx context.Context, l *link.Link) error {
	query := `
		INSERT INTO client_links (client_id, title, url, category, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, l.ClientID, l.Title, l.URL, l.Category).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating client link: %w", err)
	}

	return nil
}

func (s *Store) listQuery(ctx context.Context, query string, args ...any) ([]*link.Link, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing client links: %w", err)
	}
	defer rows.Close()

	var links []*link.Link

	for rows.Next() {
		var l link.Link
		if err := rows.Scan(&l.ID, &l.ClientID, &l.Title, &l.URL, &l.Category, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning client link: %w", err)
		}

		links = append(links, &l)
	}

	return links, rows.Err()
}

func (s *Store) ListLinks(ctx context.Context) ([]*link.Link, error) {
	return s.listQuery(ctx, `
		SELECT id, client_id, title, url, category, created_at
		FROM client_links ORDER BY created_at ASC
	`)
}

func (s *Store) ListLinksByClient(ctx context.Context, clientID uuid.UUID) ([]*link.Link, error) {
	return s.listQuery(ctx, `
		SELECT id, client_id, title, url, category, created_at
		FROM client_links WHERE client_id = $1 ORDER BY created_at ASC
	`, clientID)
}

func (s *Store) UpdateLink(ctx context.Context, l *link.Link) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE client_links SET title = $1, url = $2, category = $3 WHERE id = $4
	`, l.Title, l.URL, l.Category, l.ID)
	if err != nil {
		return fmt.Errorf("updating client link: %w", err)
	}

	return nil
}

func (s *Store) DeleteLink(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting client link: %w", err)
	}

	return nil
}
