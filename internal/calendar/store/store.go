package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/calendar"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, client_id, title, description, event_date,
// start_time, end_time, event_type, created_at, updated_at
func scanEvent(s scanner) (*calendar.Event, error) {
	var e calendar.Event

	var typeStr string

	if err := s.Scan(
		&e.ID, &e.ClientID, &e.Title, &e.Description, &e.EventDate,
		&e.StartTime, &e.EndTime, &typeStr, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = calendar.EventType(typeStr)

	return &e, nil
}

const selectEventColumns = `
	id, client_id, title, description, event_date, start_time, end_time, event_type, created_at, updated_at
`

func (s *Store) CreateEvent(ctx context.Context, e *calendar.Event) error {
	query := `
		INSERT INTO calendar_events (client_id, title, description, event_date, start_time, end_time, event_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ClientID,
		e.Title,
		e.Description,
		e.EventDate,
		e.StartTime,
		e.EndTime,
		e.Type,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating calendar event: %w", err)
	}

	return nil
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*calendar.Event, error) {
	query := `SELECT ` + selectEventColumns + ` FROM calendar_events WHERE id = $1`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, calendar.ErrNotFound
		}

		return nil, fmt.Errorf("getting calendar event: %w", err)
	}

	return e, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]*calendar.Event, error) {
	query := `SELECT ` + selectEventColumns + ` FROM calendar_events ORDER BY event_date ASC, start_time ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}
	defer rows.Close()

	var events []*calendar.Event

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning calendar event: %w", err)
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *Store) UpdateEvent(ctx context.Context, e *calendar.Event) error {
	query := `
		UPDATE calendar_events
		SET title = $1, description = $2, event_date = $3, start_time = $4, end_time = $5, event_type = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		e.EventDate,
		e.StartTime,
		e.EndTime,
		e.Type,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating calendar event: %w", err)
	}

	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar event: %w", err)
	}

	return nil
}
