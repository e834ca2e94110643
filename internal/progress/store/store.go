package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/progress"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateStep(ctx context.Context, step *progress.Step) error {
	query := `
		INSERT INTO progress_steps (client_id, title, deadline, completed, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		step.ClientID,
		step.Title,
		step.Deadline,
	).Scan(&step.ID, &step.CreatedAt, &step.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating progress step: %w", err)
	}

	return nil
}

func (s *Store) GetStep(ctx context.Context, id uuid.UUID) (*progress.Step, error) {
	query := `
		SELECT id, client_id, title, deadline, completed, created_at, updated_at
		FROM progress_steps WHERE id = $1
	`

	var step progress.Step

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&step.ID, &step.ClientID, &step.Title, &step.Deadline, &step.Completed,
		&step.CreatedAt, &step.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, progress.ErrNotFound
		}

		return nil, fmt.Errorf("getting progress step: %w", err)
	}

	comments, err := s.listComments(ctx, id)
	if err != nil {
		return nil, err
	}

	step.Comments = comments

	return &step, nil
}

// ListSteps returns all steps with their comments attached. Comments are
// fetched in one pass and grouped in memory.
func (s *Store) ListSteps(ctx context.Context) ([]*progress.Step, error) {
	query := `
		SELECT id, client_id, title, deadline, completed, created_at, updated_at
		FROM progress_steps ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing progress steps: %w", err)
	}
	defer rows.Close()

	var steps []*progress.Step

	byID := make(map[uuid.UUID]*progress.Step)

	for rows.Next() {
		var step progress.Step
		if err := rows.Scan(
			&step.ID, &step.ClientID, &step.Title, &step.Deadline, &step.Completed,
			&step.CreatedAt, &step.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning progress step: %w", err)
		}

		steps = append(steps, &step)
		byID[step.ID] = &step
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	commentRows, err := s.db.QueryContext(ctx, `
		SELECT id, step_id, text, author, created_at
		FROM progress_comments ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing progress comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var c progress.Comment
		if err := commentRows.Scan(&c.ID, &c.StepID, &c.Text, &c.Author, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning progress comment: %w", err)
		}

		if step, ok := byID[c.StepID]; ok {
			step.Comments = append(step.Comments, &c)
		}
	}

	return steps, commentRows.Err()
}

func (s *Store) listComments(ctx context.Context, stepID uuid.UUID) ([]*progress.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, step_id, text, author, created_at
		FROM progress_comments WHERE step_id = $1 ORDER BY created_at ASC
	`, stepID)
	if err != nil {
		return nil, fmt.Errorf("listing step comments: %w", err)
	}
	defer rows.Close()

	var comments []*progress.Comment

	for rows.Next() {
		var c progress.Comment
		if err := rows.Scan(&c.ID, &c.StepID, &c.Text, &c.Author, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning step comment: %w", err)
		}

		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

func (s *Store) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE progress_steps SET completed = $1, updated_at = NOW() WHERE id = $2
	`, completed, id)
	if err != nil {
		return fmt.Errorf("updating progress step: %w", err)
	}

	return nil
}

func (s *Store) DeleteStep(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning step delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress_comments WHERE step_id = $1`, id); err != nil {
		return fmt.Errorf("deleting step comments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress_steps WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting progress step: %w", err)
	}

	return tx.Commit()
}

func (s *Store) AddComment(ctx context.Context, c *progress.Comment) error {
	query := `
		INSERT INTO progress_comments (step_id, text, author, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.StepID, c.Text, c.Author).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("adding step comment: %w", err)
	}

	return nil
}
