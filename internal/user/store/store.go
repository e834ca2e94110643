package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/user"
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

// Expected column order: id, name, email, password_hash, role, client_id,
// active, created_at, updated_at
func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var roleStr string

	if err := s.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roleStr, &u.ClientID,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.Role = user.Role(roleStr)

	return &u, nil
}

const selectUserColumns = `
	id, name, email, password_hash, role, client_id, active, created_at, updated_at
`

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, client_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.ClientID,
		u.Active,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, client_id = $5, active = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.ClientID,
		u.Active,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}
