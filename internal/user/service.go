package user

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo      Repository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type CreateParams struct {
	Name     string
	Email    string
	Password string
	Role     Role
	ClientID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
		ClientID:     params.ClientID,
		Active:       true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Claims is the JWT payload carried by portal and admin sessions.
type Claims struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	ClientID string `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// Login authenticates an email/password pair. Failures are distinct:
// ErrNotFound, ErrAccountInactive, ErrInvalidPassword.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if !u.Active {
		return nil, "", ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *Service) issueToken(u *User) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: u.ID.String(),
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	if u.ClientID != nil {
		claims.ClientID = u.ClientID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
	Active   *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		u.Name = *params.Name
	}

	if params.Email != nil {
		u.Email = *params.Email
	}

	if params.Role != nil {
		u.Role = *params.Role
	}

	if params.Active != nil {
		u.Active = *params.Active
	}

	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}

		u.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}
