package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateStep(ctx context.Context, step *Step) error
	ListSteps(ctx context.Context) ([]*Step, error)
	GetStep(ctx context.Context, id uuid.UUID) (*Step, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	DeleteStep(ctx context.Context, id uuid.UUID) error

	AddComment(ctx context.Context, c *Comment) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateStepParams struct {
	ClientID uuid.UUID
	Title    string
	Deadline time.Time
}

func (s *Service) Create(ctx context.Context, params CreateStepParams) (*Step, error) {
	step := &Step{
		ClientID: params.ClientID,
		Title:    params.Title,
		Deadline: params.Deadline,
	}
	if err := s.repo.CreateStep(ctx, step); err != nil {
		return nil, err
	}

	return step, nil
}

func (s *Service) List(ctx context.Context) ([]*Step, error) {
	return s.repo.ListSteps(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Step, error) {
	return s.repo.GetStep(ctx, id)
}

// Toggle flips the completed flag and returns the step's new state.
func (s *Service) Toggle(ctx context.Context, id uuid.UUID) (*Step, error) {
	step, err := s.repo.GetStep(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetCompleted(ctx, id, !step.Completed); err != nil {
		return nil, err
	}

	step.Completed = !step.Completed

	return step, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStep(ctx, id)
}

func (s *Service) AddComment(ctx context.Context, stepID uuid.UUID, text, author string) (*Comment, error) {
	c := &Comment{
		StepID: stepID,
		Text:   text,
		Author: author,
	}
	if err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}
