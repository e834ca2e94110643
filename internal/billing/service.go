package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/progress"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	// CreateInvoice inserts the invoice and bumps the owning client's
	// total_sales, balance and invoice_count in one transaction.
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	// CreatePayment inserts the payment, adjusts the invoice's paid/due/
	// status and the client's total_collection/balance in one transaction,
	// and returns the invoice as updated.
	CreatePayment(ctx context.Context, p *Payment) (*Invoice, error)
	ListPayments(ctx context.Context) ([]*Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

// TagEnsurer upserts a global tag by name.
type TagEnsurer interface {
	EnsureTag(ctx context.Context, name, color string) (*client.Tag, error)
}

// StepCreator creates a progress step for a client.
type StepCreator interface {
	Create(ctx context.Context, params progress.CreateStepParams) (*progress.Step, error)
}

type Service struct {
	repo  Repository
	tags  TagEnsurer
	steps StepCreator
}

func NewService(repo Repository, tags TagEnsurer, steps StepCreator) *Service {
	return &Service{repo: repo, tags: tags, steps: steps}
}

type CreateInvoiceParams struct {
	ClientID    uuid.UUID
	PackageName string
	Amount      int64
}

// defaultTagColor is applied to tags auto-created from package names.
const defaultTagColor = "#6366f1"

// CreateInvoice inserts the invoice together with the client aggregate
// bump. The package tag and the setup progress step are best-effort side
// effects: a failure there is logged and does not undo the invoice.
func (s *Service) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error) {
	inv := &Invoice{
		ClientID:    params.ClientID,
		PackageName: params.PackageName,
		Amount:      params.Amount,
		Due:         params.Amount,
		Status:      InvoicePending,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if params.PackageName != "" {
		if _, err := s.tags.EnsureTag(ctx, params.PackageName, defaultTagColor); err != nil {
			slog.Warn("failed to ensure package tag", "package", params.PackageName, "error", err)
		}

		_, err := s.steps.Create(ctx, progress.CreateStepParams{
			ClientID: params.ClientID,
			Title:    fmt.Sprintf("%s - Package Setup", params.PackageName),
			Deadline: time.Now().AddDate(0, 0, 14),
		})
		if err != nil {
			slog.Warn("failed to create setup step", "package", params.PackageName, "error", err)
		}
	}

	return inv, nil
}

type CreatePaymentParams struct {
	ClientID  uuid.UUID
	InvoiceID uuid.UUID
	Amount    int64
	PaidAt    time.Time
}

// CreatePayment records the payment and returns it along with the
// invoice as updated by the same transaction.
func (s *Service) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, *Invoice, error) {
	paidAt := params.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	p := &Payment{
		ClientID:  params.ClientID,
		InvoiceID: params.InvoiceID,
		Amount:    params.Amount,
		Status:    PaymentCompleted,
		PaidAt:    paidAt,
	}

	inv, err := s.repo.CreatePayment(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	return p, inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context) ([]*Payment, error) {
	return s.repo.ListPayments(ctx)
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePayment(ctx, id)
}
