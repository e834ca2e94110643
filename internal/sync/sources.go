package sync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/chat"
	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/link"
	"github.com/sentra-hq/sentra-cms/internal/progress"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

// Source adapters translate between store state and the remote API.
// Methods return the mapped record or the underlying transport error;
// the store is the only layer that catches it.

type ClientParams struct {
	Name         string
	BusinessName string
	Email        string
	Phone        string
	Status       client.Status
	Tags         []string
}

type ClientSource interface {
	List(ctx context.Context) ([]*client.Client, error)
	Create(ctx context.Context, params ClientParams) (*client.Client, error)
	Update(ctx context.Context, id uuid.UUID, params ClientParams) (*client.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InvoiceParams struct {
	ClientID    uuid.UUID
	PackageName string
	Amount      int64
}

type PaymentParams struct {
	ClientID  uuid.UUID
	InvoiceID uuid.UUID
	Amount    int64
}

type InvoiceSource interface {
	List(ctx context.Context) ([]*billing.Invoice, error)
	Create(ctx context.Context, params InvoiceParams) (*billing.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentSource interface {
	List(ctx context.Context) ([]*billing.Payment, error)
	// Create returns both the payment and the invoice it updated.
	Create(ctx context.Context, params PaymentParams) (*billing.Payment, *billing.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventParams struct {
	ClientID    uuid.UUID
	Title       string
	Description string
	EventDate   time.Time
	StartTime   string
	EndTime     string
	Type        calendar.EventType
}

type CalendarSource interface {
	List(ctx context.Context) ([]*calendar.Event, error)
	Create(ctx context.Context, params EventParams) (*calendar.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChatSource interface {
	List(ctx context.Context) ([]*chat.Chat, error)
	Messages(ctx context.Context, chatID uuid.UUID) ([]*chat.Message, error)
	Send(ctx context.Context, chatID uuid.UUID, sender chat.Sender, content string) (*chat.Message, error)
	MarkRead(ctx context.Context, chatID uuid.UUID) error
}

type StepParams struct {
	ClientID uuid.UUID
	Title    string
	Deadline time.Time
}

type ProgressSource interface {
	List(ctx context.Context) ([]*progress.Step, error)
	Create(ctx context.Context, params StepParams) (*progress.Step, error)
	Toggle(ctx context.Context, id uuid.UUID) (*progress.Step, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LinkParams struct {
	ClientID uuid.UUID
	Title    string
	URL      string
	Category string
}

type LinkSource interface {
	List(ctx context.Context) ([]*link.Link, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*link.Link, error)
	Create(ctx context.Context, params LinkParams) (*link.Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserSource interface {
	List(ctx context.Context) ([]*user.User, error)
	// Login returns the authenticated user; the adapter keeps the
	// session token for subsequent requests.
	Login(ctx context.Context, email, password string) (*user.User, error)
}

type TagSource interface {
	List(ctx context.Context) ([]*client.Tag, error)
	Create(ctx context.Context, name, color string) (*client.Tag, error)
}

// Sources bundles one adapter per collection for Store construction.
type Sources struct {
	Clients  ClientSource
	Invoices InvoiceSource
	Payments PaymentSource
	Calendar CalendarSource
	Chats    ChatSource
	Progress ProgressSource
	Links    LinkSource
	Users    UserSource
	Tags     TagSource
}
