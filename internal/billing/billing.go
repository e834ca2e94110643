package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrOverpayment     = errors.New("payment exceeds invoice due amount")
)

// InvoiceStatus tracks how much of an invoice has been collected.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "Pending"
	InvoicePartial InvoiceStatus = "Partial"
	InvoicePaid    InvoiceStatus = "Paid"
)

// StatusFor derives the invoice status from its amount and collected total.
func StatusFor(amount, paid int64) InvoiceStatus {
	switch {
	case paid <= 0:
		return InvoicePending
	case paid < amount:
		return InvoicePartial
	default:
		return InvoicePaid
	}
}

// Invoice belongs to exactly one client. Due is maintained incrementally
// as amount minus paid.
type Invoice struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	PackageName string
	Amount      int64 // cents
	Paid        int64 // cents
	Due         int64 // cents
	Status      InvoiceStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentPending   PaymentStatus = "Pending"
)

// Payment belongs to one client and one invoice.
type Payment struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	InvoiceID uuid.UUID
	Amount    int64 // cents
	Status    PaymentStatus
	PaidAt    time.Time
	CreatedAt time.Time
}
