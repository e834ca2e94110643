package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/billing"
)

type invoiceResponse struct {
	ID          uuid.UUID             `json:"id"`
	ClientID    uuid.UUID             `json:"clientId"`
	PackageName string                `json:"packageName"`
	Amount      int64                 `json:"amount"`
	Paid        int64                 `json:"paid"`
	Due         int64                 `json:"due"`
	Status      billing.InvoiceStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   *time.Time            `json:"updatedAt,omitempty"`
}

func toInvoiceResponse(inv *billing.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		ClientID:    inv.ClientID,
		PackageName: inv.PackageName,
		Amount:      inv.Amount,
		Paid:        inv.Paid,
		Due:         inv.Due,
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

func toInvoiceResponseList(invs []*billing.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toInvoiceResponse(inv)
	}

	return resp
}

type paymentResponse struct {
	ID        uuid.UUID             `json:"id"`
	ClientID  uuid.UUID             `json:"clientId"`
	InvoiceID uuid.UUID             `json:"invoiceId"`
	Amount    int64                 `json:"amount"`
	Status    billing.PaymentStatus `json:"status"`
	PaidAt    time.Time             `json:"paidAt"`
	CreatedAt time.Time             `json:"createdAt"`
}

func toPaymentResponse(p *billing.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Status:    p.Status,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

func toPaymentResponseList(payments []*billing.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

type paymentCreatedResponse struct {
	Payment paymentResponse `json:"payment"`
	Invoice invoiceResponse `json:"invoice"`
}
