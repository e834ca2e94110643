package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) InvoiceRoutes(r chi.Router) {
	r.Post("/", h.createInvoice)
	r.Get("/", h.listInvoices)
	r.Get("/{id}", h.getInvoice)
	r.Delete("/{id}", h.deleteInvoice)
}

func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Post("/", h.createPayment)
	r.Get("/", h.listPayments)
	r.Delete("/{id}", h.deletePayment)
}

type createInvoiceRequest struct {
	ClientID    uuid.UUID `json:"clientId"`
	PackageName string    `json:"packageName"`
	Amount      int64     `json:"amount"`
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ClientID == uuid.Nil {
		httpx.Error(w, http.StatusBadRequest, "clientId is required")
		return
	}

	if req.Amount <= 0 {
		httpx.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	inv, err := h.svc.CreateInvoice(r.Context(), billing.CreateInvoiceParams{
		ClientID:    req.ClientID,
		PackageName: req.PackageName,
		Amount:      req.Amount,
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toInvoiceResponse(inv))
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toInvoiceResponseList(invs))
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, billing.ErrInvoiceNotFound) {
			httpx.Error(w, http.StatusNotFound, "invoice not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	httpx.JSON(w, http.StatusOK, toInvoiceResponse(inv))
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteInvoice(r.Context(), id); err != nil {
		if errors.Is(err, billing.ErrInvoiceNotFound) {
			httpx.Error(w, http.StatusNotFound, "invoice not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createPaymentRequest struct {
	ClientID  uuid.UUID  `json:"clientId"`
	InvoiceID uuid.UUID  `json:"invoiceId"`
	Amount    int64      `json:"amount"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// createPayment returns both the payment and the invoice it updated, so
// the caller can reconcile local state in one round trip.
func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ClientID == uuid.Nil || req.InvoiceID == uuid.Nil {
		httpx.Error(w, http.StatusBadRequest, "clientId and invoiceId are required")
		return
	}

	if req.Amount <= 0 {
		httpx.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	params := billing.CreatePaymentParams{
		ClientID:  req.ClientID,
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
	}
	if req.PaidAt != nil {
		params.PaidAt = *req.PaidAt
	}

	p, inv, err := h.svc.CreatePayment(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvoiceNotFound):
			httpx.Error(w, http.StatusNotFound, "invoice not found")
		case errors.Is(err, billing.ErrOverpayment):
			httpx.Error(w, http.StatusBadRequest, "payment exceeds invoice due amount")
		default:
			httpx.Error(w, http.StatusInternalServerError, err.Error())
		}

		return
	}

	httpx.JSON(w, http.StatusCreated, paymentCreatedResponse{
		Payment: toPaymentResponse(p),
		Invoice: toInvoiceResponse(inv),
	})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListPayments(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toPaymentResponseList(payments))
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		if errors.Is(err, billing.ErrPaymentNotFound) {
			httpx.Error(w, http.StatusNotFound, "payment not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
