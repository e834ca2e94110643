package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentra-hq/sentra-cms/internal/export"
	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/clients.csv", h.clients)
	r.Get("/invoices.csv", h.invoices)
}

func (h *Handler) clients(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="clients.csv"`)

	if err := h.svc.WriteClientsCSV(r.Context(), w); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) invoices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)

	if err := h.svc.WriteInvoicesCSV(r.Context(), w); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	}
}
