package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
	"github.com/sentra-hq/sentra-cms/internal/webhook"
)

type Handler struct {
	svc    *webhook.Service
	secret string
}

func NewHandler(svc *webhook.Service, secret string) *Handler {
	return &Handler{svc: svc, secret: secret}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/ghl/onboarding", h.ingest(calendar.TypeOnboarding))
	r.Post("/ghl/handover", h.ingest(calendar.TypeHandover))
}

type ingestResponse struct {
	Success bool   `json:"success"`
	Warning string `json:"warning,omitempty"`
	EventID string `json:"eventId,omitempty"`
}

func (h *Handler) ingest(eventType calendar.EventType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "failed to read body")
			return
		}

		if err := webhook.VerifySignature(h.secret, body, r.Header.Get("x-ghl-signature")); err != nil {
			httpx.Error(w, http.StatusUnauthorized, "invalid signature")
			return
		}

		var payload webhook.AppointmentPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid payload")
			return
		}

		if payload.Contact.Email == "" && payload.Contact.Phone == "" {
			httpx.Error(w, http.StatusBadRequest, "contact email or phone is required")
			return
		}

		outcome, err := h.svc.Ingest(r.Context(), &payload, eventType)
		if err != nil {
			slog.Error("webhook ingestion failed", "type", eventType, "error", err)
			httpx.Error(w, http.StatusInternalServerError, "ingestion failed")

			return
		}

		// An unmatched contact is a warning, not a failure.
		if !outcome.Matched {
			httpx.JSON(w, http.StatusOK, ingestResponse{
				Success: false,
				Warning: "no client matched the contact email or phone",
			})

			return
		}

		httpx.JSON(w, http.StatusOK, ingestResponse{
			Success: true,
			EventID: outcome.Event.ID.String(),
		})
	}
}
