package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
)

type Handler struct {
	svc *calendar.Service
}

func NewHandler(svc *calendar.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type eventRequest struct {
	ClientID    uuid.UUID          `json:"clientId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	EventDate   time.Time          `json:"eventDate"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Type        calendar.EventType `json:"type"`
}

type eventResponse struct {
	ID          uuid.UUID          `json:"id"`
	ClientID    uuid.UUID          `json:"clientId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	EventDate   time.Time          `json:"eventDate"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Type        calendar.EventType `json:"type"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
}

func toResponse(e *calendar.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Type:        e.Type,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ClientID == uuid.Nil {
		httpx.Error(w, http.StatusBadRequest, "clientId is required")
		return
	}

	e, err := h.svc.Create(r.Context(), calendar.CreateParams{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Type:        req.Type,
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = toResponse(e)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, calendar.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "calendar event not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	e.Title = req.Title
	e.Description = req.Description
	e.EventDate = req.EventDate
	e.StartTime = req.StartTime
	e.EndTime = req.EndTime

	if req.Type != "" {
		e.Type = req.Type
	}

	if err := h.svc.Update(r.Context(), e); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
