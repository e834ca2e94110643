package link

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
	"github.com/sentra-hq/sentra-cms/internal/link"
)

type Handler struct {
	svc *link.Service
}

func NewHandler(svc *link.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type linkResponse struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"clientId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(l *link.Link) linkResponse {
	return linkResponse{
		ID:        l.ID,
		ClientID:  l.ClientID,
		Title:     l.Title,
		URL:       l.URL,
		Category:  l.Category,
		CreatedAt: l.CreatedAt,
	}
}

type linkRequest struct {
	ClientID uuid.UUID `json:"clientId"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Category string    `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ClientID == uuid.Nil || req.URL == "" {
		httpx.Error(w, http.StatusBadRequest, "clientId and url are required")
		return
	}

	l, err := h.svc.Create(r.Context(), link.CreateParams{
		ClientID: req.ClientID,
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(l))
}

// list returns all links, or only one client's when ?clientId= is given.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		links []*link.Link
		err   error
	)

	if raw := r.URL.Query().Get("clientId"); raw != "" {
		clientID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid clientId")
			return
		}

		links, err = h.svc.ListByClient(r.Context(), clientID)
	} else {
		links, err = h.svc.List(r.Context())
	}

	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]linkResponse, len(links))
	for i, l := range links {
		resp[i] = toResponse(l)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	l := &link.Link{
		ID:       id,
		ClientID: req.ClientID,
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	}
	if err := h.svc.Update(r.Context(), l); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(l))
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
