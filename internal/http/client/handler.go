package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// TagRoutes is mounted separately under /api/tags.
func (h *Handler) TagRoutes(r chi.Router) {
	r.Get("/", h.listTags)
	r.Post("/", h.createTag)
}

type createClientRequest struct {
	Name         string        `json:"name"`
	BusinessName string        `json:"businessName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Status       client.Status `json:"status"`
	Tags         []string      `json:"tags"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       req.Status,
		Tags:         req.Tags,
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(clients))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "client not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
}

type updateClientRequest struct {
	Name         *string        `json:"name,omitempty"`
	BusinessName *string        `json:"businessName,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	Status       *client.Status `json:"status,omitempty"`
	Tags         *[]string      `json:"tags,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "client not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.BusinessName != nil {
		c.BusinessName = *req.BusinessName
	}

	if req.Email != nil {
		c.Email = *req.Email
	}

	if req.Phone != nil {
		c.Phone = *req.Phone
	}

	if req.Status != nil {
		c.Status = *req.Status
	}

	if req.Tags != nil {
		c.Tags = *req.Tags
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
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

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, toTagResponseList(tags))
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	tag, err := h.svc.EnsureTag(r.Context(), req.Name, req.Color)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toTagResponse(tag))
}
