package progress

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
	"github.com/sentra-hq/sentra-cms/internal/progress"
)

type Handler struct {
	svc *progress.Service
}

func NewHandler(svc *progress.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/comments", h.addComment)
	r.Post("/{id}/toggle", h.toggle)
	r.Delete("/{id}", h.delete)
}

type stepResponse struct {
	ID        uuid.UUID         `json:"id"`
	ClientID  uuid.UUID         `json:"clientId"`
	Title     string            `json:"title"`
	Deadline  time.Time         `json:"deadline"`
	Completed bool              `json:"completed"`
	Comments  []commentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

type commentResponse struct {
	ID        uuid.UUID `json:"id"`
	StepID    uuid.UUID `json:"stepId"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func toStepResponse(s *progress.Step) stepResponse {
	resp := stepResponse{
		ID:        s.ID,
		ClientID:  s.ClientID,
		Title:     s.Title,
		Deadline:  s.Deadline,
		Completed: s.Completed,
		Comments:  []commentResponse{},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	for _, c := range s.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}

	return resp
}

func toCommentResponse(c *progress.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		StepID:    c.StepID,
		Text:      c.Text,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
	}
}

type createStepRequest struct {
	ClientID uuid.UUID `json:"clientId"`
	Title    string    `json:"title"`
	Deadline time.Time `json:"deadline"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ClientID == uuid.Nil || req.Title == "" {
		httpx.Error(w, http.StatusBadRequest, "clientId and title are required")
		return
	}

	step, err := h.svc.Create(r.Context(), progress.CreateStepParams{
		ClientID: req.ClientID,
		Title:    req.Title,
		Deadline: req.Deadline,
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toStepResponse(step))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	steps, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]stepResponse, len(steps))
	for i, s := range steps {
		resp[i] = toStepResponse(s)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

type addCommentRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Text == "" {
		httpx.Error(w, http.StatusBadRequest, "text is required")
		return
	}

	c, err := h.svc.AddComment(r.Context(), id, req.Text, req.Author)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toCommentResponse(c))
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	step, err := h.svc.Toggle(r.Context(), id)
	if err != nil {
		if errors.Is(err, progress.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "progress step not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	httpx.JSON(w, http.StatusOK, toStepResponse(step))
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
