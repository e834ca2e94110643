package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// AuthRoutes is mounted under /api/auth, outside the authenticated group.
func (h *Handler) AuthRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      user.Role  `json:"role"`
	ClientID  *uuid.UUID `json:"clientId,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// toResponse never includes the password hash.
func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ClientID:  u.ClientID,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// The three auth failures map to distinct 401 messages.
		switch {
		case errors.Is(err, user.ErrNotFound):
			httpx.Error(w, http.StatusUnauthorized, "account not found")
		case errors.Is(err, user.ErrAccountInactive):
			httpx.Error(w, http.StatusUnauthorized, "account inactive")
		case errors.Is(err, user.ErrInvalidPassword):
			httpx.Error(w, http.StatusUnauthorized, "invalid password")
		default:
			httpx.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    toResponse(u),
		Token:   token,
	})
}

type createUserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     user.Role  `json:"role"`
	ClientID *uuid.UUID `json:"clientId,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.svc.Create(r.Context(), user.CreateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		ClientID: req.ClientID,
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

type updateUserRequest struct {
	Name     *string    `json:"name,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Password *string    `json:"password,omitempty"`
	Role     *user.Role `json:"role,omitempty"`
	Active   *bool      `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Update(r.Context(), id, user.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Active:   req.Active,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "user not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(u))
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
