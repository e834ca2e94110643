package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/chat"
	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
)

type Handler struct {
	svc *chat.Service
}

func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.open)
	r.Get("/{id}/messages", h.messages)
	r.Post("/{id}/messages", h.send)
	r.Post("/{id}/read", h.markRead)
	r.Delete("/{id}", h.delete)
}

type chatResponse struct {
	ID            uuid.UUID         `json:"id"`
	ClientID      uuid.UUID         `json:"clientId"`
	UnreadCount   int               `json:"unreadCount"`
	LastMessageAt *time.Time        `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	Messages      []messageResponse `json:"messages,omitempty"`
}

type messageResponse struct {
	ID      uuid.UUID   `json:"id"`
	ChatID  uuid.UUID   `json:"chatId"`
	Sender  chat.Sender `json:"sender"`
	Content string      `json:"content"`
	SentAt  time.Time   `json:"sentAt"`
}

func toChatResponse(c *chat.Chat) chatResponse {
	resp := chatResponse{
		ID:            c.ID,
		ClientID:      c.ClientID,
		UnreadCount:   c.UnreadCount,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}

	for _, m := range c.Messages {
		resp.Messages = append(resp.Messages, toMessageResponse(m))
	}

	return resp
}

func toMessageResponse(m *chat.Message) messageResponse {
	return messageResponse{
		ID:      m.ID,
		ChatID:  m.ChatID,
		Sender:  m.Sender,
		Content: m.Content,
		SentAt:  m.SentAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	chats, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]chatResponse, len(chats))
	for i, c := range chats {
		resp[i] = toChatResponse(c)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

type openChatRequest struct {
	ClientID uuid.UUID `json:"clientId"`
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	var req openChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ClientID == uuid.Nil {
		httpx.Error(w, http.StatusBadRequest, "clientId is required")
		return
	}

	c, err := h.svc.Open(r.Context(), req.ClientID)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toChatResponse(c))
}

func (h *Handler) messages(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	msgs, err := h.svc.Messages(r.Context(), id)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = toMessageResponse(m)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

type sendMessageRequest struct {
	Sender  chat.Sender `json:"sender"`
	Content string      `json:"content"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Content == "" {
		httpx.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	if req.Sender != chat.SenderClient && req.Sender != chat.SenderAdmin {
		httpx.Error(w, http.StatusBadRequest, "sender must be client or admin")
		return
	}

	m, err := h.svc.Send(r.Context(), id, req.Sender, req.Content)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusCreated, toMessageResponse(m))
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "chat not found")
			return
		}

		httpx.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
