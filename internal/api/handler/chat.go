package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mfieldsdev/chatwire/internal/api/middleware"
	"github.com/mfieldsdev/chatwire/internal/api/response"
	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/mfieldsdev/chatwire/internal/service"
)

// ChatHandler handles chat thread endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// New creates an empty chat
func (h *ChatHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chat, err := h.chatService.NewChat(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to create chat")
		return
	}

	response.Created(w, map[string]any{
		"chatId": chat.ID.Hex(),
		"title":  chat.Title,
	})
}

// Send appends a user message and returns the assistant reply. A missing
// or stale chatId silently starts a new chat.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req struct {
		ChatID  string `json:"chatId"`
		Message string `json:"message" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	result, err := h.chatService.Send(r.Context(), userID, req.ChatID, req.Message)
	if err != nil {
		response.InternalError(w, "Failed to send message")
		return
	}

	response.OK(w, result)
}

// List returns summaries of the user's chats, most recent first
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chats, err := h.chatService.ListChats(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to fetch chats")
		return
	}

	response.OK(w, chats)
}

// Get returns a full chat including its messages
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chat, err := h.chatService.GetChat(r.Context(), userID, chi.URLParam(r, "chatID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "Chat not found")
			return
		}
		response.InternalError(w, "Failed to fetch chat")
		return
	}

	response.OK(w, chat)
}

// Delete removes a chat
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	err := h.chatService.DeleteChat(r.Context(), userID, chi.URLParam(r, "chatID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "Chat not found")
			return
		}
		response.InternalError(w, "Failed to delete chat")
		return
	}

	response.OK(w, map[string]string{"message": "Chat deleted successfully"})
}
