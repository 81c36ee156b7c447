package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "chat-assistant/internal/errors"
	"chat-assistant/internal/interfaces"
	"chat-assistant/internal/model"
	"chat-assistant/internal/service"
)

type ChatHandler struct {
	conv     interfaces.ConversationService
	sessions interfaces.SessionService
}

func NewChatHandler(conv interfaces.ConversationService, sessions interfaces.SessionService) *ChatHandler {
	return &ChatHandler{conv: conv, sessions: sessions}
}

// ConversationResponse is the full conversation state for the chat page.
type ConversationResponse struct {
	Messages []model.Message `json:"messages"`
	Pending  bool            `json:"pending"`
	Input    string          `json:"input"`
}

// SubmitMessageRequest carries a new user utterance.
type SubmitMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// HistoryRequest asks to move the input-history cursor.
type HistoryRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// InputResponse returns the current input text after a history step.
type InputResponse struct {
	Input string `json:"input"`
}

// SettingsResponse carries the per-session preferences.
type SettingsResponse struct {
	Theme model.Theme `json:"theme"`
	User  *model.User `json:"user,omitempty"`
}

// UpdateSettingsRequest changes the theme preference.
type UpdateSettingsRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// StreamEvent is one chunk of the message-submission SSE stream: the echoed
// user message first, then the bot message once the reply cycle completes.
type StreamEvent struct {
	Type    string        `json:"type"` // "user" or "bot"
	Message model.Message `json:"message"`
}

// GetConversation godoc
// @Summary      Get the conversation log and input state
// @Tags         conversation
// @Produce      json
// @Success      200 {object} ConversationResponse
// @Router       /conversation [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ConversationResponse{
		Messages: h.conv.Log(),
		Pending:  h.conv.Pending(),
		Input:    h.conv.Input(),
	})
}

// StreamMessage submits a user message and streams the reply cycle over SSE:
// the user message event immediately, the bot message event after the
// simulated latency. The route lives in the no-timeout router group.
//
// @Summary      Submit a message and stream the bot reply
// @Tags         conversation
// @Accept       json
// @Produce      text/event-stream
// @Param        message body SubmitMessageRequest true "Message"
// @Router       /conversation/messages [post]
func (h *ChatHandler) StreamMessage(w http.ResponseWriter, r *http.Request) {
	var req SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}

	// Validation and state errors surface as plain JSON before the stream
	// starts; once the user message is accepted the response is an SSE body.
	userMsg, done, err := h.conv.Submit(r.Context(), req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if err := writeStreamEvent(w, StreamEvent{Type: "user", Message: userMsg}); err != nil {
		slog.Warn("Client disconnected before user message event", "error", err)
		// The reply cycle still completes and persists; only the stream ends.
		return
	}

	select {
	case botMsg := <-done:
		if err := writeStreamEvent(w, StreamEvent{Type: "bot", Message: botMsg}); err != nil {
			slog.Warn("Client disconnected before bot message event", "error", err)
		}
	case <-r.Context().Done():
		sendStreamError(w, "client disconnected")
	}
}

// NavigateHistory godoc
// @Summary      Step through previously submitted inputs
// @Tags         conversation
// @Accept       json
// @Produce      json
// @Param        step body HistoryRequest true "Direction"
// @Success      200 {object} InputResponse
// @Router       /conversation/history [post]
func (h *ChatHandler) NavigateHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	input, err := h.conv.NavigateHistory(service.HistoryDirection(req.Direction))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, InputResponse{Input: input})
}

// ClearConversation godoc
// @Summary      Clear the chat (requires confirm=true)
// @Tags         conversation
// @Produce      json
// @Param        confirm query bool true "Explicit confirmation"
// @Success      200 {object} StatusResponse
// @Failure      400 {object} ErrorResponse
// @Router       /conversation [delete]
func (h *ChatHandler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.conv.Clear(r.Context(), confirmed); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ExportConversation godoc
// @Summary      Download the transcript as plain text
// @Tags         conversation
// @Produce      plain
// @Router       /conversation/export [get]
func (h *ChatHandler) ExportConversation(w http.ResponseWriter, r *http.Request) {
	filename, content := h.conv.Export(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write([]byte(content)); err != nil {
		slog.Error("Failed to write export response", "error", err)
	}
}

// GetSettings godoc
// @Summary      Get theme preference and current user
// @Tags         settings
// @Produce      json
// @Success      200 {object} SettingsResponse
// @Router       /settings [get]
func (h *ChatHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.CurrentUser(r.Context())
	if err != nil {
		user = nil
	}
	respondWithJSON(w, http.StatusOK, SettingsResponse{
		Theme: h.sessions.LoadTheme(r.Context()),
		User:  user,
	})
}

// UpdateSettings godoc
// @Summary      Update the theme preference
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        settings body UpdateSettingsRequest true "Settings"
// @Success      200 {object} StatusResponse
// @Router       /settings [post]
func (h *ChatHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.sessions.SaveTheme(r.Context(), model.Theme(req.Theme)); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
