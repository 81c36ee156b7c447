package api

import (
	"context"
	"log/slog"
	"net/http"

	"chat-assistant/internal/interfaces"
	"chat-assistant/internal/voice"
)

type VoiceHandler struct {
	adapter *voice.Adapter
	conv    interfaces.ConversationService
}

func NewVoiceHandler(adapter *voice.Adapter, conv interfaces.ConversationService) *VoiceHandler {
	return &VoiceHandler{adapter: adapter, conv: conv}
}

// VoiceStatusResponse reports the capture indicator state.
type VoiceStatusResponse struct {
	Listening bool `json:"listening"`
	Supported bool `json:"supported"`
}

// Start godoc
// @Summary      Start a voice capture session
// @Tags         voice
// @Produce      json
// @Success      200 {object} VoiceStatusResponse
// @Failure      409 {object} ErrorResponse
// @Failure      501 {object} ErrorResponse
// @Router       /voice/start [post]
func (h *VoiceHandler) Start(w http.ResponseWriter, r *http.Request) {
	// The capture session outlives this request, so it is not bound to the
	// request context.
	err := h.adapter.Start(context.Background(),
		func(text string) { h.conv.AppendInput(text) },
		func(err error) { slog.Warn("Voice capture session ended with error", "error", err) },
	)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, VoiceStatusResponse{Listening: true, Supported: true})
}

// Stop godoc
// @Summary      Stop the active voice capture session
// @Tags         voice
// @Produce      json
// @Success      200 {object} VoiceStatusResponse
// @Router       /voice/stop [post]
func (h *VoiceHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.adapter.Stop()
	respondWithJSON(w, http.StatusOK, VoiceStatusResponse{
		Listening: false,
		Supported: h.adapter.Supported(),
	})
}

// Status godoc
// @Summary      Get the voice capture indicator state
// @Tags         voice
// @Produce      json
// @Success      200 {object} VoiceStatusResponse
// @Router       /voice [get]
func (h *VoiceHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, VoiceStatusResponse{
		Listening: h.adapter.Listening(),
		Supported: h.adapter.Supported(),
	})
}
