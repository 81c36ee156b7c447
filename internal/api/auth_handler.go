package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	app_errors "chat-assistant/internal/errors"
	"chat-assistant/internal/interfaces"
)

type AuthHandler struct {
	auth interfaces.AuthService
	conv interfaces.ConversationService
}

func NewAuthHandler(auth interfaces.AuthService, conv interfaces.ConversationService) *AuthHandler {
	return &AuthHandler{auth: auth, conv: conv}
}

// LoginRequest carries the simulated login credentials. Both fields only
// have to be present; nothing is checked against a user database.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the simulated registration data. Registration
// always succeeds, so no validation tags are applied.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Log in (simulated)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "Credentials"
// @Success      200 {object} service.AuthResponse
// @Failure      400 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	// A fresh login starts a fresh chat session over the persisted log.
	h.conv.Reset(r.Context())

	respondWithJSON(w, http.StatusOK, resp)
}

// Register godoc
// @Summary      Register (simulated, always succeeds)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data body RegisterRequest true "Registration data"
// @Success      200 {object} service.AuthResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}

	resp, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	h.conv.Reset(r.Context())

	respondWithJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary      Log out and clear the session
// @Tags         auth
// @Produce      json
// @Success      200 {object} StatusResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}

	h.conv.Reset(r.Context())

	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
