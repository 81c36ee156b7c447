package interfaces

import (
	"context"

	"chat-assistant/internal/model"
	"chat-assistant/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows
// for decoupling (e.g., API layer from Service layer) and easier testing.

// ConversationService defines the contract for the conversation state
// machine: the message log, the reply cycle, and input-history navigation.
type ConversationService interface {
	Log() []model.Message
	Pending() bool
	Input() string
	SetInput(text string)
	AppendInput(text string)
	Submit(ctx context.Context, text string) (model.Message, <-chan model.Message, error)
	NavigateHistory(direction service.HistoryDirection) (string, error)
	Clear(ctx context.Context, confirmed bool) error
	Reset(ctx context.Context)
	Export(ctx context.Context) (filename, content string)
}

// SessionService defines the slice of the session store the API layer needs.
type SessionService interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*model.User, error)
	LoadTheme(ctx context.Context) model.Theme
	SaveTheme(ctx context.Context, theme model.Theme) error
}

// AuthService defines the contract for the simulated authentication flow.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*service.AuthResponse, error)
	Logout(ctx context.Context) error
}
