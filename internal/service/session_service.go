package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "chat-assistant/internal/errors"
	"chat-assistant/internal/model"
	"chat-assistant/internal/repository"
)

// Persisted key names. Kept stable so previously stored sessions survive
// upgrades.
const (
	keyToken          = "token"
	keyUser           = "user"
	keyMessages       = "chatMessages"
	keyTheme          = "theme"
	keyRegisteredUser = "registeredUser"
)

// SessionService owns the persisted session state: auth token, user record,
// conversation log, theme preference, and the registered-user record used to
// recover a display name at login time.
type SessionService struct {
	store repository.Store
}

func NewSessionService(store repository.Store) *SessionService {
	return &SessionService{store: store}
}

// LoadLog returns the persisted conversation log. Any storage or decode
// failure is recovered by substituting the default single-greeting log; the
// fault is logged for diagnostics only and never propagated.
func (s *SessionService) LoadLog(ctx context.Context) []model.Message {
	raw, err := s.store.Get(ctx, keyMessages)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Failed to load saved messages, falling back to default greeting", "error", err)
		}
		return model.DefaultLog(time.Now())
	}

	var log []model.Message
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		slog.Warn("Failed to parse saved messages, falling back to default greeting", "error", err)
		return model.DefaultLog(time.Now())
	}
	if !validLog(log) {
		slog.Warn("Saved messages have an unexpected shape, falling back to default greeting")
		return model.DefaultLog(time.Now())
	}
	return log
}

// validLog checks the shape of a decoded log: at least one message, every
// entry with a known sender and a real timestamp.
func validLog(log []model.Message) bool {
	if len(log) == 0 {
		return false
	}
	for _, msg := range log {
		if !msg.Sender.Valid() || msg.Timestamp.IsZero() {
			return false
		}
	}
	return true
}

func (s *SessionService) SaveLog(ctx context.Context, log []model.Message) error {
	raw, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation log: %w", err)
	}
	return s.store.Set(ctx, keyMessages, string(raw))
}

// LoadTheme returns the persisted theme, defaulting to light when nothing
// valid is stored.
func (s *SessionService) LoadTheme(ctx context.Context) model.Theme {
	raw, err := s.store.Get(ctx, keyTheme)
	if err != nil {
		return model.ThemeLight
	}
	theme := model.Theme(raw)
	if !theme.Valid() {
		return model.ThemeLight
	}
	return theme
}

func (s *SessionService) SaveTheme(ctx context.Context, theme model.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", apperrors.ErrValidation, theme)
	}
	return s.store.Set(ctx, keyTheme, string(theme))
}

// IsAuthenticated reports whether a token is present. The token is never
// verified against anything; its presence is the whole of the simulated auth.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.Get(ctx, keyToken)
	return err == nil && token != ""
}

// CurrentUser returns the session's user record, or ErrNotFound when absent
// or unreadable.
func (s *SessionService) CurrentUser(ctx context.Context) (*model.User, error) {
	raw, err := s.store.Get(ctx, keyUser)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("Failed to parse stored user record", "error", err)
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// SetSession persists the token and user record for the new session.
func (s *SessionService) SetSession(ctx context.Context, token string, user *model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}
	if err := s.store.Set(ctx, keyToken, token); err != nil {
		return err
	}
	return s.store.Set(ctx, keyUser, string(raw))
}

// RegisteredUser returns the separately-keyed record persisted at
// registration time, used to recover the username at login.
func (s *SessionService) RegisteredUser(ctx context.Context) (*model.User, error) {
	raw, err := s.store.Get(ctx, keyRegisteredUser)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("Failed to parse registered user record", "error", err)
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (s *SessionService) SaveRegisteredUser(ctx context.Context, user *model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal registered user: %w", err)
	}
	return s.store.Set(ctx, keyRegisteredUser, string(raw))
}

// ClearSession removes the auth token, user record, and conversation log
// together. The theme preference and registered-user record survive logout.
func (s *SessionService) ClearSession(ctx context.Context) error {
	return s.store.DeleteMany(ctx, keyToken, keyUser, keyMessages)
}
