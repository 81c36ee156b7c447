package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "chat-assistant/internal/errors"
	"chat-assistant/internal/model"
)

const sessionTokenTTL = 24 * time.Hour

// AuthService simulates an authentication backend. Tokens are minted and
// stored locally, never verified against any identity provider. The whole of
// "being logged in" is the token's presence in the session store.
type AuthService struct {
	sessions *SessionService
	secret   []byte
	rng      *rand.Rand
}

// AuthResponse is what the simulated login and register endpoints return.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func NewAuthService(sessions *SessionService, secret string) *AuthService {
	return &AuthService{
		sessions: sessions,
		secret:   []byte(secret),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Login fails only on empty credentials. The username is recovered from the
// registered-user record when the email matches; otherwise the email's local
// part is used.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	username := email
	if at := strings.Index(email, "@"); at >= 0 {
		username = email[:at]
	}
	if registered, err := s.sessions.RegisteredUser(ctx); err == nil && registered.Email == email {
		username = registered.Username
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		slog.Warn("Could not look up registered user", "error", err)
	}

	user := &model.User{ID: "user-123", Username: username, Email: email}
	return s.startSession(ctx, user)
}

// Register always succeeds. The new record is persisted separately so a later
// login with the same email recovers the chosen username.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	user := &model.User{
		ID:       fmt.Sprintf("user-%d", s.rng.Intn(10000)),
		Username: username,
		Email:    email,
	}
	if err := s.sessions.SaveRegisteredUser(ctx, user); err != nil {
		return nil, fmt.Errorf("could not persist registered user: %w", err)
	}
	return s.startSession(ctx, user)
}

// Logout tears the session down: token, user record, and conversation log.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.ClearSession(ctx)
}

func (s *AuthService) startSession(ctx context.Context, user *model.User) (*AuthResponse, error) {
	token, err := s.mintToken(user)
	if err != nil {
		return nil, fmt.Errorf("could not mint session token: %w", err)
	}
	if err := s.sessions.SetSession(ctx, token, user); err != nil {
		return nil, fmt.Errorf("could not persist session: %w", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// mintToken produces the fabricated session token. It is a real HS256 JWT so
// it looks and parses like one, but nothing ever validates it.
func (s *AuthService) mintToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
