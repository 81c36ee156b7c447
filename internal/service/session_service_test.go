package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "chat-assistant/internal/errors"
	"chat-assistant/internal/model"
	"chat-assistant/internal/service"
)

func TestSessionService_LoadLog(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store yields the default greeting", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())

		log := sessions.LoadLog(ctx)
		require.Len(t, log, 1)
		assert.Equal(t, model.SenderBot, log[0].Sender)
		assert.Equal(t, model.GreetingText, log[0].Content)
		assert.NotEmpty(t, log[0].ID)
		assert.False(t, log[0].Timestamp.IsZero())
	})

	t.Run("Round trip preserves the log", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
		saved := []model.Message{
			model.NewBotMessage(model.GreetingText, at),
			model.NewUserMessage("hello", at.Add(time.Minute)),
		}

		require.NoError(t, sessions.SaveLog(ctx, saved))
		loaded := sessions.LoadLog(ctx)

		require.Len(t, loaded, 2)
		for i := range saved {
			assert.Equal(t, saved[i].ID, loaded[i].ID)
			assert.Equal(t, saved[i].Content, loaded[i].Content)
			assert.Equal(t, saved[i].Sender, loaded[i].Sender)
			assert.True(t, saved[i].Timestamp.Equal(loaded[i].Timestamp))
		}
	})

	t.Run("Corrupted JSON falls back to the default greeting", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, "chatMessages", "{not json"))
		sessions := service.NewSessionService(store)

		log := sessions.LoadLog(ctx)
		require.Len(t, log, 1)
		assert.Equal(t, model.GreetingText, log[0].Content)
	})

	t.Run("Unknown sender falls back to the default greeting", func(t *testing.T) {
		store := newMemStore()
		raw := `[{"id":"m1","content":"hi","sender":"alien","timestamp":"2024-05-01T09:30:00Z"}]`
		require.NoError(t, store.Set(ctx, "chatMessages", raw))
		sessions := service.NewSessionService(store)

		log := sessions.LoadLog(ctx)
		require.Len(t, log, 1)
		assert.Equal(t, model.GreetingText, log[0].Content)
	})

	t.Run("Empty array falls back to the default greeting", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, "chatMessages", "[]"))
		sessions := service.NewSessionService(store)

		log := sessions.LoadLog(ctx)
		require.Len(t, log, 1)
		assert.Equal(t, model.GreetingText, log[0].Content)
	})

	t.Run("Storage failure falls back to the default greeting", func(t *testing.T) {
		store := newMemStore()
		store.getErr = errors.New("backend unavailable")
		sessions := service.NewSessionService(store)

		log := sessions.LoadLog(ctx)
		require.Len(t, log, 1)
		assert.Equal(t, model.GreetingText, log[0].Content)
	})
}

func TestSessionService_Theme(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to light", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		assert.Equal(t, model.ThemeLight, sessions.LoadTheme(ctx))
	})

	t.Run("Round trip", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		require.NoError(t, sessions.SaveTheme(ctx, model.ThemeDark))
		assert.Equal(t, model.ThemeDark, sessions.LoadTheme(ctx))
	})

	t.Run("Rejects unknown themes", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		err := sessions.SaveTheme(ctx, model.Theme("solarized"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Unknown stored value falls back to light", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, "theme", "solarized"))
		sessions := service.NewSessionService(store)
		assert.Equal(t, model.ThemeLight, sessions.LoadTheme(ctx))
	})
}

func TestSessionService_Session(t *testing.T) {
	ctx := context.Background()

	t.Run("Not authenticated when no token is stored", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		assert.False(t, sessions.IsAuthenticated(ctx))
	})

	t.Run("SetSession persists token and user", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		user := &model.User{ID: "user-123", Username: "alice", Email: "alice@example.com"}

		require.NoError(t, sessions.SetSession(ctx, "tok-1", user))

		assert.True(t, sessions.IsAuthenticated(ctx))
		got, err := sessions.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("CurrentUser without a record returns ErrNotFound", func(t *testing.T) {
		sessions := service.NewSessionService(newMemStore())
		_, err := sessions.CurrentUser(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Unreadable user record returns ErrNotFound", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, "user", "{broken"))
		sessions := service.NewSessionService(store)

		_, err := sessions.CurrentUser(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("ClearSession keeps theme and registered user", func(t *testing.T) {
		store := newMemStore()
		sessions := service.NewSessionService(store)
		user := &model.User{ID: "user-1", Username: "bob", Email: "bob@example.com"}

		require.NoError(t, sessions.SetSession(ctx, "tok-2", user))
		require.NoError(t, sessions.SaveLog(ctx, model.DefaultLog(time.Now())))
		require.NoError(t, sessions.SaveTheme(ctx, model.ThemeDark))
		require.NoError(t, sessions.SaveRegisteredUser(ctx, user))

		require.NoError(t, sessions.ClearSession(ctx))

		assert.False(t, sessions.IsAuthenticated(ctx))
		assert.False(t, store.has("user"))
		assert.False(t, store.has("chatMessages"))
		assert.Equal(t, model.ThemeDark, sessions.LoadTheme(ctx))
		registered, err := sessions.RegisteredUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bob", registered.Username)
	})
}
