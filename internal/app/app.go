package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"chat-assistant/internal/api"
	"chat-assistant/internal/bot"
	"chat-assistant/internal/config"
	"chat-assistant/internal/database"
	"chat-assistant/internal/repository"
	"chat-assistant/internal/service"
	"chat-assistant/internal/voice"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	var store repository.Store
	switch strings.ToLower(cfg.StoreBackend) {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
			return 1
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
		store = repository.NewRedisStore(rdb)
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
	case "sqlite":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			return 1
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
		store = repository.NewSQLiteStore(db)
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
	default:
		slog.Error("Unknown store backend", "backend", cfg.StoreBackend)
		return 1
	}

	sessions := service.NewSessionService(store)
	engine := bot.NewRuleEngine()
	conv := service.NewConversationService(context.Background(), sessions, engine, service.ConversationConfig{
		ReplyDelayMin: time.Duration(cfg.ReplyDelayMin) * time.Millisecond,
		ReplyDelayMax: time.Duration(cfg.ReplyDelayMax) * time.Millisecond,
	})
	auth := service.NewAuthService(sessions, cfg.AuthSecret)

	// No speech-to-text capability exists on this runtime; the adapter
	// surfaces that as a capability error instead of crashing.
	adapter := voice.NewAdapter(nil)

	authHandler := api.NewAuthHandler(auth, conv)
	chatHandler := api.NewChatHandler(conv, sessions)
	voiceHandler := api.NewVoiceHandler(adapter, conv)
	router := api.NewRouter(authHandler, chatHandler, voiceHandler, sessions, cfg.FrontendDir)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the streaming endpoint.
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
