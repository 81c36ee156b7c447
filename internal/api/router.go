package api

import (
	"net/http"
	"path/filepath"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "chat-assistant/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"chat-assistant/internal/interfaces"
)

// NewRouter creates and configures a new chi router with all the
// application's routes.
func NewRouter(authHandler *AuthHandler, chatHandler *ChatHandler, voiceHandler *VoiceHandler, sessions interfaces.SessionService, frontendDir string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes carry a request timeout so client
		// connections cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Auth (simulated) ---
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/logout", authHandler.Logout)

			// --- Conversation ---
			r.Get("/conversation", chatHandler.GetConversation)
			r.Post("/conversation/history", chatHandler.NavigateHistory)
			r.Delete("/conversation", chatHandler.ClearConversation)
			r.Get("/conversation/export", chatHandler.ExportConversation)

			// --- Settings ---
			r.Get("/settings", chatHandler.GetSettings)
			r.Post("/settings", chatHandler.UpdateSettings)

			// --- Voice capture ---
			r.Get("/voice", voiceHandler.Status)
			r.Post("/voice/start", voiceHandler.Start)
			r.Post("/voice/stop", voiceHandler.Stop)
		})

		// The message-submission stream holds its connection open for the
		// whole reply cycle, so it must NOT have a timeout.
		r.Group(func(r chi.Router) {
			r.Post("/conversation/messages", chatHandler.StreamMessage)
		})
	})

	// --- Page Surface ---
	// The chat page is guarded: without a session token the browser is sent
	// back to the login page. Root and unknown paths land on registration.
	servePage := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	}

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(sessions))
		r.Get("/chat", servePage)
	})
	r.Get("/login", servePage)
	r.Get("/register", servePage)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	})

	// Static frontend assets; anything truly unknown redirects to /register.
	fileServer := http.FileServer(http.Dir(frontendDir))
	r.Get("/assets/*", fileServer.ServeHTTP)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	})

	return r
}

// RequireSession redirects to the login page when the session store holds no
// auth token. This guards the chat page the way the client-side route guard
// did.
func RequireSession(sessions interfaces.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated(r.Context()) {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
