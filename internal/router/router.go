// Package router sets up all HTTP routes and middleware chains for the
// console API. It organizes routes into an open auth group and an
// authenticated API group with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"broadcasthub/internal/handlers"
	"broadcasthub/internal/middleware"
	"broadcasthub/internal/session"
)

// loginRateLimit caps login attempts per IP to slow credential stuffing.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.Auth
	Broadcasts *handlers.Broadcasts
	Messages   *handlers.Messages
	Labels     *handlers.Labels
	Contacts   *handlers.Contacts
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints — accessible without a session.
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/auth/login", h.Auth.Login)
		})
		r.Post("/auth/logout", h.Auth.Logout)
		r.Get("/auth/me", h.Auth.Me)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/2fa/setup", h.Auth.TwoFASetup)
			r.Post("/auth/2fa/verify", h.Auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified console API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Broadcast templates
			r.Route("/broadcasts", func(r chi.Router) {
				r.Get("/", h.Broadcasts.List)
				r.Get("/period/{period}", h.Broadcasts.ByPeriod)
				r.Post("/edit", h.Broadcasts.Edit)
				r.Post("/edit/cancel", h.Broadcasts.CancelEdit)
				r.Post("/save", h.Broadcasts.Save)
				r.Delete("/{id}", h.Broadcasts.Delete)
			})

			// Ad-hoc messages
			r.Route("/messages", func(r chi.Router) {
				r.Post("/", h.Messages.Send)
				r.Get("/history", h.Messages.History)
				r.Post("/{id}/cancel", h.Messages.Cancel)
			})

			// Labels and contact import
			r.Get("/labels", h.Labels.List)
			r.Post("/contacts/import", h.Contacts.Import)

			// Object storage probe
			r.Get("/storage/status", h.Broadcasts.StorageStatus)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
