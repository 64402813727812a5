/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/users/*      Per-user calendar, presence, notes
  /api/overlap      Two-user reconciliation
  /api/holidays/*   Holiday set administration
  /api/reports/*    Slack reporting

SECURITY NOTE:
  No authentication middleware. The dashboard is a two-person internal tool.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Per-user routes
		r.Route("/users/{user}", func(r chi.Router) {
			r.Get("/calendar", h.GetCalendar)
			r.Post("/presence", h.TogglePresence)
			r.Get("/notes", h.GetNotes)
			r.Put("/notes", h.PutNotes)
		})

		// Overlap route
		r.Get("/overlap", h.GetOverlap)

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.AddHoliday)
			r.Delete("/", h.RemoveHoliday)
			r.Post("/defaults", h.ResetDefaultHolidays)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Post("/slack", h.PostSlackReport)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Attendance Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Attendance Engine API</h1>
<ul>
<li><code>GET /api/users/{user}/calendar</code> - Period grid + summary</li>
<li><code>POST /api/users/{user}/presence</code> - Toggle a date</li>
<li><code>GET /api/overlap</code> - Coincident presence + gas money</li>
<li><code>GET /api/holidays</code> - Holiday set</li>
</ul>
</body>
</html>`))
	})

	return r
}
