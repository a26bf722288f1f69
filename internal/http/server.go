// Package http serves the SmartFinance web frontend: route guarding,
// session-aware view rendering, and the thin form handlers that
// translate user input into backend API calls.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smartfinance/internal/api"
	"smartfinance/internal/log"
	"smartfinance/internal/session"
	appweb "smartfinance/web"
)

type Server struct {
	http.Server
	templates   *template.Template
	api         *api.Client
	sessions    *session.Manager
	rateLimiter *rateLimiter
	logger      *log.Logger
	started     time.Time
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, apiClient *api.Client, sessions *session.Manager, logger *log.Logger) *Server {
	s := &Server{
		api:         apiClient,
		sessions:    sessions,
		rateLimiter: newRateLimiter(),
		logger:      logger.WithComponent(log.ComponentHTTP),
		started:     time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	r := chi.NewRouter()
	r.Use(log.Middleware(logger))
	r.Use(s.withObservability)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Handle("/static/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, req)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	// Every view resolves the session first; the guard then decides
	// per navigation whether to render or redirect.
	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		// Public-only views: an authenticated session is sent to the
		// dashboard instead of the landing and auth forms.
		r.Group(func(r chi.Router) {
			r.Use(s.guard(RoutePublicOnly))
			r.Get("/", s.handleLanding)
			r.Get("/login", s.handleLoginPage)
			r.Post("/login", s.handleLogin)
			r.Get("/register", s.handleRegisterPage)
			r.Post("/register", s.handleRegister)
		})

		// Protected views: an anonymous session is sent to login.
		r.Group(func(r chi.Router) {
			r.Use(s.guard(RouteProtected))
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/transactions", s.handleTransactions)
			r.Post("/transactions", s.handleCreateTransaction)
			r.Post("/transactions/{id}/edit", s.handleUpdateTransaction)
			r.Post("/transactions/{id}/delete", s.handleDeleteTransaction)
		})

		r.Post("/logout", s.handleLogout)
	})

	s.Server = http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Shutdown stops the rate limiter cleanup goroutine, then shuts down
// the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.stop()
	}
	return s.Server.Shutdown(ctx)
}
