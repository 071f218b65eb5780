package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/userauth/userauth-go/internal/config"
	"github.com/userauth/userauth-go/internal/handler"
	"github.com/userauth/userauth-go/internal/middleware"
	"github.com/userauth/userauth-go/internal/service"
)

// Server wraps an http.Server with the configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware and routes and returns a ready server.
func New(cfg config.Config, svc *service.UserService, log *slog.Logger) *Server {
	return &Server{
		inner: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(svc, cfg.JWTSecret, cfg.CORSOrigins, log),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// NewRouter builds the HTTP routes. Everything under the JWTAuth group
// requires a valid bearer token.
func NewRouter(svc *service.UserService, secret string, corsOrigins []string, log *slog.Logger) http.Handler {
	authHandler := handler.NewAuthHandler(svc)
	userHandler := handler.NewUserHandler(svc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(corsOrigins))

	r.Get("/", handler.HandleRoot)
	r.Post("/user", authHandler.HandleCreateUser)
	r.Post("/authenticate", authHandler.HandleAuthenticate)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(secret))
		r.Get("/user", userHandler.HandleListUsers)
		r.Get("/user/{id}", userHandler.HandleGetUser)
		r.Put("/user/{id}", userHandler.HandleUpdateUser)
		r.Delete("/user/{id}", userHandler.HandleDeleteUser)
	})

	return r
}

// Addr returns the address the server binds to.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
